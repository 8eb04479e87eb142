package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"NavBot/internal/model"
)

const (
	FundDisplayName = "ｅＭＡＸＩＳ Ｓｌｉｍ 全世界株式（オール・カントリー）"
	Hashtags        = "#オルカン #投資信託 #NISA"
)

// FormatSignedDelta prefixes positive values with "+". Zero, negative and
// non-numeric values keep their natural form, so zero renders as "0".
func FormatSignedDelta(q model.Quantity) string {
	if q.IsPositive() {
		return "+" + q.String()
	}
	return q.String()
}

// FormatDate turns "20240305" into "2024年3月5日". Anything that is not an
// 8-digit date is returned as-is.
func FormatDate(s string) string {
	if len(s) != 8 {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	y, _ := strconv.Atoi(s[0:4])
	m, _ := strconv.Atoi(s[4:6])
	d, _ := strconv.Atoi(s[6:8])
	return fmt.Sprintf("%d年%d月%d日", y, m, d)
}

// FormatNavPost composes the post text for a snapshot.
func FormatNavPost(snap *model.NavSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("【%s】\n", FundDisplayName))
	b.WriteString(fmt.Sprintf("基準日: %s\n", FormatDate(snap.BaseDate)))
	b.WriteString(fmt.Sprintf("基準価額: %s円\n", snap.Nav.String()))
	b.WriteString(fmt.Sprintf("前日比 %s円（%s%%）\n",
		FormatSignedDelta(snap.CmpPrevDay), FormatSignedDelta(snap.PercentageChange)))
	b.WriteString(Hashtags)
	return b.String()
}
