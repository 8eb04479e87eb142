package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"NavBot/internal/model"
)

func TestFormatSignedDelta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"153", "+153"},
		{"0.62", "+0.62"},
		{"0.001", "+0.001"},
		{"0", "0"},
		{"-0", "0"},
		{"-42", "-42"},
		{"-0.35", "-0.35"},
		// non-numeric values are left alone
		{"-", "-"},
		{"N/A", "N/A"},
		{"", ""},
	}
	for _, tt := range tests {
		got := FormatSignedDelta(model.ParseQuantity(tt.in))
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240305", "2024年3月5日"},
		{"20241231", "2024年12月31日"},
		{"19990101", "1999年1月1日"},
		{"20250910", "2025年9月10日"},
		// passthrough
		{"", ""},
		{"2024035", "2024035"},
		{"202403051", "202403051"},
		{"2024-3-5", "2024-3-5"},
		{"abcdefgh", "abcdefgh"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), "input %q", tt.in)
	}
}

func TestFormatNavPost(t *testing.T) {
	snap := &model.NavSnapshot{
		Nav:              model.ParseQuantity("24567"),
		CmpPrevDay:       model.ParseQuantity("153"),
		PercentageChange: model.ParseQuantity("0.62"),
		BaseDate:         "20240305",
	}
	want := "【ｅＭＡＸＩＳ Ｓｌｉｍ 全世界株式（オール・カントリー）】\n" +
		"基準日: 2024年3月5日\n" +
		"基準価額: 24567円\n" +
		"前日比 +153円（+0.62%）\n" +
		"#オルカン #投資信託 #NISA"
	assert.Equal(t, want, FormatNavPost(snap))
}

func TestFormatNavPost_NegativeAndFlat(t *testing.T) {
	down := FormatNavPost(&model.NavSnapshot{
		Nav:              model.ParseQuantity("24100"),
		CmpPrevDay:       model.ParseQuantity("-467"),
		PercentageChange: model.ParseQuantity("-1.9"),
		BaseDate:         "20240306",
	})
	assert.Contains(t, down, "前日比 -467円（-1.9%）")

	flat := FormatNavPost(&model.NavSnapshot{
		Nav:              model.ParseQuantity("24100"),
		CmpPrevDay:       model.ParseQuantity("0"),
		PercentageChange: model.ParseQuantity("0"),
		BaseDate:         "bad",
	})
	assert.Contains(t, flat, "前日比 0円（0%）")
	assert.Contains(t, flat, "基準日: bad\n")
}

func TestFormatNavPost_PlaceholderValues(t *testing.T) {
	text := FormatNavPost(&model.NavSnapshot{
		Nav:              model.ParseQuantity("-"),
		CmpPrevDay:       model.ParseQuantity("-"),
		PercentageChange: model.ParseQuantity("1e-7"),
		BaseDate:         "20240305",
	})
	assert.Contains(t, text, "基準価額: -円\n")
	assert.Contains(t, text, "前日比 -円（+0.0000001%）")
}
