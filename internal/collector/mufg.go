package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"NavBot/internal/model"
)

const (
	// DefaultFundCode is eMAXIS Slim 全世界株式（オール・カントリー）.
	DefaultFundCode = "253425"
	// DefaultMufgURL is the latest-valuation endpoint for DefaultFundCode.
	DefaultMufgURL = "https://developer.am.mufg.jp/fund_information_latest/fund_cd/" + DefaultFundCode
)

// MufgFetcher implements Fetcher using the MUFG Asset Management fund information API.
type MufgFetcher struct {
	URL      string
	FundCode string
	Client   *http.Client
}

// NewMufgFetcher creates a fetcher for a single fund endpoint with optional proxy support.
func NewMufgFetcher(endpoint, fundCode, proxyURL string, timeout time.Duration) *MufgFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if endpoint == "" {
		endpoint = DefaultMufgURL
	}
	if fundCode == "" {
		fundCode = DefaultFundCode
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MufgFetcher{
		URL:      endpoint,
		FundCode: fundCode,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *MufgFetcher) Name() string { return "mufg" }

// mufgLatest is the subset of the fund_information_latest response we read.
// Fields stay raw so values are passed on as sent; only presence is checked.
type mufgLatest struct {
	Datasets *[]struct {
		Nav              json.RawMessage `json:"nav"`
		CmpPrevDay       json.RawMessage `json:"cmp_prev_day"`
		PercentageChange json.RawMessage `json:"percentage_change"`
		BaseDate         json.RawMessage `json:"base_date"`
	} `json:"datasets"`
}

func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// rawText unquotes JSON strings and keeps any other literal as written.
func rawText(raw json.RawMessage) string {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// FetchSnapshot issues one GET against the fund endpoint and extracts the first dataset.
func (f *MufgFetcher) FetchSnapshot(ctx context.Context) (*model.NavSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch nav: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read nav body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamHTTPError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	var latest mufgLatest
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, shapeError("decode: %v", err)
	}
	if latest.Datasets == nil {
		return nil, shapeError("no datasets returned")
	}
	if len(*latest.Datasets) == 0 {
		return nil, shapeError("datasets is empty")
	}

	ds := (*latest.Datasets)[0]
	switch {
	case absent(ds.Nav):
		return nil, shapeError("missing nav")
	case absent(ds.CmpPrevDay):
		return nil, shapeError("missing cmp_prev_day")
	case absent(ds.PercentageChange):
		return nil, shapeError("missing percentage_change")
	case absent(ds.BaseDate):
		return nil, shapeError("missing base_date")
	}

	snap := &model.NavSnapshot{
		FundCode:         f.FundCode,
		Nav:              model.ParseQuantity(rawText(ds.Nav)),
		CmpPrevDay:       model.ParseQuantity(rawText(ds.CmpPrevDay)),
		PercentageChange: model.ParseQuantity(rawText(ds.PercentageChange)),
		BaseDate:         rawText(ds.BaseDate),
	}
	logrus.WithFields(logrus.Fields{
		"component": "collector",
		"fund":      snap.FundCode,
		"nav":       snap.Nav.String(),
		"base_date": snap.BaseDate,
	}).Debug("nav snapshot fetched")
	return snap, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
