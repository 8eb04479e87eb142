package collector

import (
	"context"

	"NavBot/internal/model"
)

// Fetcher retrieves the latest valuation snapshot of a fund.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*model.NavSnapshot, error)
	Name() string
}
