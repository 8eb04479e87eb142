package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"NavBot/internal/collector"
	"NavBot/internal/metrics"
	"NavBot/internal/model"
	"NavBot/internal/notifier"
)

// Outcome is what one run produced. Receipt may carry a publish failure even
// though Run itself succeeded.
type Outcome struct {
	Snapshot *model.NavSnapshot
	Text     string
	Receipt  notifier.Receipt
}

// Pipeline runs fetch -> format -> publish for the configured fund.
type Pipeline struct {
	Fetcher   collector.Fetcher
	Publisher notifier.Publisher
	Metrics   *metrics.Metrics
	Log       logrus.FieldLogger
}

// New creates a Pipeline. m may be nil.
func New(fetcher collector.Fetcher, publisher notifier.Publisher, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		Fetcher:   fetcher,
		Publisher: publisher,
		Metrics:   m,
		Log:       logrus.WithField("component", "pipeline"),
	}
}

// Run fetches the latest snapshot, formats it and publishes it. Only a fetch
// failure is returned as an error; nothing is published in that case.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()
	defer func() { p.Metrics.ObservePipeline(time.Since(start)) }()

	snap, err := p.Fetcher.FetchSnapshot(ctx)
	p.Metrics.RecordFetch(err == nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Fetcher.Name(), err)
	}

	text := notifier.FormatNavPost(snap)
	p.Log.WithField("base_date", snap.BaseDate).Info("post composed:\n" + text)

	rec := p.Publisher.Publish(ctx, text)
	p.Metrics.RecordPublish(rec.Channel, rec.OK())
	if rec.OK() {
		p.Log.WithFields(logrus.Fields{"channel": rec.Channel, "post_id": rec.PostID}).Info("post published")
	} else {
		p.Log.WithField("channel", rec.Channel).WithError(rec.Err).Error("post failed")
	}

	return &Outcome{Snapshot: snap, Text: text, Receipt: rec}, nil
}
