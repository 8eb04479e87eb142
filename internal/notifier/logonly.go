package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPublisher writes the message to the log instead of posting it.
type LogPublisher struct {
	Logger logrus.FieldLogger
}

func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogPublisher{Logger: logger}
}

func (p *LogPublisher) Name() string { return "log" }

func (p *LogPublisher) Publish(_ context.Context, text string) Receipt {
	p.Logger.WithField("component", "notifier").Info("dry run, post text:\n" + text)
	return Receipt{Channel: p.Name()}
}
