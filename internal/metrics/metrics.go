package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	fetchTotal       *prometheus.CounterVec
	publishTotal     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navbot",
			Name:      "fetch_total",
			Help:      "Upstream NAV fetches by result.",
		}, []string{"result"}),
		publishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navbot",
			Name:      "publish_total",
			Help:      "Post attempts by channel and result.",
		}, []string{"channel", "result"}),
		pipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navbot",
			Name:      "pipeline_duration_seconds",
			Help:      "Wall time of one fetch-format-publish run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.fetchTotal, m.publishTotal, m.pipelineDuration)
	}
	return m
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (m *Metrics) RecordFetch(ok bool) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) RecordPublish(channel string, ok bool) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(channel, result(ok)).Inc()
}

func (m *Metrics) ObservePipeline(d time.Duration) {
	if m == nil {
		return
	}
	m.pipelineDuration.Observe(d.Seconds())
}
