// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus collectors for the publish
// pipeline and the HTTP front end.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptdoc"

// Pipeline stages observed by StageSeconds.
const (
	StageChat   = "chat"
	StageFormat = "format"
	StageCreate = "create"
	StageApply  = "apply"
	StageShare  = "share"
	StageRecord = "record"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	Registry *prometheus.Registry

	Published    *prometheus.CounterVec
	Failed       *prometheus.CounterVec
	SkippedLines prometheus.Counter
	StageSeconds *prometheus.HistogramVec
	Requests     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_published_total",
			Help:      "Documents created and formatted, by kind.",
		}, []string{"kind"}),
		Failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_failed_total",
			Help:      "Publish attempts that failed, by stage.",
		}, []string{"stage"}),
		SkippedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_skipped_total",
			Help:      "Lines inserted without styling.",
		}),
		StageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"stage"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
	}
	m.Registry.MustRegister(
		m.Published, m.Failed, m.SkippedLines, m.StageSeconds, m.Requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveStage records the time since start for stage. Nil-safe.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Fail counts a failure at stage. Nil-safe.
func (m *Metrics) Fail(stage string) {
	if m == nil {
		return
	}
	m.Failed.WithLabelValues(stage).Inc()
}

// Publish counts a published document and its skipped lines. Nil-safe.
func (m *Metrics) Publish(kind string, skipped int) {
	if m == nil {
		return
	}
	m.Published.WithLabelValues(kind).Inc()
	m.SkippedLines.Add(float64(skipped))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
