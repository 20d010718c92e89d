// Package metrics records generation statistics as Prometheus metrics.
//
// A Manager owns a private registry; after a run its content can be written
// in text exposition format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds the metrics of a timeline2html process. A nil *Manager is
// valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	rowsRead       prometheus.Counter
	rowsWithIssues prometheus.Counter
	cellsDefaulted prometheus.Counter
	eventsRendered *prometheus.CounterVec
	outputBytes    *prometheus.GaugeVec
	generations    *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	lastSuccess    prometheus.Gauge
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "timeline2html",
		histogramBuckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rows_read_total",
		Help:      "Data rows read from input sheets.",
	})
	m.rowsWithIssues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rows_with_issues_total",
		Help:      "Rows in which at least one cell was replaced by a default.",
	})
	m.cellsDefaulted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cells_defaulted_total",
		Help:      "Cells replaced by a default value.",
	})
	m.eventsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_rendered_total",
		Help:      "Events written to output documents, by view.",
	}, []string{"view"})
	m.outputBytes = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "output_bytes",
		Help:      "Size of the last document written, by view.",
	}, []string{"view"})
	m.generations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "generations_total",
		Help:      "Generation runs, by view and outcome.",
	}, []string{"view", "outcome"})
	m.duration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "generation_duration_seconds",
		Help:      "Wall time of a generation run, by view.",
		Buckets:   m.histogramBuckets,
	}, []string{"view"})
	m.lastSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful generation.",
	})
}

// ObserveRows records the outcome of normalizing one sheet.
func (m *Manager) ObserveRows(rows, withIssues, cells int) {
	if m == nil {
		return
	}
	m.rowsRead.Add(float64(rows))
	m.rowsWithIssues.Add(float64(withIssues))
	m.cellsDefaulted.Add(float64(cells))
}

// ObserveRendered records a document written for view.
func (m *Manager) ObserveRendered(view string, events, bytes int) {
	if m == nil {
		return
	}
	m.eventsRendered.WithLabelValues(view).Add(float64(events))
	m.outputBytes.WithLabelValues(view).Set(float64(bytes))
}

// ObserveGeneration records one run; err decides the outcome label.
func (m *Manager) ObserveGeneration(view string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	} else {
		m.lastSuccess.SetToCurrentTime()
	}
	m.generations.WithLabelValues(view, outcome).Inc()
	m.duration.WithLabelValues(view).Observe(d.Seconds())
}

// Gatherer exposes the registry, for tests and custom exporters.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in text exposition format. The
// file is replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
