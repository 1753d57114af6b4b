// Package metrics exposes Prometheus counters for table operations and
// persistence.
//
// # Basic Usage
//
//	metrics.RecordOperation("sort", err)
//	metrics.PersistBytes.WithLabelValues("s3").Add(float64(len(content)))
//
//	timer := metrics.NewTimer()
//	upload()
//	metrics.PersistLatency.WithLabelValues("s3").Observe(timer.Stop().Seconds())
//
// All collectors register with the default Prometheus registry on import.
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tabular"

// Outcome labels for TableOperations.
const (
	OutcomeOK         = "ok"
	OutcomeDiagnostic = "diagnostic"
)

var (
	// TableOperations counts table operations by name and outcome
	TableOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_operations_total",
			Help:      "Table operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// CellsParsed counts cells produced by the CSV parser
	CellsParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_parsed_total",
			Help:      "Cells produced by CSV parsing",
		},
	)

	// PersistBytes counts bytes handed to each persistence backend
	PersistBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_bytes_total",
			Help:      "Bytes persisted by backend",
		},
		[]string{"backend"},
	)

	// PersistErrors counts failed persist calls per backend
	PersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_errors_total",
			Help:      "Failed persist calls by backend",
		},
		[]string{"backend"},
	)

	// PersistLatency tracks persist call duration in seconds
	PersistLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "persist_duration_seconds",
			Help:      "Persist call duration by backend",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
		[]string{"backend"},
	)
)

// RecordOperation counts one table operation. A non-nil err marks the
// outcome as a diagnostic.
func RecordOperation(operation string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeDiagnostic
	}
	TableOperations.WithLabelValues(operation, outcome).Inc()
}

// Timer measures elapsed time
type Timer struct {
	start time.Time
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the elapsed time
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Sample is one counter or histogram series in a Snapshot.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers the tabular_* series from the default registry.
// Histograms report their sample count.
func Snapshot() ([]Sample, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		name := mf.GetName()
		if len(name) < len(namespace) || name[:len(namespace)] != namespace {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := Sample{Name: name, Labels: map[string]string{}}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				s.Value = float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			}
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}
