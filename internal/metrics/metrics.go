/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package metrics exposes harvest counters. A batch run has no scrape endpoint, so the registry
// is written to a node-exporter textfile when the run ends.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks harvested entries and object store outcomes. A nil *Metrics records nothing.
type Metrics struct {
	EntriesHarvested *prometheus.CounterVec
	ObjectsCreated   prometheus.Counter
	ObjectsUpdated   prometheus.Counter
	FlagFailures     prometheus.Counter
	HarvestDuration  prometheus.Histogram
}

// New registers the harvest metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EntriesHarvested: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rifcs_harvest_entries_total",
			Help: "Registry objects harvested, by class",
		}, []string{"class"}),
		ObjectsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "rifcs_harvest_objects_created_total",
			Help: "Digital objects created by the harvester",
		}),
		ObjectsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "rifcs_harvest_objects_updated_total",
			Help: "Existing digital objects merged by the harvester",
		}),
		FlagFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rifcs_harvest_flag_failures_total",
			Help: "Failures setting the render-pending property or closing an object",
		}),
		HarvestDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rifcs_harvest_duration_seconds",
			Help:    "Duration of a full harvest run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
	}
}

// IncrementEntries records one harvested entry of class.
func (m *Metrics) IncrementEntries(class string) {
	if m == nil {
		return
	}
	m.EntriesHarvested.WithLabelValues(class).Inc()
}

// IncrementStored records a created or updated object.
func (m *Metrics) IncrementStored(created bool) {
	if m == nil {
		return
	}
	if created {
		m.ObjectsCreated.Inc()
		return
	}
	m.ObjectsUpdated.Inc()
}

func (m *Metrics) IncrementFlagFailures() {
	if m == nil {
		return
	}
	m.FlagFailures.Inc()
}

// ObserveHarvest records the duration of a run.
func (m *Metrics) ObserveHarvest(d time.Duration) {
	if m == nil {
		return
	}
	m.HarvestDuration.Observe(d.Seconds())
}

// WriteTextfile writes everything g gathers to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
