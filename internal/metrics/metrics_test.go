/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementEntries("party")
	m.IncrementEntries("party")
	m.IncrementEntries("service")
	m.IncrementStored(true)
	m.IncrementStored(false)
	m.IncrementStored(false)
	m.IncrementFlagFailures()
	m.ObserveHarvest(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesHarvested.WithLabelValues("party")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntriesHarvested.WithLabelValues("service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ObjectsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ObjectsUpdated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlagFailures))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var sum float64
	for _, mf := range mfs {
		if mf.GetName() == "rifcs_harvest_duration_seconds" {
			sum = mf.GetMetric()[0].GetHistogram().GetSampleSum()
		}
	}
	assert.Equal(t, 1.5, sum)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementEntries("party")
		m.IncrementStored(true)
		m.IncrementFlagFailures()
		m.ObserveHarvest(1500 * time.Millisecond)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncrementStored(true)

	path := filepath.Join(t.TempDir(), "rifcs_harvest.prom")
	require.NoError(t, WriteTextfile(path, reg))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rifcs_harvest_objects_created_total 1")
}
