package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherCount(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return len(mf.GetMetric())
		}
	}
	return 0
}

func TestBackendMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBackendMetrics(reg)

	m.ObserveRequest("schedules", "ok", 0.05)
	m.ObserveRequest("schedules", "error", 0.2)
	m.ObserveRequest("patients", "ok", 0.01)

	assert.Equal(t, 3, gatherCount(t, reg, "backoffice_backend_requests_total"))
	assert.Equal(t, 2, gatherCount(t, reg, "backoffice_backend_request_latency_seconds"))
}

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveTransition("searching", "found")
	m.ObserveTransition("searching", "not_found")
	m.ObserveQueued(true)
	m.ObserveQueued(false)

	assert.Equal(t, 2, gatherCount(t, reg, "backoffice_intake_transitions_total"))
	assert.Equal(t, 2, gatherCount(t, reg, "backoffice_intake_queued_total"))
}

func TestNilReceiversAreSafe(t *testing.T) {
	var b *BackendMetrics
	var i *IntakeMetrics

	assert.NotPanics(t, func() {
		b.ObserveRequest("schedules", "ok", 0.1)
		i.ObserveTransition("confirming", "ok")
		i.ObserveQueued(true)
	})
}
