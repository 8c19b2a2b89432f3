package metrics

import "github.com/prometheus/client_golang/prometheus"

// BackendMetrics exposes counters/histograms for upstream clinic API calls.
type BackendMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	m := &BackendMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total upstream clinic API requests",
		}, []string{"resource", "outcome"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "backend",
			Name:      "request_latency_seconds",
			Help:      "Latency of upstream clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *BackendMetrics) ObserveRequest(resource, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(resource, outcome).Inc()
	m.requestLatency.WithLabelValues(resource).Observe(seconds)
}

// IntakeMetrics tracks walk-in wizard step transitions and outcomes.
type IntakeMetrics struct {
	transitionsTotal *prometheus.CounterVec
	queuedTotal      *prometheus.CounterVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "intake",
			Name:      "transitions_total",
			Help:      "Total walk-in wizard step transitions",
		}, []string{"step", "outcome"}),
		queuedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "intake",
			Name:      "queued_total",
			Help:      "Total walk-in patients queued",
		}, []string{"registration"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitionsTotal, m.queuedTotal)
	return m
}

func (m *IntakeMetrics) ObserveTransition(step, outcome string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(step, outcome).Inc()
}

func (m *IntakeMetrics) ObserveQueued(newRegistration bool) {
	if m == nil {
		return
	}
	label := "existing"
	if newRegistration {
		label = "new"
	}
	m.queuedTotal.WithLabelValues(label).Inc()
}
