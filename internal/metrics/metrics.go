// Package metrics exposes Prometheus counters for the authentication flows.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobify"

// Metrics holds the auth counters. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	signups         *prometheus.CounterVec
	signins         *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
}

// New creates the counters on a private registry, alongside Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "signups_total",
			Help:      "Sign-up attempts by outcome.",
		}, []string{"outcome"}),
		signins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "signins_total",
			Help:      "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		guardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "rejections_total",
			Help:      "Requests rejected by the token guard, by cause.",
		}, []string{"cause"}),
	}
	reg.MustRegister(
		m.signups,
		m.signins,
		m.guardRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Signup counts a sign-up attempt.
func (m *Metrics) Signup(outcome string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(outcome).Inc()
}

// Signin counts a sign-in attempt.
func (m *Metrics) Signin(outcome string) {
	if m == nil {
		return
	}
	m.signins.WithLabelValues(outcome).Inc()
}

// GuardRejection counts a request turned away by the token guard.
func (m *Metrics) GuardRejection(cause string) {
	if m == nil {
		return
	}
	m.guardRejections.WithLabelValues(cause).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
