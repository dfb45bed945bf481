package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafabene/unusualpills/internal/domain/ports"
)

const namespace = "unusualpills"

// Prometheus implementa ports.Metrics com contadores Prometheus
type Prometheus struct {
	registry  *prometheus.Registry
	signups   *prometheus.CounterVec
	checkouts *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// New cria os contadores em um registry próprio, junto dos coletores de processo e runtime
func New() *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Prometheus{
		registry: registry,
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signup_submissions_total",
			Help:      "Free shirt form submissions by outcome.",
		}, []string{"outcome"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_sessions_total",
			Help:      "Checkout sessions created, split by whether the shirt discount applied.",
		}, []string{"discounted"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_failures_total",
			Help:      "Checkout requests that did not produce a session.",
		}, []string{"reason"}),
	}
	registry.MustRegister(m.signups, m.checkouts, m.failures)

	return m
}

var _ ports.Metrics = (*Prometheus)(nil)

func (m *Prometheus) SignupRecorded(outcome string) {
	m.signups.WithLabelValues(outcome).Inc()
}

func (m *Prometheus) CheckoutCreated(discounted bool) {
	m.checkouts.WithLabelValues(strconv.FormatBool(discounted)).Inc()
}

func (m *Prometheus) CheckoutFailed(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

// Handler expõe o registry no formato de exposição do Prometheus
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry retorna o registry subjacente
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}
