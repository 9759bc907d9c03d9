package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the service-level prometheus instruments.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	invitesCreated  prometheus.Counter
	invitesAccepted prometheus.Counter
	deliveryResults *prometheus.CounterVec
}

// New registers the instruments on the default registry.
func New() *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loanridge_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loanridge_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		invitesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loanridge_invitations_created_total",
			Help: "Invitations created.",
		}),
		invitesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loanridge_invitations_accepted_total",
			Help: "Invitations accepted.",
		}),
		deliveryResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loanridge_delivery_attempts_total",
			Help: "Delivery attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}

	prometheus.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.invitesCreated,
		m.invitesAccepted,
		m.deliveryResults,
	)

	return m
}

// RecordInviteCreated increments the created counter.
func (m *Metrics) RecordInviteCreated() {
	if m == nil {
		return
	}
	m.invitesCreated.Inc()
}

// RecordInviteAccepted increments the accepted counter.
func (m *Metrics) RecordInviteAccepted() {
	if m == nil {
		return
	}
	m.invitesAccepted.Inc()
}

// RecordDelivery counts a channel attempt outcome ("ok" or "failed").
func (m *Metrics) RecordDelivery(channel, outcome string) {
	if m == nil {
		return
	}
	m.deliveryResults.WithLabelValues(strings.ToLower(channel), outcome).Inc()
}
