package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the booking-core Prometheus counters. Constructed once per
// process; all helpers are nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	WebhooksReceived   prometheus.Counter
	WebhooksDeduped    prometheus.Counter
	CommandsTotal      *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	TransitionsTotal   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		WebhooksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booking_webhooks_received_total",
			Help: "Total inbound webhook deliveries",
		}),
		WebhooksDeduped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "booking_webhooks_deduped_total",
			Help: "Inbound deliveries dropped as duplicates by provider message id",
		}),
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commands_total",
			Help: "Parsed webhook commands by intent and outcome",
		}, []string{"intent", "outcome"}),
		NotificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Outbound notifications by outcome",
		}, []string{"outcome"}),
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Committed booking status transitions by target status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncWebhook() {
	if m != nil {
		m.WebhooksReceived.Inc()
	}
}

func (m *Metrics) IncDeduped() {
	if m != nil {
		m.WebhooksDeduped.Inc()
	}
}

func (m *Metrics) IncCommand(intent, outcome string) {
	if m != nil {
		m.CommandsTotal.WithLabelValues(intent, outcome).Inc()
	}
}

func (m *Metrics) IncNotification(outcome string) {
	if m != nil {
		m.NotificationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncTransition(status string) {
	if m != nil {
		m.TransitionsTotal.WithLabelValues(status).Inc()
	}
}
