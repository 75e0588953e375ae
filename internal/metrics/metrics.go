package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Inbound outcomes
const (
	OutcomeNotReady  = "ignored_not_ready"
	OutcomeDiscarded = "discarded"
	OutcomeStored    = "stored"
)

// Metrics holds the bot's Prometheus collectors
type Metrics struct {
	InboundMessages *prometheus.CounterVec
	AutoReplies     *prometheus.CounterVec
	SendFailures    *prometheus.CounterVec
	ConnectionReady prometheus.Gauge
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		InboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desk",
			Name:      "inbound_messages_total",
			Help:      "Inbound WhatsApp messages by handling outcome.",
		}, []string{"outcome"}),
		AutoReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desk",
			Name:      "auto_replies_total",
			Help:      "Automated replies by the rule that produced them.",
		}, []string{"kind"}),
		SendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "desk",
			Name:      "send_failures_total",
			Help:      "Outbound messages the transport failed to deliver.",
		}, []string{"origin"}),
		ConnectionReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "desk",
			Name:      "connection_ready",
			Help:      "1 when the WhatsApp session is ready, 0 otherwise.",
		}),
	}

	for _, c := range []prometheus.Collector{m.InboundMessages, m.AutoReplies, m.SendFailures, m.ConnectionReady} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewNop creates collectors that are not registered anywhere
func NewNop() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}

// SetReady records the connection readiness
func (m *Metrics) SetReady(ready bool) {
	if ready {
		m.ConnectionReady.Set(1)
		return
	}
	m.ConnectionReady.Set(0)
}
