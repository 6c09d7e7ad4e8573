package signaling

import "github.com/prometheus/client_golang/prometheus"

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "yollab_signaling_connections",
			Help: "Current number of active signaling connections.",
		},
	)
	wsMessagesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yollab_signaling_messages_delivered_total",
			Help: "Total signaling messages delivered to clients.",
		},
	)
	wsMessagesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yollab_signaling_messages_skipped_total",
			Help: "Total signaling messages dropped because the target connection was not writable.",
		},
	)
	wsSignalsRelayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yollab_signaling_relayed_total",
			Help: "Total offer/answer/candidate payloads relayed between peers.",
		},
	)
)

func init() {
	prometheus.MustRegister(wsConnections, wsMessagesDelivered, wsMessagesSkipped, wsSignalsRelayed)
}

func incConnections() {
	wsConnections.Inc()
}

func decConnections() {
	wsConnections.Dec()
}

func countDelivery(delivered bool) {
	if delivered {
		wsMessagesDelivered.Inc()
	} else {
		wsMessagesSkipped.Inc()
	}
}

func incRelayed() {
	wsSignalsRelayed.Inc()
}
