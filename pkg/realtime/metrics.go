package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_ordering_realtime_events_total",
			Help: "Total number of events emitted to rooms",
		},
		[]string{"event", "room"},
	)

	deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_ordering_realtime_deliveries_total",
			Help: "Total number of frames queued or dropped per connection",
		},
		[]string{"result"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qr_ordering_realtime_connections",
			Help: "Number of open realtime connections",
		},
	)
)
