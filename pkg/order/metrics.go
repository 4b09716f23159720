package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var orderOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "qr_ordering_order_operations_total",
		Help: "Total number of order operations",
	},
	[]string{"operation", "status"},
)

func recordOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	orderOperations.WithLabelValues(operation, status).Inc()
}
