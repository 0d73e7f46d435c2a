package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReadingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_readings_submitted_total",
			Help: "Accepted meter reading submissions",
		},
	)

	PaymentsCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_payments_collected_total",
			Help: "Successful bill payments",
		},
	)

	AmountCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_amount_collected_total",
			Help: "Monetary units collected through successful payments",
		},
	)
)
