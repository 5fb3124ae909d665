package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReceiptsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "item_receipts_registered_total",
			Help: "Total item receipts registered, including bulk receive",
		},
	)

	InvoicesVerified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_verified_total",
			Help: "Total invoices transitioned from pending to verified",
		},
	)

	InvariantRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invariant_rejections_total",
			Help: "Requests rejected by server-side business invariants",
		},
		[]string{"invariant"},
	)
)
