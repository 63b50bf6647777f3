package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts inbound HTTP requests.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_service_requests_total",
		Help: "The total number of requests",
	})

	// ResponsesTotal counts responses by status code.
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_service_responses_total",
		Help: "The total number of responses by status code",
	}, []string{"status"})

	// RequestDuration observes request handling time.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_service_request_duration_seconds",
		Help:    "The request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RequestDurationByPath observes handling time per method and route.
	RequestDurationByPath = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_service_request_duration_by_path_seconds",
		Help:    "The request duration in seconds by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// StoreRequestsTotal counts calls to the two backing stores by outcome.
	StoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_service_store_requests_total",
		Help: "The total number of identity/profile store calls",
	}, []string{"store", "status"})

	// PartialWritesTotal counts updates where exactly one of the two store
	// writes failed. These need manual reconciliation.
	PartialWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_service_partial_writes_total",
		Help: "The total number of half-applied user updates",
	}, []string{"failed_store"})
)
