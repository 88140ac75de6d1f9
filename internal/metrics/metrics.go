// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts generation attempts by outcome
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postcraft",
		Name:      "generations_total",
		Help:      "Number of post generation attempts by outcome.",
	}, []string{"mode", "outcome"})

	// GenerationDuration observes end-to-end generation latency
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "postcraft",
		Name:      "generation_duration_seconds",
		Help:      "End-to-end latency of post generation including the LLM call.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"mode"})

	// ExamplesSelected observes how many few-shot examples each prompt used
	ExamplesSelected = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "postcraft",
		Name:      "examples_selected",
		Help:      "Few-shot examples included per prompt.",
		Buckets:   []float64{0, 1, 2},
	})

	// HTTPRequests counts HTTP requests by route and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postcraft",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes HTTP handler latency
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "postcraft",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
