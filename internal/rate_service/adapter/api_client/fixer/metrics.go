package fixer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess       = "success"
	outcomeProviderError = "provider_error"
	outcomeNetworkError  = "network_error"
	outcomeMalformed     = "malformed_response"
)

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixer_provider_requests_total",
		Help: "Outbound requests to the rate provider by outcome.",
	}, []string{"outcome"})

	providerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fixer_provider_request_duration_seconds",
		Help:    "Duration of outbound requests to the rate provider.",
		Buckets: prometheus.DefBuckets,
	})
)

func observe(outcome string, start time.Time) {
	providerRequests.WithLabelValues(outcome).Inc()
	providerDuration.Observe(time.Since(start).Seconds())
}
