package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки status
const (
	statusOK    = "ok"
	statusEmpty = "empty"
	statusError = "error"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_refiner_ai_requests_total",
			Help: "Total number of requests to the generation provider.",
		},
		[]string{"provider", "model", "operation", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_refiner_ai_request_duration_seconds",
			Help:    "Histogram of generation provider request durations.",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "model", "operation"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_refiner_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20), // 250, 500, ..., 5000
		},
		[]string{"provider", "model"},
	)
	aiRateLimitWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_refiner_ai_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the outbound rate limiter.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"provider"},
	)
)
