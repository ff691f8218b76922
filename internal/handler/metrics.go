package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refinementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_refiner_refinements_total",
			Help: "Total number of prompt refinement requests by status.",
		},
		[]string{"status"},
	)

	modificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_refiner_modifications_total",
		Help: "Total number of prompt modification requests.",
	})

	chatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_refiner_chat_requests_total",
			Help: "Total number of chat requests by status.",
		},
		[]string{"status"},
	)

	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prompt_refiner_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_refiner_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_refiner_token_verifications_total",
			Help: "Total number of access token verification attempts by status.",
		},
		[]string{"status"},
	)
)

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
