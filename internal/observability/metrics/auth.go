package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of bearer tokens issued",
		},
	)

	AuthTokensRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_revoked_total",
			Help: "Total number of bearer tokens revoked",
		},
	)

	AuthTokenVerifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of bearer token verifications",
		},
	)

	AuthTokenVerificationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_failed_total",
			Help: "Total number of failed bearer token verifications",
		},
	)

	AuthRegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	AuthLoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of successful logins",
		},
	)

	AuthGuardRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_guard_rejections_total",
			Help: "Total number of requests rejected by the auth guard",
		},
	)
)
