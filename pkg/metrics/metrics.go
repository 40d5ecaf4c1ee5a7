package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lawfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type and scope."},
		[]string{"limiter", "scope"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lawfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type and scope."},
		[]string{"limiter", "scope"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lawfolio", Name: "store_operations_total", Help: "Content store calls by collection, operation and outcome."},
		[]string{"collection", "op", "outcome"},
	)
	MessagesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "lawfolio", Name: "contact_messages_received_total", Help: "Contact form submissions stored."},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "lawfolio", Name: "admin_login_attempts_total", Help: "Admin login attempts by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(MessagesReceived)
	reg.MustRegister(LoginAttempts)
}
