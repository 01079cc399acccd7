package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapActionConflicts counts conditional swap writes that matched zero
	// rows: a concurrent actor won the race or the caller was not entitled
	// to act. The API reports both as the same not-found-class error, the
	// metric keeps the conflict visible to operators.
	SwapActionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swap_action_conflicts_total",
		Help: "Conditional swap request writes that affected zero rows, by operation.",
	}, []string{"operation"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Redis command errors by command.",
	}, []string{"command"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
