package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamdex_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// VotesCast counts comment votes by direction.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamdex_votes_cast_total",
		Help: "Total number of comment votes cast by direction",
	}, []string{"direction"})

	// TeamsCompleted counts transitions of a team into the complete state.
	TeamsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamdex_teams_completed_total",
		Help: "Total number of times a team reached six filled slots",
	})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the fiberprometheus middleware for HTTP metrics.
// fiberprometheus registers its collectors on the default registry, so the
// instance is created once and shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
