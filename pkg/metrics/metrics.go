// Package metrics holds the Prometheus collectors shared by the API domains.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_http_requests_total",
		Help: "HTTP requests served, by route and status code",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wacky_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_form_submissions_total",
		Help: "Subscribe and contact form submissions by outcome",
	}, []string{"form", "outcome"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_emails_sent_total",
		Help: "Transactional emails by template and outcome",
	}, []string{"template", "outcome"})

	IndexingSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_indexing_submissions_total",
		Help: "URLs submitted to search engines by provider and outcome",
	}, []string{"provider", "outcome"})

	ParticleFields = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wacky_particle_fields_sampled_total",
		Help: "Particle fields sampled for the browser or previews",
	})

	ScheduledRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_scheduled_task_runs_total",
		Help: "Scheduled task runs by task and outcome",
	}, []string{"task", "outcome"})

	DBQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wacky_db_queries_total",
		Help: "Database queries by operation and outcome",
	}, []string{"operation", "outcome"})

	DBSlowQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wacky_db_slow_queries_total",
		Help: "Database queries slower than the slow query threshold",
	})

	SystemHealthScore = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wacky_system_health_score",
		Help: "Host health score (0-100, higher is healthier)",
	})

	SystemCPULoad = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wacky_system_cpu_load_avg_1m",
		Help: "Host 1 minute load average",
	})

	SystemMemoryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wacky_system_memory_utilization_percent",
		Help: "Host memory utilization percentage",
	})
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeLimited  = "rate_limited"
	OutcomeError    = "error"
	OutcomeDisabled = "disabled"
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency for echo routes.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if ok := asHTTPError(err, &he); ok {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
