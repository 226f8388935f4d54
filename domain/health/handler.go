package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/scheduler"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/version"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/syshealth"
)

// Pinger reports database reachability. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemReporter reports host load. *syshealth.Monitor satisfies it.
type SystemReporter interface {
	Health() syshealth.Metrics
}

// TaskLister lists background tasks. *scheduler.Scheduler satisfies it.
type TaskLister interface {
	GetTaskInfo() []scheduler.TaskInfo
}

// Handler handles health check requests
type Handler struct {
	db      Pinger
	sys     SystemReporter
	tasks   TaskLister
	startAt time.Time
}

// NewHandler creates a health handler. A nil db skips the database check,
// a nil sys skips the host check and nil tasks omits the task list.
func NewHandler(db Pinger, sys SystemReporter, tasks TaskLister) *Handler {
	return &Handler{
		db:      db,
		sys:     sys,
		tasks:   tasks,
		startAt: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string               `json:"status"`
	Timestamp string               `json:"timestamp"`
	Uptime    string               `json:"uptime"`
	Version   string               `json:"version"`
	Checks    map[string]Check     `json:"checks"`
	System    *syshealth.Metrics   `json:"system,omitempty"`
	Tasks     []scheduler.TaskInfo `json:"tasks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy"}
}

// checkSystem reports host pressure. A critical host degrades the site but
// does not make it unhealthy.
func (h *Handler) checkSystem() (Check, *syshealth.Metrics) {
	if h.sys == nil {
		return Check{Status: "disabled"}, nil
	}
	m := h.sys.Health()
	switch {
	case m.Stale:
		return Check{Status: "unknown", Message: "metrics are stale"}, &m
	case m.Zone == syshealth.ZoneCritical:
		return Check{Status: "degraded", Message: "host under heavy load"}, &m
	}
	return Check{Status: "healthy"}, &m
}

// Health returns the overall service health
func (h *Handler) Health(c echo.Context) error {
	db := h.checkDatabase(c.Request().Context())
	sys, sysMetrics := h.checkSystem()

	status := "healthy"
	switch {
	case db.Status == "unhealthy":
		status = "unhealthy"
	case sys.Status == "degraded":
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).Round(time.Second).String(),
		Version:   version.Version,
		Checks:    map[string]Check{"database": db, "system": sys},
		System:    sysMetrics,
	}
	if h.tasks != nil {
		response.Tasks = h.tasks.GetTaskInfo()
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, response)
}

// Healthz is the liveness probe
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready is the readiness probe
func (h *Handler) Ready(c echo.Context) error {
	if db := h.checkDatabase(c.Request().Context()); db.Status == "unhealthy" {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":  "not_ready",
			"message": "Database connection failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "ready",
	})
}
