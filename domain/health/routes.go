package health

import (
	"github.com/labstack/echo/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
)

// RegisterRoutes registers the probes and the Prometheus endpoint
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Healthz)
	e.GET("/ready", h.Ready)
	e.GET("/api/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
