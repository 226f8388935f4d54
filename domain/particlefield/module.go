// Package particlefield serves sampled particle text to the browser and
// renders GIF previews of the animation.
package particlefield

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/syshealth"
)

var Module = fx.Module("particlefield",
	fx.Provide(
		NewService,
		newHandlerWithMonitor,
	),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/particles")
	g.GET("", h.Field)
	g.GET("/preview.gif", h.Preview)
}

func newHandlerWithMonitor(svc *Service, monitor *syshealth.Monitor, log *slog.Logger) *Handler {
	return NewHandler(svc, monitor, log)
}
