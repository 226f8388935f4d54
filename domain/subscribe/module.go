package subscribe

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/ratelimit"
)

var Module = fx.Module("subscribe",
	fx.Provide(
		asNotifier,
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func asNotifier(n *email.Notifier) Notifier { return n }

// RegisterRoutes registers the subscribe endpoint behind the per-IP limiter
func RegisterRoutes(e *echo.Echo, h *Handler, limiters *ratelimit.Registry) {
	limiter := limiters.For("subscribe")
	e.POST("/api/subscribe", h.Subscribe, limiter.Middleware(func(echo.Context) {
		metrics.FormSubmissions.WithLabelValues("subscribe", metrics.OutcomeLimited).Inc()
	}))
}
