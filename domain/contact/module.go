package contact

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/ratelimit"
)

var Module = fx.Module("contact",
	fx.Provide(
		asNotifier,
		NewStore,
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func asNotifier(n *email.Notifier) Notifier { return n }

// RegisterRoutes registers the contact endpoint behind the per-IP limiter
func RegisterRoutes(e *echo.Echo, h *Handler, limiters *ratelimit.Registry) {
	limiter := limiters.For("contact")
	e.POST("/api/contact", h.Submit, limiter.Middleware(func(echo.Context) {
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeLimited).Inc()
	}))
}
