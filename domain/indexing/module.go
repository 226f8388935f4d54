package indexing

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

var Module = fx.Module("indexing",
	fx.Provide(
		NewPublishers,
		NewRunRecorder,
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

// NewPublishers builds every configured provider. A provider that fails to
// initialize is logged and skipped so the site still starts.
func NewPublishers(cfg *config.Config, log *slog.Logger) []Publisher {
	var out []Publisher

	if cfg.Indexing.GoogleEnabled() || cfg.Indexing.GoogleEndpoint != "" {
		p, err := NewGooglePublisher(context.Background(), &cfg.Indexing, log)
		if err != nil {
			log.Error("google indexing disabled", logger.Error(err))
		} else {
			out = append(out, p)
		}
	}

	if cfg.Indexing.IndexNowEnabled() {
		p, err := NewIndexNowPublisher(cfg, log)
		if err != nil {
			log.Error("indexnow disabled", logger.Error(err))
		} else {
			out = append(out, p)
		}
	}

	names := make([]string, len(out))
	for i, p := range out {
		names[i] = p.Name()
	}
	log.Info("indexing providers", slog.Any("providers", names))
	return out
}

// RegisterRoutes registers POST /api/indexing. Without an API token the
// endpoint does not exist.
func RegisterRoutes(e *echo.Echo, h *Handler, cfg *config.Config) {
	if cfg.Indexing.APIToken == "" {
		return
	}
	e.POST("/api/indexing", h.Submit, RequireToken(cfg.Indexing.APIToken))
}
