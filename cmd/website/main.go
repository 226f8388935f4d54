// Package main provides the entry point for the Wacky Works Digital website
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/contact"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/health"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/indexing"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/particlefield"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/scheduler"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/subscribe"
	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/tracing"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/database"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/handlers"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/migrate"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/server"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/ratelimit"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/syshealth"
)

func main() {
	// .env.local overrides .env; Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(options()...).Run()
}

// options returns the full application graph
func options() []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		content.Module,
		database.Module,
		migrate.Module,
		tracing.Module,
		ratelimit.Module,
		syshealth.Module,
		server.Module,

		// Site pages (chi)
		handlers.Module,

		// API modules (echo)
		health.Module,
		email.Module,
		subscribe.Module,
		contact.Module,
		indexing.Module,
		particlefield.Module,

		// Scheduler module (cron-based reindex and limiter sweeps)
		scheduler.Module,
	}
}
