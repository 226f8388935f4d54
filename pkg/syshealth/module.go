package syshealth

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
)

var Module = fx.Module("syshealth",
	fx.Provide(func(cfg *config.Config, log *slog.Logger) *Monitor {
		c := DefaultConfig()
		c.Interval = cfg.SystemHealthInterval
		return NewMonitor(c, log)
	}),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, m *Monitor) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			m.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			m.Stop()
			return nil
		},
	})
}
