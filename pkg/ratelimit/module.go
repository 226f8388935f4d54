package ratelimit

import (
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
)

var Module = fx.Module("ratelimit",
	fx.Provide(func(cfg *config.Config) *Registry {
		return NewRegistry(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}),
)
