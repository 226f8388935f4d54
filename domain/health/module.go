package health

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/scheduler"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/syshealth"
)

var Module = fx.Module("health",
	fx.Provide(newHandlerFromPool),
	fx.Invoke(RegisterRoutes),
)

// newHandlerFromPool avoids wrapping a nil pool in a non-nil interface
func newHandlerFromPool(pool *pgxpool.Pool, monitor *syshealth.Monitor, sched *scheduler.Scheduler) *Handler {
	if pool == nil {
		return NewHandler(nil, monitor, sched)
	}
	return NewHandler(pool, monitor, sched)
}
