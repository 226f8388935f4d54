package scheduler

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/indexing"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/ratelimit"
)

// Module provides scheduled task functionality
var Module = fx.Module("scheduler",
	fx.Provide(func(cfg *config.Config, log *slog.Logger) *Scheduler {
		return NewScheduler(log, cfg.Scheduler.TaskTimeout)
	}),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for creating scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Indexing  *indexing.Service
	Limiters  *ratelimit.Registry
	Cfg       *config.Config
	Log       *slog.Logger
}

// RegisterTasks registers all scheduled tasks. An invalid schedule is logged
// and the task skipped.
func RegisterTasks(p TaskParams) error {
	if !p.Cfg.Scheduler.Enabled {
		p.Log.Info("scheduler disabled, skipping task registration")
		return nil
	}

	if p.Cfg.Indexing.Schedule != "" {
		reindex := NewReindexTask(p.Indexing, p.Log)
		if err := p.Scheduler.AddCronTask(TaskReindex, p.Cfg.Indexing.Schedule, reindex.Run); err != nil {
			p.Log.Error("failed to register reindex task", logger.Error(err))
		}
	}

	sweep := NewLimiterSweepTask(p.Limiters, p.Cfg.Scheduler.LimiterMaxIdle, p.Log)
	if err := p.Scheduler.AddIntervalTask(TaskLimiterSweep, p.Cfg.Scheduler.LimiterSweepInterval, sweep.Run); err != nil {
		p.Log.Error("failed to register limiter sweep task", logger.Error(err))
	}

	p.Log.Info("registered scheduled tasks",
		slog.Any("tasks", p.Scheduler.ListTasks()))
	return nil
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler, cfg *config.Config) {
	if !cfg.Scheduler.Enabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
