package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// Task names
const (
	TaskReindex      = "reindex_sitemap"
	TaskLimiterSweep = "limiter_sweep"
)

// Reindexer resubmits the sitemap. *indexing.Service satisfies it.
type Reindexer interface {
	Enabled() bool
	Reindex(ctx context.Context) error
}

// Sweeper drops idle rate limiter buckets. *ratelimit.Registry satisfies it.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
}

// ReindexTask submits every sitemap URL to the configured search engines
type ReindexTask struct {
	indexer Reindexer
	log     *slog.Logger
}

func NewReindexTask(indexer Reindexer, log *slog.Logger) *ReindexTask {
	return &ReindexTask{
		indexer: indexer,
		log:     log.With(logger.Scope("scheduler.reindex")),
	}
}

// Run executes the reindex
func (t *ReindexTask) Run(ctx context.Context) error {
	if !t.indexer.Enabled() {
		t.log.Debug("no indexing provider, skipping")
		return nil
	}
	return t.indexer.Reindex(ctx)
}

// LimiterSweepTask keeps the per-IP limiter maps from growing unbounded
type LimiterSweepTask struct {
	sweeper Sweeper
	maxIdle time.Duration
	log     *slog.Logger
}

func NewLimiterSweepTask(sweeper Sweeper, maxIdle time.Duration, log *slog.Logger) *LimiterSweepTask {
	return &LimiterSweepTask{
		sweeper: sweeper,
		maxIdle: maxIdle,
		log:     log.With(logger.Scope("scheduler.limiter_sweep")),
	}
}

// Run executes the sweep
func (t *LimiterSweepTask) Run(ctx context.Context) error {
	if removed := t.sweeper.Sweep(t.maxIdle); removed > 0 {
		t.log.Debug("swept idle limiter buckets", slog.Int("removed", removed))
	}
	return nil
}
