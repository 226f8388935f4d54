// Package database provides the optional PostgreSQL pool and bun ORM used to
// persist contact submissions and indexing runs. With DATABASE_ENABLED=false
// both providers return nil and callers fall back to non-persistent behavior.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
)

const (
	applicationName = "wacky-website"

	// Form writes are single-row inserts and updates. Anything slower is a
	// stuck lock, not real work.
	statementTimeout   = 5 * time.Second
	slowQueryThreshold = 500 * time.Millisecond
	connectTimeout     = 10 * time.Second
	healthCheckPeriod  = time.Minute
)

var Module = fx.Module("database",
	fx.Provide(
		NewPgxPool,
		NewBunDB,
	),
)

// PoolConfig builds the pgx pool settings for the site's small write load.
// MinConns never exceeds MaxConns, and every session carries the application
// name and a statement timeout.
func PoolConfig(db config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(db.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	maxConns := max(db.MaxOpenConns, 1)
	pc.MaxConns = int32(maxConns)
	pc.MinConns = int32(min(max(db.MaxIdleConns, 0), maxConns))
	pc.MaxConnIdleTime = db.MaxIdleTime
	pc.HealthCheckPeriod = healthCheckPeriod
	pc.ConnConfig.ConnectTimeout = connectTimeout

	params := pc.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	params["statement_timeout"] = strconv.FormatInt(statementTimeout.Milliseconds(), 10)

	return pc, nil
}

// NewPgxPool connects and pings once. A configured but unreachable database
// stops startup rather than silently dropping submissions.
func NewPgxPool(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	log = log.With(logger.Scope("database"))

	if !cfg.Database.Enabled {
		log.Info("database disabled, contact submissions will only be logged")
		return nil, nil
	}

	pc, err := PoolConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s:%d/%s: %w", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database, err)
	}

	log.Info("database connected",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
		slog.Int("max_conns", int(pc.MaxConns)),
		slog.Int("min_conns", int(pc.MinConns)),
	)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			stat := pool.Stat()
			log.Info("closing database pool",
				slog.Int64("acquires", stat.AcquireCount()),
				slog.Duration("acquire_wait", stat.AcquireDuration()))
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

// NewBunDB wraps the pool in bun. A nil pool yields a nil DB, which the
// contact store and indexing recorder treat as "not persisted".
func NewBunDB(lc fx.Lifecycle, pool *pgxpool.Pool, cfg *config.Config, log *slog.Logger) (*bun.DB, error) {
	if pool == nil {
		return nil, nil
	}

	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	db.AddQueryHook(NewQueryHook(log, cfg.Database.QueryDebug))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}

// QueryHook counts every query by operation and outcome, warns on slow
// queries and logs the rest at debug level when verbose.
type QueryHook struct {
	log     *slog.Logger
	verbose bool
}

func NewQueryHook(log *slog.Logger, verbose bool) *QueryHook {
	return &QueryHook{
		log:     log.With(logger.Scope("bun")),
		verbose: verbose,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	op := event.Operation()
	took := time.Since(event.StartTime)

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		metrics.DBQueries.WithLabelValues(op, metrics.OutcomeError).Inc()
		h.log.Error("query failed",
			slog.String("operation", op),
			slog.String("query", event.Query),
			slog.Duration("duration", took),
			logger.Error(event.Err))
		return
	case took > slowQueryThreshold:
		metrics.DBSlowQueries.Inc()
		h.log.Warn("slow query",
			slog.String("operation", op),
			slog.String("query", event.Query),
			slog.Duration("duration", took))
	case h.verbose:
		h.log.Debug("query",
			slog.String("operation", op),
			slog.String("query", event.Query),
			slog.Duration("duration", took))
	}
	metrics.DBQueries.WithLabelValues(op, metrics.OutcomeOK).Inc()
}
