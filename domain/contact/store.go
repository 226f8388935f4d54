package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// Store persists contact submissions
type Store interface {
	Create(ctx context.Context, s *Submission) error
	MarkNotified(ctx context.Context, id string) error
	// Durable reports whether a stored submission survives a restart.
	Durable() bool
}

// NewStore returns a bun-backed store, or a log-only store when the
// database is disabled.
func NewStore(db *bun.DB, log *slog.Logger) Store {
	if db == nil {
		log.Info("contact submissions will be logged, not stored")
		return NewLogStore(log)
	}
	return NewBunStore(db, log)
}

// BunStore writes submissions to PostgreSQL
type BunStore struct {
	db  bun.IDB
	log *slog.Logger
}

func NewBunStore(db bun.IDB, log *slog.Logger) *BunStore {
	return &BunStore{
		db:  db,
		log: log.With(logger.Scope("contact.store")),
	}
}

func (s *BunStore) Create(ctx context.Context, sub *Submission) error {
	if _, err := s.db.NewInsert().Model(sub).Exec(ctx); err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (s *BunStore) MarkNotified(ctx context.Context, id string) error {
	_, err := s.db.NewUpdate().
		Model((*Submission)(nil)).
		Set("notified = ?", true).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mark submission %s notified: %w", id, err)
	}
	return nil
}

func (s *BunStore) Durable() bool { return true }

// LogStore only logs submissions
type LogStore struct {
	log *slog.Logger
}

func NewLogStore(log *slog.Logger) *LogStore {
	return &LogStore{log: log.With(logger.Scope("contact.store"))}
}

func (s *LogStore) Create(ctx context.Context, sub *Submission) error {
	s.log.Info("contact submission",
		slog.String("id", sub.ID),
		slog.String("name", sub.Name),
		slog.String("email", sub.Email),
		slog.String("company", sub.Company),
		slog.String("budget", sub.Budget),
		slog.Int("message_len", len(sub.Message)),
	)
	return nil
}

func (s *LogStore) MarkNotified(ctx context.Context, id string) error { return nil }

func (s *LogStore) Durable() bool { return false }
