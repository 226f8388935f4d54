package subscribe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/tracing"
)

// Notifier sends the subscription emails. *email.Notifier satisfies it.
type Notifier interface {
	SubscribeConfirmation(ctx context.Context, s email.Subscription) error
	SubscribeNotification(ctx context.Context, s email.Subscription) error
}

// Service adds newsletter subscribers
type Service struct {
	list     email.ListManager
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewService(list email.ListManager, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		list:     list,
		notifier: notifier,
		log:      log.With(logger.Scope("subscribe")),
		now:      time.Now,
	}
}

// Subscribe adds address to the mailing list and sends the confirmation.
// List and confirmation failures are returned; a failed owner notification
// is only logged.
func (s *Service) Subscribe(ctx context.Context, address, remoteIP string) error {
	ctx, span := tracing.Start(ctx, "subscribe.add")
	defer span.End()

	sub := email.Subscription{
		Email:      address,
		RemoteIP:   remoteIP,
		ReceivedAt: s.now(),
	}

	if err := s.list.AddMember(ctx, address, ""); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("add list member: %w", err)
	}

	if err := s.notifier.SubscribeConfirmation(ctx, sub); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("send confirmation: %w", err)
	}

	if err := s.notifier.SubscribeNotification(ctx, sub); err != nil {
		s.log.Warn("owner notification failed",
			slog.String("email", address),
			logger.Error(err))
	}

	s.log.Info("new subscriber", slog.String("email", address))
	return nil
}
