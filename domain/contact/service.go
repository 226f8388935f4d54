package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wackyworksdigital/wearewacky-com-sub000/domain/email"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/tracing"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/validate"
)

const (
	maxNameLength    = 100
	maxCompanyLength = 120
	minMessageLength = 10
	maxMessageLength = 5000
)

// ErrNotDelivered means the submission was neither stored durably nor
// forwarded to the owner.
var ErrNotDelivered = errors.New("contact submission not delivered")

// Notifier forwards submissions to the owner. *email.Notifier satisfies it.
type Notifier interface {
	ContactNotification(ctx context.Context, m email.ContactMessage) error
}

// Meta is request metadata stored with a submission
type Meta struct {
	RemoteIP  string
	UserAgent string
}

// Service validates, stores and forwards contact submissions
type Service struct {
	store    Store
	notifier Notifier
	site     *content.Site
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(store Store, notifier Notifier, site *content.Site, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		site:     site,
		log:      log.With(logger.Scope("contact")),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Validate checks req and returns the cleaned submission. Field problems
// are reported together as a validation error.
func (s *Service) Validate(req Request) (*Submission, error) {
	errs := validate.Errors{}

	name := errs.Required("name", req.Name, "Please tell us your name")
	errs.Length("name", name, 0, maxNameLength, "Name is too long")

	address, err := validate.Email(req.Email)
	if err != nil {
		errs.Add("email", "Please enter a valid email address")
	}

	company := strings.TrimSpace(req.Company)
	errs.Length("company", company, 0, maxCompanyLength, "Company name is too long")

	if !s.site.ValidBudget(req.Budget) {
		errs.Add("budget", "Please pick one of the budget ranges")
	}

	message := errs.Required("message", req.Message, "Please tell us about your project")
	errs.Length("message", message, minMessageLength, maxMessageLength,
		fmt.Sprintf("Message must be between %d and %d characters", minMessageLength, maxMessageLength))

	if !errs.Empty() {
		return nil, apperror.NewValidation(errs).WithMessage("Please check the highlighted fields")
	}

	return &Submission{
		Name:    name,
		Email:   address,
		Company: company,
		Budget:  req.Budget,
		Message: message,
	}, nil
}

// Submit stores a validated submission and notifies the owner. A failed
// notification is only fatal when the store is not durable, since the
// message would otherwise be lost.
func (s *Service) Submit(ctx context.Context, sub *Submission, meta Meta) error {
	ctx, span := tracing.Start(ctx, "contact.submit")
	defer span.End()

	sub.ID = s.newID()
	sub.RemoteIP = meta.RemoteIP
	sub.UserAgent = meta.UserAgent
	sub.CreatedAt = s.now()

	if err := s.store.Create(ctx, sub); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	err := s.notifier.ContactNotification(ctx, email.ContactMessage{
		ID:         sub.ID,
		Name:       sub.Name,
		Email:      sub.Email,
		Company:    sub.Company,
		Budget:     sub.Budget,
		Message:    sub.Message,
		ReceivedAt: sub.CreatedAt,
	})
	if err != nil {
		tracing.RecordError(span, err)
		if !s.store.Durable() {
			return fmt.Errorf("%w: %w", ErrNotDelivered, err)
		}
		s.log.Warn("owner notification failed, submission kept",
			slog.String("id", sub.ID),
			logger.Error(err))
		return nil
	}

	sub.Notified = true
	if err := s.store.MarkNotified(ctx, sub.ID); err != nil {
		s.log.Warn("could not mark submission notified",
			slog.String("id", sub.ID),
			logger.Error(err))
	}

	s.log.Info("contact submission received",
		slog.String("id", sub.ID),
		slog.String("email", sub.Email))
	return nil
}
