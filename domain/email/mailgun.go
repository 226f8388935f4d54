package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// MailgunSender sends emails and manages the newsletter list via the
// Mailgun API.
type MailgunSender struct {
	cfg    *Config
	log    *slog.Logger
	client *mailgun.MailgunImpl
}

// NewMailgunSender creates a new Mailgun email sender.
// Returns nil if Mailgun is not configured.
func NewMailgunSender(cfg *Config, log *slog.Logger) *MailgunSender {
	if !cfg.IsConfigured() {
		return nil
	}

	client := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		client.SetAPIBase(cfg.MailgunAPIBase)
	}

	return &MailgunSender{
		cfg:    cfg,
		log:    log.With(logger.Scope("email.mailgun")),
		client: client,
	}
}

// Send sends an email via Mailgun. Transport and API failures are returned
// as errors.
func (s *MailgunSender) Send(ctx context.Context, opts SendOptions) (*SendResult, error) {
	if !s.cfg.Enabled {
		s.log.Warn("email sending is disabled (EMAIL_ENABLED=false)")
		return &SendResult{
			Success: false,
			Error:   "Email sending is disabled",
		}, nil
	}

	if err := s.validate(); err != nil {
		s.log.Error("email configuration invalid", logger.Error(err))
		return nil, err
	}

	to := opts.To
	if opts.ToName != "" {
		to = fmt.Sprintf("%s <%s>", opts.ToName, opts.To)
	}
	from := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)

	message := s.client.NewMessage(from, opts.Subject, opts.Text, to)
	if opts.HTML != "" {
		message.SetHtml(opts.HTML)
	}
	if opts.ReplyTo != "" {
		message.SetReplyTo(opts.ReplyTo)
	}
	for _, tag := range opts.Tags {
		if err := message.AddTag(tag); err != nil {
			s.log.Warn("dropping email tag", slog.String("tag", tag), logger.Error(err))
		}
	}

	s.log.Debug("sending email",
		slog.String("to", opts.To),
		slog.String("subject", opts.Subject))

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	_, messageID, err := s.client.Send(sendCtx, message)
	if err != nil {
		s.log.Error("failed to send email",
			slog.String("to", opts.To),
			logger.Error(err))
		return &SendResult{Success: false, Error: err.Error()}, fmt.Errorf("mailgun send: %w", err)
	}

	s.log.Info("email sent successfully",
		slog.String("to", opts.To),
		slog.String("message_id", messageID))

	return &SendResult{
		Success:   true,
		MessageID: messageID,
	}, nil
}

// AddMember subscribes address to the configured mailing list. Existing
// members are updated rather than rejected.
func (s *MailgunSender) AddMember(ctx context.Context, address, name string) error {
	if !s.cfg.Enabled {
		return ErrDisabled
	}
	if s.cfg.ListAddress == "" {
		return fmt.Errorf("MAILGUN_LIST_ADDRESS is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	err := s.client.CreateMember(ctx, true, s.cfg.ListAddress, mailgun.Member{
		Address:    address,
		Name:       name,
		Subscribed: mailgun.Subscribed,
		Vars:       map[string]interface{}{"source": "website"},
	})
	if err != nil {
		return fmt.Errorf("mailgun add list member: %w", err)
	}

	s.log.Info("list member added",
		slog.String("list", s.cfg.ListAddress),
		slog.String("address", address))
	return nil
}

// validate checks that the configuration is valid
func (s *MailgunSender) validate() error {
	if s.cfg.MailgunDomain == "" {
		return fmt.Errorf("MAILGUN_DOMAIN is required")
	}
	if s.cfg.MailgunAPIKey == "" {
		return fmt.Errorf("MAILGUN_API_KEY is required")
	}
	if s.cfg.FromEmail == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required")
	}
	if s.cfg.FromName == "" {
		return fmt.Errorf("EMAIL_FROM_NAME is required")
	}
	return nil
}
