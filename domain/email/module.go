package email

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the sender, list manager, templates and notifier
var Module = fx.Module("email",
	fx.Provide(
		NewConfig,
		NewTemplateService,
		NewSender,
		NewListManager,
		NewNotifier,
	),
)

// NewSender uses Mailgun when configured and enabled, otherwise a no-op sender.
func NewSender(log *slog.Logger, cfg *Config) Sender {
	if cfg.IsConfigured() && cfg.Enabled {
		if mailgunSender := NewMailgunSender(cfg, log); mailgunSender != nil {
			log.Info("using Mailgun sender",
				slog.String("domain", cfg.MailgunDomain),
				slog.String("from", cfg.FromEmail))
			return mailgunSender
		}
	}

	log.Info("using no-op email sender (Mailgun not configured or email disabled)")
	return &noOpSender{log: log}
}

// NewListManager uses the Mailgun mailing list when one is configured.
func NewListManager(log *slog.Logger, cfg *Config) ListManager {
	if cfg.IsConfigured() && cfg.Enabled && cfg.ListAddress != "" {
		if mailgunSender := NewMailgunSender(cfg, log); mailgunSender != nil {
			return mailgunSender
		}
	}
	return &noOpSender{log: log}
}

// noOpSender logs instead of calling Mailgun
type noOpSender struct {
	log *slog.Logger
}

func (s *noOpSender) Send(ctx context.Context, opts SendOptions) (*SendResult, error) {
	s.log.Info("email send (no-op)",
		slog.String("to", opts.To),
		slog.String("subject", opts.Subject))

	return &SendResult{
		Success:   true,
		MessageID: "noop-" + opts.To,
	}, nil
}

func (s *noOpSender) AddMember(ctx context.Context, address, name string) error {
	s.log.Info("list member add (no-op)", slog.String("address", address))
	return nil
}
