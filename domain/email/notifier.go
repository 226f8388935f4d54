package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/tracing"
)

// Subscription describes a newsletter signup
type Subscription struct {
	Email      string
	RemoteIP   string
	ReceivedAt time.Time
}

// ContactMessage describes a contact form submission
type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Company    string
	Budget     string
	Message    string
	ReceivedAt time.Time
}

// Notifier renders templates and sends the site's transactional emails.
type Notifier struct {
	cfg       *Config
	sender    Sender
	templates *TemplateService
	log       *slog.Logger
}

func NewNotifier(cfg *Config, sender Sender, templates *TemplateService, log *slog.Logger) *Notifier {
	return &Notifier{
		cfg:       cfg,
		sender:    sender,
		templates: templates,
		log:       log.With(logger.Scope("email.notifier")),
	}
}

func (n *Notifier) baseContext(title, preview string) TemplateContext {
	return TemplateContext{
		"title":       title,
		"previewText": preview,
		"siteName":    n.cfg.SiteName,
		"siteUrl":     n.cfg.SiteURL,
	}
}

func (n *Notifier) send(ctx context.Context, template string, data TemplateContext, opts SendOptions) error {
	ctx, span := tracing.Start(ctx, "email.send")
	defer span.End()

	rendered, err := n.templates.Render(template, data)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(template, metrics.OutcomeError).Inc()
		tracing.RecordError(span, err)
		return err
	}
	opts.HTML = rendered.HTML
	opts.Text = rendered.Text
	opts.Tags = append(opts.Tags, template)

	result, err := n.sender.Send(ctx, opts)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(template, metrics.OutcomeError).Inc()
		tracing.RecordError(span, err)
		return fmt.Errorf("send %s: %w", template, err)
	}
	if !result.Success {
		metrics.EmailsSent.WithLabelValues(template, metrics.OutcomeDisabled).Inc()
		n.log.Warn("email not sent",
			slog.String("template", template),
			slog.String("reason", result.Error))
		return nil
	}

	metrics.EmailsSent.WithLabelValues(template, metrics.OutcomeOK).Inc()
	return nil
}

// SubscribeConfirmation thanks a new subscriber.
func (n *Notifier) SubscribeConfirmation(ctx context.Context, s Subscription) error {
	data := n.baseContext("You are on the list", "Thanks for subscribing to "+n.cfg.SiteName)
	data["email"] = s.Email
	data["ctaUrl"] = n.cfg.SiteURL
	data["ctaLabel"] = "Visit " + n.cfg.SiteName
	data["plainText"] = fmt.Sprintf("Thanks for subscribing to the %s newsletter with %s.\n\n%s",
		n.cfg.SiteName, s.Email, n.cfg.SiteURL)

	return n.send(ctx, TemplateSubscribeConfirmation, data, SendOptions{
		To:      s.Email,
		Subject: "Welcome to the " + n.cfg.SiteName + " newsletter",
	})
}

// SubscribeNotification tells the owner about a new subscriber.
func (n *Notifier) SubscribeNotification(ctx context.Context, s Subscription) error {
	data := n.baseContext("New newsletter subscriber", s.Email+" subscribed")
	data["email"] = s.Email
	data["remoteIp"] = s.RemoteIP
	data["receivedAt"] = s.ReceivedAt.UTC().Format(time.RFC1123)
	data["plainText"] = fmt.Sprintf("%s subscribed to the newsletter at %s.", s.Email, s.ReceivedAt.UTC().Format(time.RFC1123))

	return n.send(ctx, TemplateSubscribeNotification, data, SendOptions{
		To:      n.cfg.OwnerEmail,
		Subject: "New subscriber: " + s.Email,
	})
}

// ContactNotification forwards a contact submission to the owner with the
// sender as reply-to.
func (n *Notifier) ContactNotification(ctx context.Context, m ContactMessage) error {
	data := n.baseContext("New project enquiry", "From "+m.Name)
	data["id"] = m.ID
	data["name"] = m.Name
	data["email"] = m.Email
	data["company"] = m.Company
	data["budget"] = m.Budget
	data["message"] = m.Message

	var text strings.Builder
	fmt.Fprintf(&text, "New enquiry from %s <%s>\n", m.Name, m.Email)
	if m.Company != "" {
		fmt.Fprintf(&text, "Company: %s\n", m.Company)
	}
	if m.Budget != "" {
		fmt.Fprintf(&text, "Budget: %s\n", m.Budget)
	}
	fmt.Fprintf(&text, "Reference: %s\n\n%s\n", m.ID, m.Message)
	data["plainText"] = text.String()

	subject := "New enquiry from " + m.Name
	if m.Company != "" {
		subject += " (" + m.Company + ")"
	}

	return n.send(ctx, TemplateContactNotification, data, SendOptions{
		To:      n.cfg.OwnerEmail,
		ReplyTo: fmt.Sprintf("%s <%s>", m.Name, m.Email),
		Subject: subject,
	})
}
