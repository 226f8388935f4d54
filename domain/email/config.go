package email

import (
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
)

// Config contains email service configuration
type Config struct {
	// Enabled determines if email sending is enabled
	Enabled bool
	// MailgunDomain is the Mailgun domain
	MailgunDomain string
	// MailgunAPIKey is the Mailgun API key
	MailgunAPIKey string
	// MailgunAPIBase overrides the Mailgun endpoint
	MailgunAPIBase string
	// FromEmail is the default from email address
	FromEmail string
	// FromName is the default from name
	FromName string
	// OwnerEmail receives site notifications
	OwnerEmail string
	// ListAddress is the newsletter mailing list
	ListAddress string
	// SendTimeout bounds one Mailgun call
	SendTimeout time.Duration
	// SiteName and SiteURL are passed to every template
	SiteName string
	SiteURL  string
}

// NewConfig creates email configuration from the app config
func NewConfig(cfg *config.Config) *Config {
	timeout := cfg.Email.SendTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		Enabled:        cfg.Email.Enabled,
		MailgunDomain:  cfg.Email.MailgunDomain,
		MailgunAPIKey:  cfg.Email.MailgunAPIKey,
		MailgunAPIBase: cfg.Email.MailgunAPIBase,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		OwnerEmail:     cfg.Email.OwnerEmail,
		ListAddress:    cfg.Email.ListAddress,
		SendTimeout:    timeout,
		SiteName:       cfg.Email.FromName,
		SiteURL:        cfg.SiteURL("/"),
	}
}

// IsConfigured returns true if Mailgun is configured
func (c *Config) IsConfigured() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}
