package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"WEBSITE_PORT" envDefault:"4002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`

	// BaseURL is the public origin used for canonical links, the sitemap
	// and indexing submissions.
	BaseURL string `env:"SITE_BASE_URL" envDefault:"http://localhost:4002"`

	Email     EmailConfig
	Indexing  IndexingConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Scheduler SchedulerConfig
	Otel      OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// SystemHealthInterval is how often host load and memory are sampled
	SystemHealthInterval time.Duration `env:"SYSHEALTH_INTERVAL" envDefault:"30s"`
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerAddress, c.ServerPort)
}

// IsProduction reports whether the site runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SiteURL joins the base URL with a site path
func (c *Config) SiteURL(path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// EmailConfig holds transactional email settings
type EmailConfig struct {
	// Enabled determines if email sending is enabled
	Enabled bool `env:"EMAIL_ENABLED" envDefault:"false"`
	// MailgunDomain is the Mailgun sending domain
	MailgunDomain string `env:"MAILGUN_DOMAIN" envDefault:""`
	// MailgunAPIKey is the Mailgun API key
	MailgunAPIKey string `env:"MAILGUN_API_KEY" envDefault:""`
	// MailgunAPIBase overrides the Mailgun endpoint (EU region, tests)
	MailgunAPIBase string `env:"MAILGUN_API_BASE" envDefault:""`
	// FromEmail is the default from email address
	FromEmail string `env:"EMAIL_FROM_ADDRESS" envDefault:"hello@wearewacky.com"`
	// FromName is the default from name
	FromName string `env:"EMAIL_FROM_NAME" envDefault:"Wacky Works Digital"`
	// OwnerEmail receives subscription and contact notifications
	OwnerEmail string `env:"EMAIL_OWNER_ADDRESS" envDefault:"team@wearewacky.com"`
	// ListAddress is the Mailgun mailing list subscribers are added to
	ListAddress string `env:"MAILGUN_LIST_ADDRESS" envDefault:""`
	// SendTimeout bounds a single Mailgun call
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"30s"`
}

// IsConfigured returns true if Mailgun is configured
func (e *EmailConfig) IsConfigured() bool {
	return e.MailgunDomain != "" && e.MailgunAPIKey != ""
}

// IndexingConfig holds search engine submission settings
type IndexingConfig struct {
	// APIToken protects POST /api/indexing (Bearer token). Empty disables the endpoint.
	APIToken string `env:"INDEXING_API_TOKEN" envDefault:""`
	// GoogleCredentialsFile is a service account key with the indexing scope
	GoogleCredentialsFile string `env:"GOOGLE_INDEXING_CREDENTIALS_FILE" envDefault:""`
	// GoogleEndpoint overrides the Indexing API endpoint (tests)
	GoogleEndpoint string `env:"GOOGLE_INDEXING_ENDPOINT" envDefault:""`
	// IndexNowKey is the IndexNow ownership key served at /{key}.txt
	IndexNowKey string `env:"INDEXNOW_KEY" envDefault:""`
	// IndexNowEndpoint is the IndexNow submission endpoint
	IndexNowEndpoint string `env:"INDEXNOW_ENDPOINT" envDefault:"https://api.indexnow.org/indexnow"`
	// Schedule is a cron expression (with seconds) for resubmitting the sitemap. Empty disables it.
	Schedule string `env:"INDEXING_SCHEDULE" envDefault:""`
	// Timeout bounds one provider call
	Timeout time.Duration `env:"INDEXING_TIMEOUT" envDefault:"15s"`
}

// GoogleEnabled returns true if the Google Indexing API is configured
func (i *IndexingConfig) GoogleEnabled() bool {
	return i.GoogleCredentialsFile != ""
}

// IndexNowEnabled returns true if IndexNow is configured
func (i *IndexingConfig) IndexNowEnabled() bool {
	return i.IndexNowKey != "" && i.IndexNowEndpoint != ""
}

// DatabaseConfig holds PostgreSQL connection settings for contact submissions
type DatabaseConfig struct {
	Enabled      bool          `env:"DATABASE_ENABLED" envDefault:"false"`
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"wacky"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"wacky"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// RateLimitConfig bounds form submissions per client IP
type RateLimitConfig struct {
	RequestsPerMinute int `env:"FORM_RATE_LIMIT_PER_MINUTE" envDefault:"6"`
	Burst             int `env:"FORM_RATE_LIMIT_BURST" envDefault:"3"`
}

// SchedulerConfig controls background tasks
type SchedulerConfig struct {
	Enabled bool `env:"SCHEDULER_ENABLED" envDefault:"true"`
	// LimiterSweepInterval is how often idle rate limiter buckets are dropped
	LimiterSweepInterval time.Duration `env:"LIMITER_SWEEP_INTERVAL" envDefault:"10m"`
	// LimiterMaxIdle is how long a client IP may be idle before its bucket is dropped
	LimiterMaxIdle time.Duration `env:"LIMITER_MAX_IDLE" envDefault:"30m"`
	// TaskTimeout bounds one task run
	TaskTimeout time.Duration `env:"SCHEDULER_TASK_TIMEOUT" envDefault:"5m"`
}

// OtelConfig holds OpenTelemetry tracing settings
type OtelConfig struct {
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"wacky-website"`
	SamplingRate     float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// Enabled returns true if an OTLP endpoint is configured
func (o *OtelConfig) Enabled() bool {
	return o.ExporterEndpoint != ""
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
		slog.Bool("email_enabled", cfg.Email.Enabled),
		slog.Bool("database_enabled", cfg.Database.Enabled),
	)

	return cfg, nil
}
