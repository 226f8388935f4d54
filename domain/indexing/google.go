package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/indexing/v3"
	"google.golang.org/api/option"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

const (
	ProviderGoogle = "google"

	notificationUpdated = "URL_UPDATED"
)

// GooglePublisher sends URL_UPDATED notifications to the Google Indexing API
type GooglePublisher struct {
	svc     *indexing.Service
	timeout time.Duration
	log     *slog.Logger
}

// NewGooglePublisher authenticates with the service account key in
// cfg.GoogleCredentialsFile. A GoogleEndpoint override skips authentication.
func NewGooglePublisher(ctx context.Context, cfg *config.IndexingConfig, log *slog.Logger) (*GooglePublisher, error) {
	var opts []option.ClientOption

	if cfg.GoogleEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.GoogleEndpoint), option.WithoutAuthentication())
	} else {
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file %q: %w", cfg.GoogleCredentialsFile, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, indexing.IndexingScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	svc, err := indexing.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create indexing service: %w", err)
	}

	return &GooglePublisher{
		svc:     svc,
		timeout: cfg.Timeout,
		log:     log.With(logger.Scope("indexing.google")),
	}, nil
}

func (p *GooglePublisher) Name() string { return ProviderGoogle }

// Publish sends one notification per URL. The API has no batch endpoint
// outside the multipart batch protocol.
func (p *GooglePublisher) Publish(ctx context.Context, urls []string) []Result {
	out := make([]Result, 0, len(urls))
	for _, u := range urls {
		r := Result{Provider: ProviderGoogle, URL: u}
		if err := p.publishOne(ctx, u); err != nil {
			r.Error = err.Error()
			p.log.Warn("publish failed", slog.String("url", u), logger.Error(err))
		} else {
			r.OK = true
		}
		out = append(out, r)
	}
	return out
}

func (p *GooglePublisher) publishOne(ctx context.Context, u string) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	_, err := p.svc.UrlNotifications.Publish(&indexing.UrlNotification{
		Url:  u,
		Type: notificationUpdated,
	}).Context(ctx).Do()
	return err
}
