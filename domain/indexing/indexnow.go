package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

const ProviderIndexNow = "indexnow"

// indexNowPayload is the JSON body of an IndexNow bulk submission
type indexNowPayload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// IndexNowPublisher submits URL batches to an IndexNow endpoint
type IndexNowPublisher struct {
	client      *resty.Client
	endpoint    string
	key         string
	keyLocation string
	host        string
	log         *slog.Logger
}

// NewIndexNowPublisher expects the key file to be served at /{key}.txt on
// the site.
func NewIndexNowPublisher(cfg *config.Config, log *slog.Logger) (*IndexNowPublisher, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid site base URL %q", cfg.BaseURL)
	}

	client := resty.New().
		SetTimeout(cfg.Indexing.Timeout).
		SetHeader("Content-Type", "application/json; charset=utf-8")

	return &IndexNowPublisher{
		client:      client,
		endpoint:    cfg.Indexing.IndexNowEndpoint,
		key:         cfg.Indexing.IndexNowKey,
		keyLocation: cfg.SiteURL("/" + cfg.Indexing.IndexNowKey + ".txt"),
		host:        base.Host,
		log:         log.With(logger.Scope("indexing.indexnow")),
	}, nil
}

func (p *IndexNowPublisher) Name() string { return ProviderIndexNow }

// Publish submits all URLs in one request; every URL shares its outcome.
func (p *IndexNowPublisher) Publish(ctx context.Context, urls []string) []Result {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(indexNowPayload{
			Host:        p.host,
			Key:         p.key,
			KeyLocation: p.keyLocation,
			URLList:     urls,
		}).
		Post(p.endpoint)
	if err == nil && resp.IsError() {
		err = fmt.Errorf("indexnow returned %d: %s", resp.StatusCode(), resp.String())
	}
	if err != nil {
		p.log.Warn("submission failed", slog.Int("urls", len(urls)), logger.Error(err))
	}
	return batchResults(ProviderIndexNow, urls, err)
}
