package indexing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/tracing"
)

// Triggers recorded with each run
const (
	TriggerAPI      = "api"
	TriggerSchedule = "schedule"
)

var (
	ErrNoProviders = errors.New("no indexing provider configured")
	// ErrForeignURL is returned for URLs outside the site's base URL.
	ErrForeignURL = errors.New("url is outside the site")
)

// Report summarises one submission
type Report struct {
	Trigger string   `json:"trigger"`
	URLs    []string `json:"urls"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Service resolves URLs and fans them out to every configured publisher
type Service struct {
	publishers []Publisher
	site       *content.Site
	cfg        *config.Config
	runs       RunRecorder
	log        *slog.Logger
	now        func() time.Time
}

func NewService(publishers []Publisher, site *content.Site, cfg *config.Config, runs RunRecorder, log *slog.Logger) *Service {
	return &Service{
		publishers: publishers,
		site:       site,
		cfg:        cfg,
		runs:       runs,
		log:        log.With(logger.Scope("indexing")),
		now:        time.Now,
	}
}

// Enabled reports whether any provider is configured
func (s *Service) Enabled() bool {
	return len(s.publishers) > 0
}

// ResolveURLs turns raw into absolute site URLs. An empty list means every
// sitemap URL. Relative paths are joined to the base URL.
func (s *Service) ResolveURLs(raw []string) ([]string, error) {
	var cleaned []string
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		entries := s.site.Sitemap(s.cfg.BaseURL)
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Loc
		}
		return out, nil
	}

	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	out := make([]string, 0, len(cleaned))
	seen := make(map[string]bool, len(cleaned))
	for _, r := range cleaned {
		if strings.HasPrefix(r, "/") && !strings.HasPrefix(r, "//") {
			r = s.cfg.SiteURL(r)
		}
		u, err := url.Parse(r)
		if err != nil || u.Scheme != base.Scheme || u.Host != base.Host {
			return nil, fmt.Errorf("%w: %s", ErrForeignURL, r)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}

// Submit publishes urls to every provider. The report is always returned;
// the error is non-nil when any URL failed at any provider.
func (s *Service) Submit(ctx context.Context, trigger string, urls []string) (*Report, error) {
	if !s.Enabled() {
		return nil, ErrNoProviders
	}

	ctx, span := tracing.Start(ctx, "indexing.submit")
	defer span.End()

	started := s.now()
	report := &Report{Trigger: trigger, URLs: urls}

	for _, p := range s.publishers {
		results := p.Publish(ctx, urls)
		for _, r := range results {
			outcome := metrics.OutcomeOK
			if !r.OK {
				outcome = metrics.OutcomeError
				report.Failed++
			}
			metrics.IndexingSubmissions.WithLabelValues(r.Provider, outcome).Inc()
		}
		report.Results = append(report.Results, results...)
	}

	run := &Run{
		Trigger:    trigger,
		URLCount:   len(urls),
		Failed:     report.Failed,
		StartedAt:  started,
		FinishedAt: s.now(),
	}
	if err := s.runs.Record(ctx, run); err != nil {
		s.log.Warn("could not record indexing run", logger.Error(err))
	}

	s.log.Info("indexing submitted",
		slog.String("trigger", trigger),
		slog.Int("urls", len(urls)),
		slog.Int("providers", len(s.publishers)),
		slog.Int("failed", report.Failed))

	if report.Failed > 0 {
		err := fmt.Errorf("%d of %d submissions failed", report.Failed, len(report.Results))
		tracing.RecordError(span, err)
		return report, err
	}
	return report, nil
}

// Reindex submits the whole sitemap. Used by the scheduler.
func (s *Service) Reindex(ctx context.Context) error {
	urls, err := s.ResolveURLs(nil)
	if err != nil {
		return err
	}
	_, err = s.Submit(ctx, TriggerSchedule, urls)
	return err
}
