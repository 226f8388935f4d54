package handlers

import (
	"log/slog"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/components"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// Pages renders the site pages from the content catalog.
type Pages struct {
	site *content.Site
	cfg  *config.Config
	log  *slog.Logger
}

func NewPages(site *content.Site, cfg *config.Config, log *slog.Logger) *Pages {
	return &Pages{
		site: site,
		cfg:  cfg,
		log:  log.With(logger.Scope("pages")),
	}
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, path string, body ...g.Node) {
	cfg := components.PageConfig{ParticleScript: true}
	if page, ok := p.site.Page(path); ok {
		cfg.Title = page.Title
		cfg.Description = page.Description
		cfg.Canonical = p.cfg.SiteURL(page.Path)
	}

	node := components.Page(components.SiteChrome{Site: p.site, Current: path}, cfg, body...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		p.log.Warn("render page", slog.String("path", r.URL.Path), logger.Error(err))
	}
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	chrome := components.SiteChrome{Site: p.site, Current: "/"}
	p.render(w, r, http.StatusOK, "/",
		components.Hero(chrome),
		components.Services(p.site, false),
		components.Portfolio(p.site.Portfolio, 2),
		components.CTA(),
	)
}

func (p *Pages) About(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/about",
		components.About(p.site),
		components.CTA(),
	)
}

func (p *Pages) Services(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/services",
		components.Services(p.site, true),
		components.CTA(),
	)
}

func (p *Pages) Pricing(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/pricing",
		components.Pricing(p.site.Pricing),
		components.FAQ(p.site.FAQ),
	)
}

func (p *Pages) Portfolio(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/portfolio",
		components.Portfolio(p.site.Portfolio, 0),
		components.CTA(),
	)
}

func (p *Pages) FAQ(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/faq",
		components.FAQ(p.site.FAQ),
		components.CTA(),
	)
}

func (p *Pages) Contact(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "/contact",
		components.ContactForm(p.site.Email, p.site.Budgets, r.URL.Query().Get("plan")),
	)
}

// Legal serves the legal document stored under key
func (p *Pages) Legal(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := p.site.Legal[key]
		if !ok {
			p.NotFound(w, r)
			return
		}
		p.render(w, r, http.StatusOK, "/"+key, components.Legal(doc))
	}
}

func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, r.URL.Path, components.NotFound())
}
