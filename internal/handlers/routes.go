package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Register mounts every page, the SEO files and the 404 handler on r.
func (p *Pages) Register(r chi.Router) {
	r.Get("/", p.Home)
	r.Get("/about", p.About)
	r.Get("/services", p.Services)
	r.Get("/pricing", p.Pricing)
	r.Get("/portfolio", p.Portfolio)
	r.Get("/faq", p.FAQ)
	r.Get("/contact", p.Contact)
	r.Get("/privacy", p.Legal("privacy"))
	r.Get("/terms", p.Legal("terms"))

	r.Get("/sitemap.xml", p.Sitemap)
	r.Get("/robots.txt", p.Robots)
	if key := p.cfg.Indexing.IndexNowKey; key != "" {
		r.Get("/"+key+".txt", p.IndexNowKey)
	}

	r.NotFound(p.NotFound)
}
