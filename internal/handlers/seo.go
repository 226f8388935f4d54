package handlers

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (p *Pages) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlSet{XMLNS: sitemapNS}
	for _, e := range p.site.Sitemap(p.cfg.BaseURL) {
		u := sitemapURL{Loc: e.Loc, ChangeFreq: e.ChangeFreq}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, u)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		p.log.Warn("encode sitemap", logger.Error(err))
	}
}

func (p *Pages) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !p.cfg.IsProduction() {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
		return
	}
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s\n", p.cfg.SiteURL("/sitemap.xml"))
}

// IndexNowKey serves the ownership file at /{key}.txt
func (p *Pages) IndexNowKey(w http.ResponseWriter, r *http.Request) {
	key := p.cfg.Indexing.IndexNowKey
	if key == "" {
		p.NotFound(w, r)
		return
	}
	p.log.Debug("indexnow key requested", slog.String("remote", r.RemoteAddr))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, key)
}
