// Package content holds the site copy: pages, services, pricing, FAQ,
// portfolio and legal text, loaded from an embedded YAML catalog.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

var Module = fx.Module("content",
	fx.Provide(NewSite),
)

//go:embed site.yaml
var siteYAML []byte

// Site is the complete content catalog
type Site struct {
	Name      string              `yaml:"name"`
	Tagline   string              `yaml:"tagline"`
	Email     string              `yaml:"email"`
	HeroText  string              `yaml:"hero_text"`
	Budgets   []string            `yaml:"budgets"`
	Pages     []Page              `yaml:"pages"`
	Services  []Service           `yaml:"services"`
	Pricing   []Tier              `yaml:"pricing"`
	FAQ       []Question          `yaml:"faq"`
	Portfolio []Project           `yaml:"portfolio"`
	Team      []Member            `yaml:"team"`
	Legal     map[string]LegalDoc `yaml:"legal"`
}

// Page is a routable page with its SEO metadata
type Page struct {
	Path        string  `yaml:"path"`
	Label       string  `yaml:"label"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Nav         bool    `yaml:"nav"`
	ChangeFreq  string  `yaml:"changefreq"`
	Priority    float64 `yaml:"priority"`
}

// Service is one agency offering
type Service struct {
	Slug         string   `yaml:"slug"`
	Name         string   `yaml:"name"`
	Icon         string   `yaml:"icon"`
	Summary      string   `yaml:"summary"`
	Deliverables []string `yaml:"deliverables"`
}

// Tier is one pricing package
type Tier struct {
	Name      string   `yaml:"name"`
	Price     string   `yaml:"price"`
	Period    string   `yaml:"period"`
	Summary   string   `yaml:"summary"`
	Features  []string `yaml:"features"`
	Highlight bool     `yaml:"highlight"`
	CTA       string   `yaml:"cta"`
}

// Question is an FAQ entry
type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Project is a portfolio case study
type Project struct {
	Slug     string   `yaml:"slug"`
	Name     string   `yaml:"name"`
	Client   string   `yaml:"client"`
	Category string   `yaml:"category"`
	Summary  string   `yaml:"summary"`
	Image    string   `yaml:"image"`
	Tags     []string `yaml:"tags"`
	URL      string   `yaml:"url"`
}

// Member is a team member shown on the about page
type Member struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	Bio  string `yaml:"bio"`
}

// LegalDoc is a legal page body
type LegalDoc struct {
	Title    string    `yaml:"title"`
	Updated  string    `yaml:"updated"`
	Sections []Section `yaml:"sections"`
}

// Section is a titled block of legal text
type Section struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// NewSite loads the embedded catalog
func NewSite() (*Site, error) {
	return Load(siteYAML)
}

// Load parses and validates a YAML catalog
func Load(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid site content: %w", err)
	}
	return &s, nil
}

func (s *Site) validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(s.Pages) == 0 {
		errs = append(errs, errors.New("at least one page is required"))
	}

	seen := make(map[string]bool, len(s.Pages))
	for i, p := range s.Pages {
		switch {
		case !strings.HasPrefix(p.Path, "/"):
			errs = append(errs, fmt.Errorf("page %d: path %q must start with /", i, p.Path))
		case seen[p.Path]:
			errs = append(errs, fmt.Errorf("page %d: duplicate path %q", i, p.Path))
		}
		seen[p.Path] = true
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("page %q: title is required", p.Path))
		}
		if p.Priority < 0 || p.Priority > 1 {
			errs = append(errs, fmt.Errorf("page %q: priority %v out of range", p.Path, p.Priority))
		}
	}

	return errors.Join(errs...)
}

// Page returns the page registered at path
func (s *Site) Page(path string) (Page, bool) {
	for _, p := range s.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// ValidBudget reports whether b is empty or one of the catalog's budget ranges
func (s *Site) ValidBudget(b string) bool {
	if b == "" {
		return true
	}
	for _, v := range s.Budgets {
		if v == b {
			return true
		}
	}
	return false
}

// NavPages returns the pages shown in the top navigation, in catalog order
func (s *Site) NavPages() []Page {
	var out []Page
	for _, p := range s.Pages {
		if p.Nav {
			out = append(out, p)
		}
	}
	return out
}

// Paths returns every page path in catalog order
func (s *Site) Paths() []string {
	out := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		out[i] = p.Path
	}
	return out
}

// SitemapEntry is one <url> of the sitemap
type SitemapEntry struct {
	Loc        string
	ChangeFreq string
	Priority   float64
}

// Sitemap returns one entry per page with absolute locations under baseURL
func (s *Site) Sitemap(baseURL string) []SitemapEntry {
	base := strings.TrimRight(baseURL, "/")
	out := make([]SitemapEntry, len(s.Pages))
	for i, p := range s.Pages {
		loc := base + p.Path
		if p.Path == "/" {
			loc = base + "/"
		}
		out[i] = SitemapEntry{Loc: loc, ChangeFreq: p.ChangeFreq, Priority: p.Priority}
	}
	return out
}
