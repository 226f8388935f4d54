package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	Theme       string
	OGImage     string
	Canonical   string
	// ParticleScript loads the hero particle animation.
	ParticleScript bool
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Theme == "" {
		config.Theme = "wacky-dark"
	}

	if config.Title == "" {
		config.Title = "Wacky Works Digital | Websites with a wobble"
	}

	if config.Description == "" {
		config.Description = "A small digital agency building fast, animated, conversion-focused websites for ambitious brands."
	}

	if config.OGImage == "" {
		config.OGImage = "/static/images/og-image.jpg"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			g.Attr("data-theme", config.Theme),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				g.If(config.Canonical != "", Link(Rel("canonical"), Href(config.Canonical))),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Meta(g.Attr("property", "og:image"), Content(config.OGImage)),
				g.If(config.Canonical != "", Meta(g.Attr("property", "og:url"), Content(config.Canonical))),
				Meta(Name("twitter:card"), Content("summary_large_image")),

				Link(Rel("icon"), Href("/static/images/favicon.png")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),

				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
			),
			Body(
				Class("bg-base-100 text-base-content"),
				g.Group(content),

				Script(Type("module"), Src("/static/js/theme.js")),
				Script(Type("module"), Src("/static/js/forms.js")),
				g.If(config.ParticleScript, Script(Type("module"), Src("/static/js/particle-text.js"))),
			),
		),
	})
}

// Page wraps page content with the shared top bar and footer.
func Page(site SiteChrome, config PageConfig, content ...g.Node) g.Node {
	return Layout(config,
		Topbar(site),
		Main(Class("pt-24"), g.Group(content)),
		PageFooter(site),
	)
}
