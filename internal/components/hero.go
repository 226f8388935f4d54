package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ParticleCanvas is the mount point picked up by particle-text.js. The
// script fetches /api/particles with the data attributes and assembles the
// text while the pointer is over the canvas.
type ParticleCanvas struct {
	Text         string
	FontSize     int
	ParticleSize int
	Stride       int
}

func (p ParticleCanvas) Node() g.Node {
	attrs := []g.Node{
		Class("block w-full h-[200px] md:h-[260px] cursor-crosshair text-base-content"),
		g.Attr("data-particle-text", p.Text),
		g.Attr("role", "img"),
		g.Attr("aria-label", p.Text),
	}
	if p.FontSize > 0 {
		attrs = append(attrs, g.Attr("data-font-size", strconv.Itoa(p.FontSize)))
	}
	if p.ParticleSize > 0 {
		attrs = append(attrs, g.Attr("data-particle-size", strconv.Itoa(p.ParticleSize)))
	}
	if p.Stride > 0 {
		attrs = append(attrs, g.Attr("data-stride", strconv.Itoa(p.Stride)))
	}

	return g.El("canvas", attrs...)
}

func Hero(chrome SiteChrome) g.Node {
	site := chrome.Site

	return g.Group([]g.Node{
		Div(
			Class("relative z-2 overflow-hidden"),
			ID("hero"),

			Div(Class("absolute inset-0 -z-1 opacity-20 grainy")),

			Div(
				Class("container flex items-center justify-center pt-12 md:pt-20 xl:pt-28 pb-16 md:pb-24"),
				Div(
					Class("w-full text-center md:w-160 xl:w-200"),

					ParticleCanvas{Text: site.HeroText, FontSize: 160, ParticleSize: 3, Stride: 5}.Node(),
					P(
						Class("mt-2 text-sm text-base-content/50"),
						g.Text("Hover to put us back together."),
					),

					H1(
						Class("mt-6 text-2xl leading-tight font-extrabold tracking-[-0.5px] md:text-4xl xl:text-5xl"),
						g.Text("Websites with "),
						Span(
							Class("animate-background-shift from-secondary via-accent to-primary bg-linear-to-r bg-[400%,400%] bg-clip-text text-transparent"),
							g.Text("a wobble"),
						),
					),

					P(
						Class("text-base-content/80 mt-5 xl:text-lg"),
						g.Text(site.Tagline),
					),

					Div(
						Class("mt-8 inline-flex justify-center gap-3"),
						A(
							Href("/contact"),
							Class("btn btn-primary shadow-primary/20 shadow-xl"),
							Icon("lucide--rocket size-4", ""),
							g.Text("Start a project"),
						),
						A(
							Href("/portfolio"),
							Class("btn btn-ghost"),
							Icon("lucide--arrow-right size-4", ""),
							g.Text("See our work"),
						),
					),
				),
			),
		),

		Div(Class("from-secondary via-accent to-primary mb-8 h-1 w-full bg-linear-to-r md:mb-12 xl:mb-16")),
	})
}
