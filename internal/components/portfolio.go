package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func ProjectCard(p content.Project) g.Node {
	title := H3(Class("font-semibold text-lg"), g.Text(p.Name))
	if p.URL != "" {
		title = H3(Class("font-semibold text-lg"), A(Href(p.URL), g.Attr("target", "_blank"), g.Attr("rel", "noopener"), g.Text(p.Name)))
	}

	return Article(
		ID(p.Slug),
		Class("card border border-base-300 hover:border-primary/50 overflow-hidden transition-all"),
		g.If(p.Image != "", Figure(
			Img(Src(p.Image), Alt(p.Name), g.Attr("loading", "lazy"), Class("w-full aspect-video object-cover")),
		)),
		Div(
			Class("card-body"),
			Div(
				Class("flex items-start justify-between gap-2"),
				Div(
					title,
					P(Class("text-sm text-base-content/60"), g.Text(p.Client)),
				),
				Span(Class("badge badge-accent badge-sm"), g.Text(p.Category)),
			),
			P(Class("mt-3 text-sm text-base-content/80"), g.Text(p.Summary)),
			Div(
				Class("flex flex-wrap gap-1.5 mt-3"),
				g.Group(g.Map(p.Tags, func(tag string) g.Node {
					return Span(Class("badge badge-ghost badge-sm"), g.Text(tag))
				})),
			),
		),
	)
}

func Portfolio(projects []content.Project, limit int) g.Node {
	if limit > 0 && limit < len(projects) {
		projects = projects[:limit]
	}

	return Section(
		Class("py-8 md:py-12 2xl:py-24 xl:py-16 container"),
		SectionHeading("work", "lucide--briefcase", "accent", "Selected work", "A few projects we are proud of."),
		Div(
			Class("grid grid-cols-1 md:grid-cols-2 gap-6 mt-12 xl:mt-16"),
			g.Group(g.Map(projects, ProjectCard)),
		),
	)
}
