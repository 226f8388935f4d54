package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

var accentColors = []string{"primary", "secondary", "accent"}

// ServiceGrid renders service cards. Detailed adds the deliverables list.
func ServiceGrid(services []content.Service, detailed bool) g.Node {
	cards := make([]g.Node, 0, len(services))
	for i, s := range services {
		cards = append(cards, Div(
			ID(s.Slug),
			Class("hover:bg-base-200/40 border border-base-300 hover:border-base-300/60 transition-all duration-300 card"),
			Div(
				Class("card-body"),
				IconBadge(s.Icon, accentColors[i%len(accentColors)]),
				H3(Class("mt-4 font-semibold text-xl"), g.Text(s.Name)),
				P(Class("mt-2 text-sm text-base-content/80 leading-relaxed"), g.Text(s.Summary)),
				g.If(detailed && len(s.Deliverables) > 0, Ul(
					Class("mt-4 space-y-1.5 text-sm"),
					g.Group(g.Map(s.Deliverables, func(d string) g.Node {
						return Li(
							Class("flex items-center gap-2"),
							Icon("lucide--check size-4 text-success", ""),
							g.Text(d),
						)
					})),
				)),
			),
		))
	}

	return Div(
		Class("gap-6 2xl:gap-8 grid grid-cols-1 md:grid-cols-3 mt-12 xl:mt-16"),
		g.Group(cards),
	)
}

func Services(site *content.Site, detailed bool) g.Node {
	return Section(
		Class("py-8 md:py-12 2xl:py-24 xl:py-16 container"),
		SectionHeading("services", "lucide--sparkles", "primary", "What we do", "Small team, full stack. We design, build, launch and look after your website."),
		ServiceGrid(site.Services, detailed),
	)
}
