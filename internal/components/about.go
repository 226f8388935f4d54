package components

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

func About(site *content.Site) g.Node {
	return Section(
		Class("py-8 md:py-12 2xl:py-24 xl:py-16 container"),
		SectionHeading("about", "lucide--users", "primary", "About "+site.Name, site.Tagline),
		Div(
			Class("gap-6 grid grid-cols-1 md:grid-cols-3 mt-12 xl:mt-16"),
			g.Group(g.Map(site.Team, func(m content.Member) g.Node {
				return Div(
					Class("card border border-base-300"),
					Div(
						Class("card-body items-center text-center"),
						Div(
							Class("avatar avatar-placeholder"),
							Div(
								Class("bg-linear-to-tr from-secondary to-accent text-primary-content w-16 rounded-full"),
								Span(Class("text-xl font-bold"), g.Text(initials(m.Name))),
							),
						),
						H3(Class("mt-3 font-semibold text-lg"), g.Text(m.Name)),
						P(Class("text-sm text-base-content/60"), g.Text(m.Role)),
						P(Class("mt-2 text-sm text-base-content/80"), g.Text(m.Bio)),
					),
				)
			})),
		),
	)
}
