package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func PricingCard(t content.Tier) g.Node {
	cardClass := "card border border-base-300 transition-all"
	btnClass := "btn btn-outline w-full"
	if t.Highlight {
		cardClass = "card border-2 border-primary shadow-primary/20 shadow-xl transition-all"
		btnClass = "btn btn-primary w-full"
	}

	return Div(
		Class(cardClass),
		Div(
			Class("card-body"),
			Div(
				Class("flex items-center justify-between"),
				H3(Class("font-semibold text-lg"), g.Text(t.Name)),
				g.If(t.Highlight, Span(Class("badge badge-primary badge-sm"), g.Text("Most popular"))),
			),
			P(
				Class("mt-2"),
				Span(Class("font-extrabold text-3xl"), g.Text(t.Price)),
				g.If(t.Period != "", Span(Class("ms-1 text-sm text-base-content/60"), g.Text(t.Period))),
			),
			P(Class("mt-2 text-sm text-base-content/80"), g.Text(t.Summary)),
			Ul(
				Class("mt-4 space-y-2 text-sm"),
				g.Group(g.Map(t.Features, func(f string) g.Node {
					return Li(
						Class("flex items-center gap-2"),
						Icon("lucide--check size-4 text-success", ""),
						g.Text(f),
					)
				})),
			),
			Div(
				Class("card-actions mt-6"),
				A(Href("/contact?plan="+t.Name), Class(btnClass), g.Text(t.CTA)),
			),
		),
	)
}

func Pricing(tiers []content.Tier) g.Node {
	return Section(
		Class("py-8 md:py-12 2xl:py-24 xl:py-16 container"),
		SectionHeading("pricing", "lucide--tag", "secondary", "Simple, fixed pricing", "No hourly surprises. Pick a package or ask us for a custom quote."),
		Div(
			Class("gap-6 grid grid-cols-1 md:grid-cols-3 mt-12 xl:mt-16"),
			g.Group(g.Map(tiers, PricingCard)),
		),
	)
}
