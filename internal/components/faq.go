package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func FAQ(questions []content.Question) g.Node {
	return Section(
		Class("py-8 md:py-12 xl:py-16 container max-w-3xl"),
		SectionHeading("faq", "lucide--circle-help", "accent", "Frequently asked questions", ""),
		Div(
			Class("mt-10 space-y-3"),
			g.Group(g.Map(questions, func(q content.Question) g.Node {
				return g.El("details",
					Class("collapse collapse-arrow border border-base-300 bg-base-100"),
					g.El("summary",
						Class("collapse-title font-medium"),
						g.Text(q.Question),
					),
					Div(
						Class("collapse-content text-sm text-base-content/80"),
						P(g.Text(q.Answer)),
					),
				)
			})),
		),
	)
}
