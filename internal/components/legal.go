package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func Legal(doc content.LegalDoc) g.Node {
	return Article(
		Class("py-8 md:py-12 xl:py-16 container max-w-3xl"),
		H1(Class("font-bold text-3xl"), g.Text(doc.Title)),
		g.If(doc.Updated != "", P(Class("mt-2 text-sm text-base-content/60"), g.Text("Last updated "+doc.Updated))),
		g.Group(g.Map(doc.Sections, func(s content.Section) g.Node {
			return Div(
				Class("mt-8"),
				H2(Class("font-semibold text-xl"), g.Text(s.Heading)),
				P(Class("mt-2 text-base-content/80 leading-relaxed"), g.Text(s.Body)),
			)
		})),
	)
}
