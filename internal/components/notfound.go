package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func NotFound() g.Node {
	return Section(
		Class("py-16 md:py-24 container text-center"),
		ParticleCanvas{Text: "404", FontSize: 140, ParticleSize: 3, Stride: 5}.Node(),
		H1(Class("mt-6 font-bold text-3xl"), g.Text("This page fell apart")),
		P(Class("mt-3 text-base-content/70"), g.Text("The page you are looking for does not exist or has moved.")),
		A(Href("/"), Class("mt-8 btn btn-primary"), Icon("lucide--house size-4", ""), g.Text("Back home")),
	)
}
