package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func CTA() g.Node {
	benefits := []string{
		"Fixed price, agreed before we start",
		"A working preview within the first week",
		"You own the code and the content",
	}

	return Div(
		Class("sm:px-16 container"),
		Div(
			Class("relative py-8 md:py-12 xl:py-16 2xl:pt-24 2xl:pb-32 sm:rounded-[60px] overflow-hidden"),

			Div(Class("max-sm:hidden -bottom-40 absolute bg-secondary blur-[180px] w-72 h-64 start-16")),
			Div(Class("max-sm:hidden -bottom-40 absolute bg-accent blur-[180px] w-72 h-64 -translate-x-1/2 start-1/2")),
			Div(Class("max-sm:hidden -bottom-40 absolute bg-primary blur-[180px] w-72 h-64 end-16")),
			Div(Class("max-sm:hidden z-0 absolute inset-0 opacity-20 grainy")),

			Div(
				Class("relative"),
				Div(
					Class("text-center"),
					Div(
						Class("inline-flex items-center bg-linear-to-tr from-secondary to-accent p-2.5 rounded-full text-primary-content"),
						Icon("lucide--sparkles size-5", "Sparkles"),
					),
					P(Class("mt-4 font-bold text-xl sm:text-2xl lg:text-4xl"), g.Text("Got something wacky in mind?")),
					P(Class("inline-block mt-3 max-w-2xl max-sm:text-sm"), g.Text("Tell us what you are building. We reply within one business day with a plan and a price.")),
				),

				Div(
					Class("flex justify-center mt-6 xl:mt-8"),
					Ul(
						Class("space-y-3 max-w-md text-center"),
						g.Group(g.Map(benefits, func(benefit string) g.Node {
							return Li(
								Class("flex items-center gap-2 max-sm:text-sm"),
								Icon("lucide--badge-check size-6 text-success", "Check"),
								g.Text(benefit),
							)
						})),
					),
				),

				Div(
					Class("flex justify-center items-center gap-3 sm:gap-5 mt-6 xl:mt-8"),
					A(
						Href("/contact"),
						Class("group relative gap-3 bg-linear-to-r from-secondary to-accent border-0 text-primary-content text-base btn"),
						Icon("lucide--send size-4 sm:size-5", ""),
						g.Text("Start a project"),
					),
					A(
						Href("/pricing"),
						Class("btn btn-ghost"),
						g.Text("See pricing"),
						Icon("lucide--arrow-right size-3.5", ""),
					),
				),
			),
		),
	)
}
