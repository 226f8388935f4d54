package components

import (
	"fmt"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

// SubscribeForm posts {"email"} to /api/subscribe via forms.js.
func SubscribeForm() g.Node {
	return Form(
		ID("subscribe-form"),
		Class("flex gap-2 mt-5 max-w-sm"),
		Action("/api/subscribe"),
		Method("post"),
		g.Attr("data-json-form", ""),
		Label(
			Class("input input-sm w-full"),
			Icon("lucide--mail size-4 opacity-60", ""),
			Input(
				Type("email"),
				Name("email"),
				Placeholder("you@company.com"),
				Required(),
				g.Attr("autocomplete", "email"),
				g.Attr("aria-label", "Email address"),
			),
		),
		Button(Type("submit"), Class("btn btn-sm btn-primary"), g.Text("Subscribe")),
		P(Class("form-status text-sm mt-2 w-full hidden"), g.Attr("role", "status")),
	)
}

func PageFooter(chrome SiteChrome) g.Node {
	site := chrome.Site
	currentYear := time.Now().Year()

	var legal []content.Page
	for _, path := range []string{"/privacy", "/terms"} {
		if p, ok := site.Page(path); ok {
			legal = append(legal, p)
		}
	}

	return Footer(
		Class("relative mt-16"),

		Div(Class("z-0 absolute inset-0 opacity-20 grainy")),

		Div(
			Class("z-[2] relative pt-8 md:pt-12 2xl:pt-24 xl:pt-16 container"),

			Div(
				Class("gap-6 grid grid-cols-2 md:grid-cols-5"),

				Div(
					Class("col-span-2"),
					Logo(site.Name),

					P(
						Class("mt-3 max-sm:text-sm text-base-content/80"),
						g.Text(site.Tagline),
					),

					P(Class("mt-6 font-medium"), g.Text("Get the occasional newsletter")),
					SubscribeForm(),
				),

				Div(Class("max-md:hidden xl:col-span-1")),

				Div(
					Class("col-span-1"),
					P(Class("font-medium"), g.Text("Studio")),
					Div(
						Class("flex flex-col space-y-1.5 mt-5 text-base-content/80"),
						g.Group(g.Map(site.NavPages(), func(p content.Page) g.Node {
							return A(Href(p.Path), g.Text(p.Label))
						})),
					),
				),

				Div(
					Class("col-span-1"),
					P(Class("font-medium"), g.Text("Legal")),
					Div(
						Class("flex flex-col space-y-1.5 mt-5 text-base-content/80"),
						g.Group(g.Map(legal, func(p content.Page) g.Node {
							return A(Href(p.Path), g.Text(p.Label))
						})),
						A(Href("mailto:"+site.Email), g.Text(site.Email)),
					),
				),
			),

			Div(
				Class("flex flex-wrap justify-between items-center gap-3 mt-12 py-6 border-t border-base-300"),
				P(g.Text(fmt.Sprintf("© %d %s. All rights reserved.", currentYear, site.Name))),
				ThemePicker(),
			),
		),

		P(
			Class("max-lg:hidden flex justify-center -mt-12 h-[195px] overflow-hidden font-black text-[200px] text-base-content/5 tracking-[12px] whitespace-nowrap select-none"),
			g.Text(strings.ToUpper(site.HeroText)),
		),
	)
}
