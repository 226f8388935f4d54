package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

func navLinks(chrome SiteChrome) g.Node {
	return g.Group(g.Map(chrome.Site.NavPages(), func(p content.Page) g.Node {
		return Li(
			A(
				Href(p.Path),
				g.If(p.Path == chrome.Current, Class("menu-active")),
				g.If(p.Path == chrome.Current, g.Attr("aria-current", "page")),
				g.Text(p.Label),
			),
		)
	}))
}

func Topbar(chrome SiteChrome) g.Node {
	return Div(
		g.Attr("data-scrolling", ""),
		g.Attr("data-at-top", "true"),
		Class("group fixed inset-x-0 z-[60] flex justify-center transition-[top] duration-500 data-[scrolling=down]:-top-full sm:container [&:not([data-scrolling=down])]:top-0 [&:not([data-scrolling=down])]:sm:top-4"),

		Div(
			Class("flex justify-between items-center group-data-[at-top=false]:bg-base-100 group-data-[at-top=false]:shadow px-3 sm:px-6 py-3 lg:py-1.5 sm:rounded-full w-full group-data-[at-top=false]:w-[900px] transition-all duration-500"),

			Div(
				Class("flex items-center gap-2"),

				Div(
					Class("lg:hidden flex-none"),
					Div(
						Class("drawer"),
						Input(
							ID("site-menu-drawer"),
							Type("checkbox"),
							Class("drawer-toggle"),
						),
						Div(
							Class("drawer-content"),
							Label(
								g.Attr("for", "site-menu-drawer"),
								Class("btn drawer-button btn-ghost btn-square btn-sm"),
								Icon("lucide--menu size-4.5", "Open menu"),
							),
						),
						Div(
							Class("z-[50] drawer-side"),
							Label(
								g.Attr("for", "site-menu-drawer"),
								g.Attr("aria-label", "close sidebar"),
								Class("drawer-overlay"),
							),
							Ul(
								Class("bg-base-100 p-4 w-80 min-h-full text-base-content menu"),
								navLinks(chrome),
							),
						),
					),
				),

				A(
					Href("/"),
					Logo(chrome.Site.Name),
				),
			),

			Ul(
				Class("hidden lg:inline-flex gap-2 px-0 menu menu-horizontal"),
				navLinks(chrome),
			),

			Div(
				Class("inline-flex items-center gap-3"),

				ThemePicker(),

				A(
					Href("/contact"),
					Class("group/cta relative gap-2 bg-linear-to-r from-primary to-secondary border-0 text-primary-content text-sm btn btn-sm max-sm:btn-square"),
					Icon("lucide--message-circle size-4", ""),
					Span(Class("max-sm:hidden"), g.Text("Start a project")),
					Div(Class("top-1 -z-1 absolute inset-x-0 bg-linear-to-r from-primary to-secondary opacity-40 group-hover/cta:opacity-60 blur-md group-hover/cta:blur-lg h-8 transition-all duration-500")),
				),
			),
		),
	)
}
