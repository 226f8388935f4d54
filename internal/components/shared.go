package components

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/content"
)

// SiteChrome is what the top bar and footer need to render.
type SiteChrome struct {
	Site    *content.Site
	Current string
}

func Logo(name string) g.Node {
	return Div(
		Class("flex items-center gap-2"),
		Span(Class("inline-block size-3 rounded-full bg-linear-to-tr from-secondary to-accent animate-pulse")),
		Span(
			Class("font-bold text-xl"),
			g.Text(name),
		),
	)
}

func convertIconName(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) == 0 {
		return ""
	}
	return strings.Replace(parts[0], "--", ":", 1)
}

func extractSizeClasses(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

func Icon(iconClass, ariaLabel string) g.Node {
	classes := "iconify inline-block"
	if sizeClasses := extractSizeClasses(iconClass); sizeClasses != "" {
		classes = fmt.Sprintf("iconify inline-block %s", sizeClasses)
	}

	if ariaLabel != "" {
		return Span(
			Class(classes),
			g.Attr("data-icon", convertIconName(iconClass)),
			g.Attr("role", "img"),
			g.Attr("aria-label", ariaLabel),
		)
	}

	return Span(
		Class(classes),
		g.Attr("data-icon", convertIconName(iconClass)),
		g.Attr("aria-hidden", "true"),
	)
}

func IconBadge(icon, color string) g.Node {
	containerClass := fmt.Sprintf("inline-flex items-center justify-center shrink-0 select-none size-8 rounded-box bg-%s/10 border border-%s/20 transition-colors", color, color)

	return Span(
		Class(containerClass),
		Span(
			Class(fmt.Sprintf("iconify text-%s size-4", color)),
			g.Attr("data-icon", convertIconName(icon)),
		),
	)
}

func SectionHeading(id, icon, color, title, subtitle string) g.Node {
	return Div(
		Class("text-center"),
		IconBadge(icon, color),
		H2(
			g.If(id != "", ID(id)),
			Class("mt-4 font-semibold text-2xl sm:text-3xl custom-fade-in"),
			g.Text(title),
		),
		g.If(subtitle != "", P(
			Class("inline-block mt-3 max-w-2xl max-sm:text-sm text-base-content/70"),
			g.Text(subtitle),
		)),
	)
}

func ThemePicker() g.Node {
	themes := []struct {
		Value string
		Label string
	}{
		{"wacky-dark", "Dark"},
		{"wacky-light", "Light"},
	}

	return Div(
		Class("dropdown dropdown-end"),
		Div(
			g.Attr("tabindex", "0"),
			g.Attr("role", "button"),
			Class("btn btn-ghost btn-sm gap-1"),
			Icon("lucide--palette", "Theme"),
			Span(Class("max-sm:hidden"), g.Text("Theme")),
		),
		Ul(
			g.Attr("tabindex", "-1"),
			Class("dropdown-content menu bg-base-100 rounded-box z-[1] mt-2 w-40 border border-base-300 p-2 shadow"),
			g.Group(g.Map(themes, func(theme struct {
				Value string
				Label string
			}) g.Node {
				return Li(
					Button(
						Class("theme-option"),
						g.Attr("data-theme", theme.Value),
						g.Text(theme.Label),
					),
				)
			})),
		),
	)
}
