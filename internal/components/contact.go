package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func field(label, name, kind, placeholder string, required bool) g.Node {
	return Label(
		Class("floating-label w-full"),
		Span(g.Text(label)),
		Input(
			Type(kind),
			Name(name),
			ID("contact-"+name),
			Class("input w-full"),
			Placeholder(placeholder),
			g.If(required, Required()),
		),
		Span(Class("field-error text-error text-xs hidden"), g.Attr("data-field", name)),
	)
}

// ContactForm posts JSON to /api/contact via forms.js. Plan preselects the
// pricing tier the visitor came from. The hidden website field is a honeypot.
func ContactForm(email string, budgets []string, plan string) g.Node {
	message := ""
	if plan != "" {
		message = "I am interested in the " + plan + " package."
	}

	return Section(
		Class("py-8 md:py-12 xl:py-16 container max-w-2xl"),
		SectionHeading("contact", "lucide--message-circle", "secondary", "Tell us about your project", "We reply within one business day. Prefer email? Write to "+email+"."),
		Form(
			ID("contact-form"),
			Class("mt-10 space-y-4"),
			Action("/api/contact"),
			Method("post"),
			g.Attr("data-json-form", ""),
			Div(
				Class("grid grid-cols-1 md:grid-cols-2 gap-4"),
				field("Name", "name", "text", "Your name", true),
				field("Email", "email", "email", "you@company.com", true),
			),
			field("Company", "company", "text", "Company (optional)", false),
			Label(
				Class("floating-label w-full"),
				Span(g.Text("Budget")),
				Select(
					Name("budget"),
					Class("select w-full"),
					Option(Value(""), g.Text("Pick a range")),
					g.Group(g.Map(budgets, func(b string) g.Node {
						return Option(Value(b), g.Text(b))
					})),
				),
			),
			Label(
				Class("floating-label w-full"),
				Span(g.Text("Message")),
				Textarea(
					Name("message"),
					Class("textarea w-full"),
					g.Attr("rows", "6"),
					Placeholder("What are you building?"),
					Required(),
					g.Text(message),
				),
				Span(Class("field-error text-error text-xs hidden"), g.Attr("data-field", "message")),
			),
			Button(Type("submit"), Class("btn btn-primary w-full"), Icon("lucide--send size-4", ""), g.Text("Send message")),
			Div(
				Class("hidden"),
				g.Attr("aria-hidden", "true"),
				Input(Type("text"), Name("website"), TabIndex("-1"), AutoComplete("off")),
			),
			P(Class("form-status text-sm hidden"), g.Attr("role", "status")),
		),
	)
}
