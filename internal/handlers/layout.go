package handlers

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/joseph082/aws-amplify-docs/internal/nav"
)

const stylesheet = "/assets/overview.css"

// Layout renders the full HTML document for d.
func Layout(d PageData) g.Node {
	lang := d.Lang
	if lang == "" {
		lang = "en"
	}
	return h.Doctype(
		h.HTML(h.Lang(lang),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.Group(d.SEO.Nodes()),
				h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
			),
			h.Body(g.If(d.Path != "", g.Attr("data-route", d.Path)),
				header(d),
				breadcrumbs(d.Breadcrumbs),
				h.Main(h.Class("main"),
					g.If(d.Title != "", h.H1(h.Class("main__title"), g.Text(d.Title))),
					g.If(d.Body != nil, h.Article(h.Class("main__content"), d.Body)),
					g.If(d.Overview != nil, h.Section(h.Class("main__overview"), d.Overview)),
				),
				h.Footer(h.Class("footer"), g.Text(d.SiteName)),
			),
		),
	)
}

func header(d PageData) g.Node {
	return h.Header(h.Class("header"),
		h.A(h.Class("header__brand"), h.Href(nav.WithPlatform("/", d.Platform)), g.Text(d.SiteName)),
		g.If(len(d.Nav) > 0, h.Nav(h.Class("header__sections"), h.Aria("label", "Sections"),
			h.Ul(g.Map(d.Nav, func(it nav.RenderedItem) g.Node {
				return h.Li(
					h.A(h.Href(it.Href),
						g.If(it.Active, h.Class("active")),
						g.If(it.Active, h.Aria("current", "page")),
						g.Text(it.Label),
					),
				)
			})),
		)),
		platformSwitcher(d.Platforms),
	)
}

func platformSwitcher(items []nav.PlatformItem) g.Node {
	if len(items) == 0 {
		return nil
	}
	return h.Nav(h.Class("platforms"), h.Aria("label", "Platform"),
		h.Ul(g.Map(items, func(it nav.PlatformItem) g.Node {
			cls := "platforms__item"
			if it.Active {
				cls += " platforms__item--active"
			}
			if !it.Supported {
				cls += " platforms__item--unsupported"
			}
			return h.Li(h.Class(cls),
				h.A(h.Href(it.Href), g.Attr("data-platform", string(it.Platform)), g.Text(it.Label)),
			)
		})),
	)
}

func breadcrumbs(crumbs []nav.Crumb) g.Node {
	if len(crumbs) < 2 {
		return nil
	}
	return h.Nav(h.Class("breadcrumbs"), h.Aria("label", "Breadcrumb"),
		h.Ol(g.Map(crumbs, func(c nav.Crumb) g.Node {
			if c.Active || c.Href == "" {
				return h.Li(g.If(c.Active, h.Aria("current", "page")), g.Text(c.Label))
			}
			return h.Li(h.A(h.Href(c.Href), g.Text(c.Label)))
		})),
	)
}
