// Package overview renders the grid of child pages shown on section landing
// pages, scoped to the platform the reader selected.
package overview

import (
	"net/url"

	g "maragu.dev/gomponents"

	"github.com/joseph082/aws-amplify-docs/internal/directory"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
	"github.com/joseph082/aws-amplify-docs/internal/ui"
)

// QueryParam carries the platform on overview links.
const QueryParam = "platform"

// Entry is one card of the overview grid.
type Entry struct {
	Route       string `json:"route"`
	Href        string `json:"href"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Entries keeps the nodes whose platform set contains current, in input
// order. A nil input yields nil; an input with no match yields an empty slice.
func Entries(nodes []directory.PageNode, current platform.Platform) []Entry {
	if nodes == nil {
		return nil
	}
	out := make([]Entry, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if !n.SupportsPlatform(current) {
			continue
		}
		out = append(out, Entry{
			Route:       n.Route,
			Href:        Href(n.Route, current),
			Title:       n.Title,
			Description: n.Description,
		})
	}
	return out
}

// Href attaches p to route as the platform query parameter, keeping any
// query the route already has.
func Href(route string, p platform.Platform) string {
	u, err := url.Parse(route)
	if err != nil {
		return route + "?" + QueryParam + "=" + url.QueryEscape(string(p))
	}
	q := u.Query()
	q.Set(QueryParam, string(p))
	u.RawQuery = q.Encode()
	return u.String()
}

// Render returns the overview grid. A nil input renders nothing at all.
func Render(nodes []directory.PageNode, current platform.Platform) g.Node {
	if nodes == nil {
		return g.Group(nil)
	}
	return Grid(Entries(nodes, current))
}

// Grid renders already filtered entries.
func Grid(entries []Entry) g.Node {
	cards := make([]g.Node, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, card(e))
	}
	return ui.Grid("overview", cards...)
}

func card(e Entry) g.Node {
	return ui.Link(e.Href, "overview__link",
		ui.Card(ui.CardOutlined, "overview__link__card",
			ui.Flex(ui.Column,
				ui.Text("overview__link__card__title", e.Title),
				ui.View("overview__link__card__description", e.Description),
			),
		),
	)
}
