package seo

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Image string
}

// Meta is the per-page head metadata.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	// JSONLD holds pre-encoded structured data documents.
	JSONLD []string
}

// Nodes renders the metadata as head elements, skipping empty values.
func (m Meta) Nodes() []g.Node {
	nodes := []g.Node{h.TitleEl(g.Text(m.Title))}
	meta := func(attr, key, value string) {
		if value == "" {
			return
		}
		nodes = append(nodes, h.Meta(g.Attr(attr, key), h.Content(value)))
	}
	meta("name", "description", m.Description)
	meta("name", "robots", m.Robots)
	meta("property", "og:title", m.OG.Title)
	meta("property", "og:description", m.OG.Description)
	meta("property", "og:image", m.OG.Image)
	meta("property", "og:type", m.OG.Type)
	meta("property", "og:url", m.OG.URL)
	meta("property", "og:site_name", m.OG.SiteName)
	meta("name", "twitter:card", m.Twitter.Card)
	meta("name", "twitter:image", m.Twitter.Image)
	if m.Canonical != "" {
		nodes = append(nodes, h.Link(h.Rel("canonical"), h.Href(m.Canonical)))
	}
	for _, doc := range m.JSONLD {
		if doc == "" {
			continue
		}
		nodes = append(nodes, h.Script(h.Type("application/ld+json"), g.Raw(doc)))
	}
	return nodes
}
