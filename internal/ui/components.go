// Package ui holds the small set of presentational primitives the site is
// composed from. They only emit markup and class names.
package ui

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Direction is a flex layout axis.
type Direction string

const (
	Row    Direction = "row"
	Column Direction = "column"
)

// CardVariation selects the card style.
type CardVariation string

const (
	CardPlain    CardVariation = ""
	CardOutlined CardVariation = "outlined"
	CardElevated CardVariation = "elevated"
)

func classes(names ...string) g.Node {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return h.Class(strings.Join(parts, " "))
}

// Grid lays children out on the CSS grid defined by the site stylesheet.
func Grid(className string, children ...g.Node) g.Node {
	return h.Div(classes("grid", className), g.Group(children))
}

// Card is a bordered content container.
func Card(variation CardVariation, className string, children ...g.Node) g.Node {
	variant := ""
	if variation != CardPlain {
		variant = "card--" + string(variation)
	}
	return h.Div(classes("card", variant, className), g.Group(children))
}

// Flex stacks children along direction.
func Flex(direction Direction, children ...g.Node) g.Node {
	if direction == "" {
		direction = Row
	}
	return h.Div(classes("flex", "flex--"+string(direction)), g.Group(children))
}

// Text renders an escaped paragraph.
func Text(className, text string) g.Node {
	return h.P(classes("text", className), g.Text(text))
}

// View is a generic block container holding escaped text.
func View(className, text string) g.Node {
	return h.Div(classes("view", className), g.Text(text))
}

// Link is an anchor wrapping arbitrary children.
func Link(href, className string, children ...g.Node) g.Node {
	return h.A(h.Href(href), classes(className), g.Group(children))
}
