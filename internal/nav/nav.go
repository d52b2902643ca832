package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph082/aws-amplify-docs/internal/directory"
	"github.com/joseph082/aws-amplify-docs/internal/overview"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

// RenderedItem is a top-level section link for the header.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// PlatformItem is one option of the platform switcher.
type PlatformItem struct {
	Platform platform.Platform
	Label    string
	Href     string
	Active   bool
	// Supported is false when the current page has no content for the platform.
	Supported bool
}

// WithPlatform keeps the reader's platform on a navigation link.
func WithPlatform(href string, p platform.Platform) string {
	return overview.Href(href, p)
}

// Sections renders the root's children that apply to p, marking the one
// containing currentRoute as active.
func Sections(tree *directory.Tree, currentRoute string, p platform.Platform) []RenderedItem {
	if tree == nil || tree.Root == nil {
		return nil
	}
	currentRoute = directory.NormalizeRoute(currentRoute)
	items := make([]RenderedItem, 0, len(tree.Root.Children))
	for _, n := range tree.Root.Children {
		if !n.SupportsPlatform(p) {
			continue
		}
		items = append(items, RenderedItem{
			Href:   WithPlatform(n.Route, p),
			Label:  n.Title,
			Active: isActive(n.Route, currentRoute),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/build" or "/build/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds entries from the root down to route. Segments without a
// page of their own use a title-cased segment label and no link.
func Breadcrumbs(tree *directory.Tree, route string, p platform.Platform) []Crumb {
	route = directory.NormalizeRoute(route)
	home := "Home"
	if tree != nil && tree.Root != nil && tree.Root.Title != "" {
		home = tree.Root.Title
	}
	crumbs := []Crumb{{Href: WithPlatform("/", p), Label: home, Active: route == "/"}}
	if route == "/" {
		return crumbs
	}

	known := pagesAbove(tree, route)
	parts := strings.Split(strings.TrimPrefix(route, "/"), "/")
	href := ""
	for i, seg := range parts {
		href = path.Join("/", href, seg)
		crumb := Crumb{Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if n, ok := known[href]; ok {
			if n.Title != "" {
				crumb.Label = n.Title
			}
			crumb.Href = WithPlatform(n.Route, p)
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

// pagesAbove indexes the ancestor chain of the deepest existing page at or
// above route.
func pagesAbove(tree *directory.Tree, route string) map[string]*directory.PageNode {
	known := map[string]*directory.PageNode{}
	if tree == nil {
		return known
	}
	for r := route; ; r = path.Dir(r) {
		if chain := tree.Ancestors(r); chain != nil {
			for _, n := range chain {
				known[n.Route] = n
			}
			return known
		}
		if r == "/" {
			return known
		}
	}
}

// PlatformSwitcher lists every platform, linking to the same route scoped to it.
func PlatformSwitcher(route string, current platform.Platform, supported []platform.Platform) []PlatformItem {
	route = directory.NormalizeRoute(route)
	all := platform.All()
	items := make([]PlatformItem, 0, len(all))
	for _, p := range all {
		items = append(items, PlatformItem{
			Platform:  p,
			Label:     p.Title(),
			Href:      WithPlatform(route, p),
			Active:    p == current,
			Supported: platform.Contains(supported, p),
		})
	}
	return items
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	// Casers keep state between calls and must not be shared.
	return cases.Title(language.English).String(s)
}
