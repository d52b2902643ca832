// Package directory builds the documentation page tree from a content
// directory of markdown files with YAML front matter.
package directory

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph082/aws-amplify-docs/internal/content"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

const (
	indexFile = "index.md"
	rootRoute = "/"
	rootTitle = "Documentation"
)

// PageNode describes one documentation page. Consumers treat it as read-only.
type PageNode struct {
	Route       string
	Title       string
	Description string
	Platforms   []platform.Platform
	Order       int
	// Source is the markdown file backing the page; empty for synthesized nodes.
	Source   string
	Children []*PageNode
}

// SupportsPlatform reports whether p is in the node's platform set.
func (n *PageNode) SupportsPlatform(p platform.Platform) bool {
	return platform.Contains(n.Platforms, p)
}

// Tree is an immutable page hierarchy rooted at "/".
type Tree struct {
	Root       *PageNode
	byRoute    map[string]*PageNode
	duplicates []string
}

// Load walks root and builds the page tree. Directories without an index.md
// do not produce a node; their pages attach to the nearest ancestor.
func Load(ctx context.Context, root string) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("directory: %s is not a directory", root)
	}

	t := &Tree{byRoute: map[string]*PageNode{}}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		node, err := readNode(p, RouteFor(rel))
		if err != nil {
			return err
		}
		if _, exists := t.byRoute[node.Route]; exists {
			t.duplicates = append(t.duplicates, fmt.Sprintf("%s (%s)", node.Route, p))
			return nil
		}
		t.byRoute[node.Route] = node
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("directory: load %s: %w", root, err)
	}
	t.link()
	return t, nil
}

// RouteFor maps a content-relative markdown path to its route.
func RouteFor(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, ".md")
	if rel == "index" {
		return rootRoute
	}
	rel = strings.TrimSuffix(rel, "/index")
	return "/" + strings.Trim(rel, "/")
}

func readNode(file, route string) (*PageNode, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	front, _, err := content.ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	node := &PageNode{
		Route:       route,
		Title:       front.Title,
		Description: front.Description,
		Order:       front.Order,
		Source:      file,
	}
	for _, p := range front.Platforms {
		node.Platforms = append(node.Platforms, platform.Platform(p))
	}
	return node, nil
}

func (t *Tree) link() {
	root, ok := t.byRoute[rootRoute]
	if !ok {
		root = &PageNode{Route: rootRoute, Title: rootTitle}
		t.byRoute[rootRoute] = root
	}
	t.Root = root

	routes := make([]string, 0, len(t.byRoute))
	for r := range t.byRoute {
		if r != rootRoute {
			routes = append(routes, r)
		}
	}
	sort.Strings(routes)
	for _, r := range routes {
		parent := t.nearestAncestor(r)
		parent.Children = append(parent.Children, t.byRoute[r])
	}

	if len(root.Platforms) == 0 {
		root.Platforms = platform.All()
	}
	var finish func(n *PageNode)
	finish = func(n *PageNode) {
		sortChildren(n.Children)
		for _, c := range n.Children {
			if len(c.Platforms) == 0 {
				c.Platforms = append([]platform.Platform(nil), n.Platforms...)
			}
			finish(c)
		}
	}
	finish(root)
}

func (t *Tree) nearestAncestor(route string) *PageNode {
	for dir := path.Dir(route); ; dir = path.Dir(dir) {
		if n, ok := t.byRoute[dir]; ok {
			return n
		}
		if dir == rootRoute {
			return t.Root
		}
	}
}

func sortChildren(nodes []*PageNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		if nodes[i].Title != nodes[j].Title {
			return nodes[i].Title < nodes[j].Title
		}
		return nodes[i].Route < nodes[j].Route
	})
}

// Find returns the node for route.
func (t *Tree) Find(route string) (*PageNode, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.byRoute[NormalizeRoute(route)]
	return n, ok
}

// Children returns the direct children of route in display order, or nil
// when the route is unknown.
func (t *Tree) Children(route string) []PageNode {
	n, ok := t.Find(route)
	if !ok {
		return nil
	}
	out := make([]PageNode, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, *c)
	}
	return out
}

// Ancestors returns the chain from the root down to route, inclusive.
func (t *Tree) Ancestors(route string) []*PageNode {
	n, ok := t.Find(route)
	if !ok {
		return nil
	}
	var chain []*PageNode
	for r := n.Route; ; r = path.Dir(r) {
		if node, ok := t.byRoute[r]; ok {
			chain = append(chain, node)
		}
		if r == rootRoute {
			break
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Walk visits nodes depth-first in display order, stopping at the first error.
func (t *Tree) Walk(fn func(*PageNode) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	var visit func(n *PageNode) error
	visit = func(n *PageNode) error {
		if err := fn(n); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t.Root)
}

// Len reports the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byRoute)
}

// NormalizeRoute cleans a request path into route form ("/a/b", no trailing slash).
func NormalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return rootRoute
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return path.Clean(route)
}
