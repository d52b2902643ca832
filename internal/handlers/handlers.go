// Package handlers serves documentation pages, their overview grids and the
// overview JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/joseph082/aws-amplify-docs/internal/content"
	"github.com/joseph082/aws-amplify-docs/internal/directory"
	mw "github.com/joseph082/aws-amplify-docs/internal/middleware"
	"github.com/joseph082/aws-amplify-docs/internal/nav"
	"github.com/joseph082/aws-amplify-docs/internal/observability"
	"github.com/joseph082/aws-amplify-docs/internal/overview"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
	"github.com/joseph082/aws-amplify-docs/internal/seo"
	"github.com/joseph082/aws-amplify-docs/internal/ui"
)

// TreeSource supplies the current page tree.
type TreeSource interface {
	Tree() *directory.Tree
}

// PageSource renders the markdown body of a page.
type PageSource interface {
	Page(ctx context.Context, path string) (content.Page, error)
}

// Deps wires the handlers to their collaborators.
type Deps struct {
	Tree            TreeSource
	Pages           PageSource
	SiteName        string
	BaseURL         string
	DefaultPlatform platform.Platform
}

// Handlers holds the HTTP endpoints of the site.
type Handlers struct {
	tree            TreeSource
	pages           PageSource
	siteName        string
	baseURL         string
	defaultPlatform platform.Platform
}

// New validates deps and returns the handlers.
func New(deps Deps) (*Handlers, error) {
	if deps.Tree == nil {
		return nil, errors.New("handlers: tree source is required")
	}
	if deps.Pages == nil {
		return nil, errors.New("handlers: page source is required")
	}
	def := deps.DefaultPlatform
	if !def.Valid() {
		def = platform.Default
	}
	return &Handlers{
		tree:            deps.Tree,
		pages:           deps.Pages,
		siteName:        strings.TrimSpace(deps.SiteName),
		baseURL:         strings.TrimRight(strings.TrimSpace(deps.BaseURL), "/"),
		defaultPlatform: def,
	}, nil
}

// Healthz reports liveness.
func (hs *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Page renders the documentation page at the request path together with the
// overview of its children for the reader's platform.
func (hs *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	route := directory.NormalizeRoute(r.URL.Path)
	p := mw.CurrentPlatform(r, hs.defaultPlatform)
	tree := hs.tree.Tree()

	node, ok := tree.Find(route)
	if !ok {
		hs.notFound(w, r, tree, route, p, nil)
		return
	}
	if !node.SupportsPlatform(p) {
		hs.notFound(w, r, tree, route, p, node.Platforms)
		return
	}

	var page content.Page
	if node.Source != "" {
		var err error
		page, err = hs.pages.Page(r.Context(), node.Source)
		switch {
		case errors.Is(err, content.ErrNotFound):
			hs.notFound(w, r, tree, route, p, nil)
			return
		case err != nil:
			observability.FromContext(r.Context()).Error("render page",
				zap.String("route", route), zap.String("source", node.Source), zap.Error(err))
			hs.serverError(w, r)
			return
		}
	}

	data := hs.pageData(tree, route, p, node.Platforms)
	data.Title = node.Title
	if page.HTML != "" {
		data.Body = g.Raw(page.HTML)
	}
	if len(node.Children) > 0 {
		data.Overview = overview.Render(tree.Children(route), p)
	}
	data.SEO = hs.meta(node, page, data.Breadcrumbs, route)

	hs.render(w, r, http.StatusOK, data)
}

type overviewResponse struct {
	Route    string           `json:"route"`
	Platform string           `json:"platform"`
	Entries  []overview.Entry `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// OverviewAPI returns the overview entries of a route as JSON. The platform
// query value is used verbatim; without one the reader's platform applies.
func (hs *Handlers) OverviewAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	route := directory.NormalizeRoute(q.Get("route"))
	p := platform.Platform(strings.TrimSpace(q.Get(overview.QueryParam)))
	if p == "" {
		p = mw.CurrentPlatform(r, hs.defaultPlatform)
	}

	tree := hs.tree.Tree()
	if _, ok := tree.Find(route); !ok {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "route not found"})
		return
	}
	entries := overview.Entries(tree.Children(route), p)
	if entries == nil {
		entries = []overview.Entry{}
	}
	writeJSON(w, r, http.StatusOK, overviewResponse{
		Route:    route,
		Platform: string(p),
		Entries:  entries,
	})
}

func (hs *Handlers) pageData(tree *directory.Tree, route string, p platform.Platform, supported []platform.Platform) PageData {
	return PageData{
		SiteName:    hs.siteName,
		Lang:        "en",
		Path:        route,
		Platform:    p,
		Nav:         nav.Sections(tree, route, p),
		Breadcrumbs: nav.Breadcrumbs(tree, route, p),
		Platforms:   nav.PlatformSwitcher(route, p, supported),
	}
}

func (hs *Handlers) meta(node *directory.PageNode, page content.Page, crumbs []nav.Crumb, route string) seo.Meta {
	title := firstNonEmpty(page.SEO.Title, node.Title)
	if hs.siteName != "" && route != "/" {
		title = title + " | " + hs.siteName
	}
	desc := firstNonEmpty(page.SEO.Description, node.Description, page.Description)
	canonical := hs.absolute(route)

	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		item := seo.BreadcrumbItem{Name: c.Label}
		if c.Href != "" {
			item.Item = hs.absolute(c.Href)
		}
		items = append(items, item)
	}
	var modified string
	if !page.UpdatedAt.IsZero() {
		modified = page.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return seo.Meta{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Image:       page.SEO.OGImage,
			Type:        "article",
			URL:         canonical,
			SiteName:    hs.siteName,
		},
		Twitter: seo.Twitter{Card: "summary", Image: page.SEO.OGImage},
		JSONLD: []string{
			seo.JSON(seo.BreadcrumbList(items)),
			seo.JSON(seo.TechArticle(node.Title, desc, canonical, modified)),
		},
	}
}

func (hs *Handlers) absolute(href string) string {
	if hs.baseURL == "" {
		return href
	}
	return hs.baseURL + href
}

func (hs *Handlers) notFound(w http.ResponseWriter, r *http.Request, tree *directory.Tree, route string, p platform.Platform, supported []platform.Platform) {
	data := hs.pageData(tree, route, p, supported)
	data.Title = "Page not found"
	data.SEO = seo.Meta{Title: firstNonEmpty(hs.siteName, "Not found"), Robots: "noindex"}
	if len(supported) > 0 {
		data.Title = "Not available for " + p.Title()
		data.Body = ui.Card(ui.CardElevated, "unsupported",
			ui.Text("unsupported__lead", "This page is available for:"),
			h.Ul(g.Map(supported, func(sp platform.Platform) g.Node {
				return h.Li(ui.Link(nav.WithPlatform(route, sp), "unsupported__link", g.Text(sp.Title())))
			})),
		)
	}
	hs.render(w, r, http.StatusNotFound, data)
}

// serverError answers with a plain 500 that carries the request id for support.
func (hs *Handlers) serverError(w http.ResponseWriter, r *http.Request) {
	msg := http.StatusText(http.StatusInternalServerError)
	if id, ok := mw.RequestID(r.Context()); ok && id != "" {
		w.Header().Set("X-Request-Id", id)
		msg += " (request " + id + ")"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func (hs *Handlers) render(w http.ResponseWriter, r *http.Request, status int, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := Layout(data).Render(w); err != nil {
		observability.FromContext(r.Context()).Warn("write page", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.FromContext(r.Context()).Warn("write json", zap.Error(err))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
