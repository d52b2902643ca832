package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joseph082/aws-amplify-docs/internal/content"
	"github.com/joseph082/aws-amplify-docs/internal/directory"
	mw "github.com/joseph082/aws-amplify-docs/internal/middleware"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
	"github.com/joseph082/aws-amplify-docs/internal/testutil"
)

type staticTree struct{ tree *directory.Tree }

func (s staticTree) Tree() *directory.Tree { return s.tree }

type failingPages struct{}

func (failingPages) Page(context.Context, string) (content.Page, error) {
	return content.Page{}, errors.New("disk on fire")
}

func fixtureTree(t *testing.T) *directory.Tree {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.md":       "---\ntitle: Docs\n---\nWelcome.\n",
		"start.md":       "---\ntitle: Start\ndescription: First steps\n---\nGo.\n",
		"build/index.md": "---\ntitle: Build\ndescription: Backend\nplatforms: [react, swift]\norder: 1\n---\nIntro text.\n",
		"build/auth.md":  "---\ntitle: Auth\ndescription: Sign in users\norder: 1\n---\nAuth body.\n",
		"build/data.md":  "---\ntitle: Data\ndescription: Model <data>\nplatforms: [react]\norder: 2\n---\nData body.\n",
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	tree, err := directory.Load(context.Background(), root)
	require.NoError(t, err)
	return tree
}

func newTestRouter(t *testing.T, pages PageSource) http.Handler {
	t.Helper()
	if pages == nil {
		pages = content.NewStore(content.WithCacheTTL(0))
	}
	hs, err := New(Deps{
		Tree:            staticTree{tree: fixtureTree(t)},
		Pages:           pages,
		SiteName:        "Amplify Docs",
		BaseURL:         "https://docs.example.com/",
		DefaultPlatform: platform.React,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.Platform(platform.React))
	r.Use(mw.Logger(zap.NewNop()))
	r.Get("/healthz", hs.Healthz)
	r.Get("/api/overview", hs.OverviewAPI)
	r.Get("/*", hs.Page)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func hrefs(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, href)
	})
	return out
}

func TestNewRequiresSources(t *testing.T) {
	t.Parallel()

	_, err := New(Deps{Pages: content.NewStore()})
	require.Error(t, err)
	_, err = New(Deps{Tree: staticTree{}})
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestPageRendersOverviewForPlatform(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := get(t, router, "/build?platform=react")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Build", doc.Find("h1.main__title").Text())
	require.Contains(t, doc.Find("article.main__content").Text(), "Intro text.")
	require.Equal(t,
		[]string{"/build/auth?platform=react", "/build/data?platform=react"},
		hrefs(doc, "div.grid.overview > a.overview__link"),
	)
	titles := doc.Find(".overview__link__card__title")
	require.Equal(t, "Auth", titles.First().Text())
	require.Equal(t, "Model <data>", doc.Find(".overview__link__card__description").Last().Text())

	require.Equal(t, "Build | Amplify Docs", doc.Find("title").Text())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://docs.example.com/build", canonical)
	require.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())

	active := doc.Find(".platforms__item--active a")
	require.Equal(t, "react", active.AttrOr("data-platform", ""))
	require.Equal(t, []string{"/?platform=react"}, hrefs(doc, "nav.breadcrumbs a"))
	require.Equal(t, "Build", doc.Find(`nav.breadcrumbs li[aria-current="page"]`).Text())
}

func TestPageFiltersChildrenByPlatform(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/build?platform=swift")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, []string{"/build/auth?platform=swift"}, hrefs(doc, ".overview a.overview__link"))
}

func TestPageUsesDefaultPlatform(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t,
		[]string{"/start?platform=react", "/build?platform=react"},
		hrefs(doc, ".overview a.overview__link"),
	)
	require.Equal(t, "Docs", doc.Find("title").Text())
}

func TestLeafPageHasNoOverview(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/build/auth?platform=react")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Zero(t, doc.Find(".overview").Length())
	require.Contains(t, doc.Find("article").Text(), "Auth body.")
}

func TestPageUnsupportedPlatformListsAlternatives(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/build/data?platform=swift")
	require.Equal(t, http.StatusNotFound, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, 1, doc.Find("div.card.card--elevated.unsupported").Length())
	require.Equal(t, []string{"/build/data?platform=react"}, hrefs(doc, ".unsupported a.unsupported__link"))
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
}

func TestPageUnknownRoute(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, nil), "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Page not found", doc.Find("h1").Text())
}

func TestPageSourceFailure(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(t, failingPages{}), "/build")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	id := rec.Header().Get("X-Request-Id")
	require.NotEmpty(t, id)
	require.Contains(t, rec.Body.String(), "(request "+id+")")
}

func TestOverviewAPI(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := get(t, router, "/api/overview?route=/build&platform=react")
	require.Equal(t, http.StatusOK, rec.Code)
	var body overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "/build", body.Route)
	require.Equal(t, "react", body.Platform)
	require.Len(t, body.Entries, 2)
	require.Equal(t, "/build/data?platform=react", body.Entries[1].Href)

	// unknown platforms are matched verbatim and simply select nothing
	rec = get(t, router, "/api/overview?route=/build&platform=ios")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"route":"/build","platform":"ios","entries":[]}`, rec.Body.String())

	rec = get(t, router, "/api/overview?route=/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}

func TestOverviewAPIFallsBackToReaderPlatform(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/overview?route=/build", nil)
	req.AddCookie(&http.Cookie{Name: mw.PlatformCookie, Value: "swift"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "swift", body.Platform)
	require.Len(t, body.Entries, 1)
	require.Equal(t, "/build/auth", body.Entries[0].Route)
}
