package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/joseph082/aws-amplify-docs/internal/testutil"
)

func TestMetaNodesSkipsEmptyValues(t *testing.T) {
	t.Parallel()

	m := Meta{
		Title:       "Auth | Docs",
		Description: "Sign in",
		Canonical:   "https://docs.example.com/auth",
		OG:          OpenGraph{Title: "Auth"},
		JSONLD:      []string{JSON(BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://docs.example.com/"}}))},
	}
	body := string(testutil.RenderNode(t, g.Group(m.Nodes())))

	require.Contains(t, body, "<title>Auth | Docs</title>")
	require.Contains(t, body, `<meta name="description" content="Sign in">`)
	require.Contains(t, body, `<meta property="og:title" content="Auth">`)
	require.Contains(t, body, `<link rel="canonical" href="https://docs.example.com/auth">`)
	require.Contains(t, body, `"@type":"BreadcrumbList"`)
	require.False(t, strings.Contains(body, "og:image"))
	require.False(t, strings.Contains(body, "robots"))
}

func TestJSONEscapesScriptBreakout(t *testing.T) {
	t.Parallel()

	out := JSON(TechArticle("</script><b>", "", "", ""))
	require.NotContains(t, out, "</script>")
	require.Contains(t, out, `\u003c/script\u003e`)
}

func TestBreadcrumbListPositions(t *testing.T) {
	t.Parallel()

	list := BreadcrumbList([]BreadcrumbItem{{Name: "A", Item: "/a"}, {Name: "B"}})
	items := list["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0]["position"])
	require.Equal(t, 2, items[1]["position"])
	_, hasItem := items[1]["item"]
	require.False(t, hasItem)
}
