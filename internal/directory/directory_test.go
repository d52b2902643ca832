package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func routes(nodes []PageNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Route)
	}
	return out
}

func TestLoadBuildsHierarchy(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.md":                          "---\ntitle: Home\n---\n",
		"build-a-backend/index.md":          "---\ntitle: Build a backend\nplatforms: [react, swift]\norder: 1\n---\n",
		"build-a-backend/auth/index.md":     "---\ntitle: Auth\ndescription: Sign in\norder: 2\n---\n",
		"build-a-backend/data.md":           "---\ntitle: Data\nplatforms: [react]\norder: 1\n---\n",
		"build-a-backend/storage/upload.md": "---\ntitle: Upload\n---\n",
		"start.md":                          "---\ntitle: Start\n---\n",
		"notes.txt":                         "ignored",
	})

	tree, err := Load(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 6, tree.Len())
	require.Equal(t, "Home", tree.Root.Title)
	require.Equal(t, platform.All(), tree.Root.Platforms)

	require.Equal(t, []string{"/start", "/build-a-backend"}, routes(tree.Children("/")))
	require.Equal(t,
		[]string{"/build-a-backend/storage/upload", "/build-a-backend/data", "/build-a-backend/auth"},
		routes(tree.Children("/build-a-backend")),
	)

	auth, ok := tree.Find("/build-a-backend/auth/")
	require.True(t, ok)
	require.Equal(t, "Sign in", auth.Description)
	require.Equal(t, []platform.Platform{platform.React, platform.Swift}, auth.Platforms, "platforms inherit from parent")

	data, ok := tree.Find("build-a-backend/data")
	require.True(t, ok)
	require.True(t, data.SupportsPlatform(platform.React))
	require.False(t, data.SupportsPlatform(platform.Swift))

	require.Nil(t, tree.Children("/missing"))
	require.NotNil(t, tree.Children("/start"))
	require.Empty(t, tree.Children("/start"))
}

func TestLoadSynthesizesRoot(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"guide.md": "---\ntitle: Guide\n---\n",
	})
	tree, err := Load(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, "Documentation", tree.Root.Title)
	require.Empty(t, tree.Root.Source)
	require.Equal(t, []string{"/guide"}, routes(tree.Children("/")))
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.md":       "---\ntitle: Home\n---\n",
		"a/index.md":     "---\ntitle: A\n---\n",
		"a/b/c/index.md": "---\ntitle: C\n---\n",
	})
	tree, err := Load(context.Background(), root)
	require.NoError(t, err)

	chain := tree.Ancestors("/a/b/c")
	got := make([]string, 0, len(chain))
	for _, n := range chain {
		got = append(got, n.Route)
	}
	require.Equal(t, []string{"/", "/a", "/a/b/c"}, got)
}

func TestValidateReportsProblems(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.md":     "---\ntitle: Home\n---\n",
		"dup.md":       "---\ntitle: Dup\n---\n",
		"dup/index.md": "---\ntitle: Dup again\n---\n",
		"untitled.md":  "no front matter",
		"ios.md":       "---\ntitle: iOS\nplatforms: [ios]\n---\n",
	})
	tree, err := Load(context.Background(), root)
	require.NoError(t, err)

	err = Validate(tree)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	problems := verr.Problems()
	require.Len(t, problems, 3)
	require.Contains(t, err.Error(), "duplicate route /dup")
	require.Contains(t, err.Error(), "/untitled: missing title")
	require.Contains(t, err.Error(), `/ios: unknown platform "ios"`)
}

func TestValidateCleanTree(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.md": "---\ntitle: Home\n---\n",
	})
	tree, err := Load(context.Background(), root)
	require.NoError(t, err)
	require.NoError(t, Validate(tree))
}

func TestLoadRejectsMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadHonorsCancellation(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"index.md": "---\ntitle: Home\n---\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRouteFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"index.md":   "/",
		"a/index.md": "/a",
		"a/b.md":     "/a/b",
		filepath.Join("x", "y", "index.md"): "/x/y",
	}
	for in, want := range cases {
		require.Equal(t, want, RouteFor(in), in)
	}
}
