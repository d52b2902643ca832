package handlers

import (
	g "maragu.dev/gomponents"

	"github.com/joseph082/aws-amplify-docs/internal/nav"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
	"github.com/joseph082/aws-amplify-docs/internal/seo"
)

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Title    string
	SiteName string
	Lang     string
	SEO      seo.Meta

	Path        string
	Platform    platform.Platform
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Platforms   []nav.PlatformItem

	// Body is the sanitized page content; Overview is the child grid. Either may be nil.
	Body     g.Node
	Overview g.Node
}
