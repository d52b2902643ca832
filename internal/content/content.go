// Package content renders markdown pages with YAML front matter into
// sanitized HTML.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrNotFound is returned when the markdown source for a page does not exist.
var ErrNotFound = errors.New("content: not found")

const defaultCacheTTL = 5 * time.Minute

// Page is a rendered documentation page body.
type Page struct {
	Source      string
	Title       string
	Description string
	// HTML is sanitized and safe to embed as-is.
	HTML      string
	UpdatedAt time.Time
	SEO       SEO
}

// SEO holds optional metadata overrides for the page head.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Store renders markdown files to sanitized HTML and caches the result.
type Store struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration
	clock func() time.Time
	// root confines Page to files under it when set.
	root string

	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option customises a Store.
type Option func(*Store)

// WithCacheTTL overrides the cache duration. Non-positive values disable caching.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithRoot restricts Page to files inside dir.
func WithRoot(dir string) Option {
	return func(s *Store) {
		s.root = strings.TrimSpace(dir)
	}
}

// WithClock overrides the time source (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore constructs a Store with GFM markdown and a UGC sanitizing policy.
func NewStore(opts ...Option) *Store {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	s := &Store{
		items: map[string]cacheEntry{},
		ttl:   defaultCacheTTL,
		clock: time.Now,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page renders the markdown file at path, consulting the cache first.
func (s *Store) Page(ctx context.Context, path string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Page{}, ErrNotFound
	}
	path = filepath.Clean(path)
	if !s.contains(path) {
		return Page{}, ErrNotFound
	}
	if page, ok := s.cached(path); ok {
		return page, nil
	}
	page, err := s.render(path)
	if err != nil {
		return Page{}, err
	}
	s.store(path, page)
	return page, nil
}

func (s *Store) contains(path string) bool {
	if s.root == "" {
		return true
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Invalidate drops every cached page.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[string]cacheEntry{}
}

func (s *Store) render(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	front, body, err := ParseFrontMatter(data)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", path, err)
	}

	page := Page{
		Source:      path,
		Title:       front.Title,
		Description: front.Description,
		HTML:        string(s.policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt:   parseDate(front.UpdatedAt),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.clock().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{
		page:    page,
		expires: s.clock().Add(s.ttl),
	}
}
