// Package site keeps the current page tree and reloads it when the content
// directory changes.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/joseph082/aws-amplify-docs/internal/directory"
	"github.com/joseph082/aws-amplify-docs/internal/observability"
)

const defaultDebounce = 200 * time.Millisecond

// Library serves the latest successfully loaded tree.
type Library struct {
	root     string
	tree     atomic.Pointer[directory.Tree]
	debounce time.Duration
}

// Open loads the tree under root.
func Open(ctx context.Context, root string) (*Library, error) {
	l := &Library{root: root, debounce: defaultDebounce}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Root returns the content directory.
func (l *Library) Root() string { return l.root }

// Tree returns the current tree. It is never nil after Open succeeds.
func (l *Library) Tree() *directory.Tree {
	return l.tree.Load()
}

// Reload rebuilds the tree. On failure the previous tree stays in place.
func (l *Library) Reload(ctx context.Context) error {
	tree, err := directory.Load(ctx, l.root)
	if err != nil {
		return err
	}
	l.tree.Store(tree)
	return nil
}

// Watch reloads the tree on filesystem changes until ctx is cancelled.
// onChange runs after every successful reload.
func (l *Library) Watch(ctx context.Context, onChange func()) error {
	logger := observability.FromContext(ctx).Named("site")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("site: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirs(watcher, l.root); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				// new directories need their own watch
				_ = addDirs(watcher, ev.Name)
			}
			if relevant(ev) {
				pending = time.After(l.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-pending:
			pending = nil
			if err := l.Reload(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("reload content tree", zap.Error(err))
				continue
			}
			logger.Info("content tree reloaded", zap.Int("pages", l.Tree().Len()))
			if onChange != nil {
				onChange()
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	// directory events have no extension
	ext := filepath.Ext(base)
	return ext == "" || ext == ".md"
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("site: watch %s: %w", p, err)
		}
		return nil
	})
}
