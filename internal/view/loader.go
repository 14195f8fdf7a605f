package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	g "maragu.dev/gomponents"
)

var (
	// ErrPageLoading means the page is still being built; a fallback
	// should be shown and the request retried.
	ErrPageLoading = errors.New("page is loading")
	ErrUnknownPage = errors.New("unknown page")
)

// Page renders the content area of a route.
type Page func(PageData) g.Node

// Factory builds a page on first use.
type Factory func() (Page, error)

// Loader constructs pages lazily and caches them. Concurrent first loads
// of the same page share one construction.
type Loader struct {
	factories map[string]Factory
	timeout   time.Duration
	group     singleflight.Group

	mu    sync.RWMutex
	pages map[string]Page
}

func NewLoader(factories map[string]Factory, timeout time.Duration) *Loader {
	return &Loader{
		factories: factories,
		timeout:   timeout,
		pages:     make(map[string]Page, len(factories)),
	}
}

// Load returns the named page. When construction takes longer than the
// loader timeout it returns ErrPageLoading; construction keeps going in
// the background and later calls get the finished page.
func (l *Loader) Load(ctx context.Context, name string) (Page, error) {
	if p, ok := l.cached(name); ok {
		return p, nil
	}
	factory, ok := l.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}

	ch := l.group.DoChan(name, func() (any, error) {
		if p, ok := l.cached(name); ok {
			return p, nil
		}
		p, err := factory()
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.pages[name] = p
		l.mu.Unlock()
		return p, nil
	})

	var timeout <-chan time.Time
	if l.timeout > 0 {
		timer := time.NewTimer(l.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("building page %s: %w", name, res.Err)
		}
		return res.Val.(Page), nil
	case <-timeout:
		return nil, ErrPageLoading
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Check returns a readiness check that builds the named pages. A page that
// is still loading counts as not ready.
func (l *Loader) Check(names ...string) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, name := range names {
			if _, err := l.Load(ctx, name); err != nil {
				return fmt.Errorf("page %s: %w", name, err)
			}
		}
		return nil
	}
}

// Has reports whether a factory is registered for name.
func (l *Loader) Has(name string) bool {
	_, ok := l.factories[name]
	return ok
}

func (l *Loader) cached(name string) (Page, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.pages[name]
	return p, ok
}
