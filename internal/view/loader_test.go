package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	g "maragu.dev/gomponents"
)

func textPage(s string) Page {
	return func(PageData) g.Node { return g.Text(s) }
}

func TestLoader_BuildsOnceAndCaches(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(map[string]Factory{
		"home": func() (Page, error) {
			calls.Add(1)
			return textPage("home"), nil
		},
	}, time.Second)

	for i := 0; i < 3; i++ {
		if _, err := l.Load(context.Background(), "home"); err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 construction, got %d", calls.Load())
	}
}

func TestLoader_ConcurrentFirstLoadsShareConstruction(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoader(map[string]Factory{
		"slow": func() (Page, error) {
			calls.Add(1)
			<-release
			return textPage("slow"), nil
		},
	}, 5*time.Second)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Load(context.Background(), "slow")
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 construction, got %d", calls.Load())
	}
}

func TestLoader_TimeoutReturnsLoadingThenPage(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(map[string]Factory{
		"slow": func() (Page, error) {
			<-release
			return textPage("slow"), nil
		},
	}, 10*time.Millisecond)

	_, err := l.Load(context.Background(), "slow")
	if !errors.Is(err, ErrPageLoading) {
		t.Fatalf("expected ErrPageLoading, got %v", err)
	}

	close(release)
	deadline := time.Now().Add(time.Second)
	for {
		p, err := l.Load(context.Background(), "slow")
		if err == nil {
			if p == nil {
				t.Fatal("expected page")
			}
			return
		}
		if !errors.Is(err, ErrPageLoading) || time.Now().After(deadline) {
			t.Fatalf("page never became ready: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoader_UnknownPage(t *testing.T) {
	l := NewLoader(map[string]Factory{}, time.Second)
	if _, err := l.Load(context.Background(), "nope"); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestLoader_FactoryErrorIsNotCached(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	l := NewLoader(map[string]Factory{
		"flaky": func() (Page, error) {
			if calls.Add(1) == 1 {
				return nil, boom
			}
			return textPage("ok"), nil
		},
	}, time.Second)

	if _, err := l.Load(context.Background(), "flaky"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := l.Load(context.Background(), "flaky"); err != nil {
		t.Fatalf("second load: %v", err)
	}
}

func TestLoader_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewLoader(map[string]Factory{
		"slow": func() (Page, error) {
			<-release
			return textPage("slow"), nil
		},
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, "slow"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultFactories_CoverRouteTable(t *testing.T) {
	l := NewLoader(DefaultFactories(), time.Second)
	for _, name := range []string{"login", "dashboard", "users", "ui-wizard", "not-found", PageForbidden} {
		if !l.Has(name) {
			t.Fatalf("missing page %q", name)
		}
	}
}

func TestLoader_CheckBuildsNamedPages(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(map[string]Factory{
		"login": func() (Page, error) {
			calls.Add(1)
			return textPage("login"), nil
		},
	}, time.Second)

	if err := l.Check("login")(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := l.Load(context.Background(), "login"); err != nil || calls.Load() != 1 {
		t.Fatalf("check should warm the cache, calls=%d err=%v", calls.Load(), err)
	}
}

func TestLoader_CheckFailsWhileLoadingOrUnknown(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	l := NewLoader(map[string]Factory{
		"slow": func() (Page, error) {
			<-release
			return textPage("slow"), nil
		},
	}, 5*time.Millisecond)

	if err := l.Check("slow")(context.Background()); !errors.Is(err, ErrPageLoading) {
		t.Fatalf("expected ErrPageLoading, got %v", err)
	}
	if err := l.Check("missing")(context.Background()); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}
