package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/menu"
	"github.com/99minutos/backoffice/internal/view"
)

type stubLoader struct {
	loadFn func(ctx context.Context, name string) (view.Page, error)
}

func (s *stubLoader) Load(ctx context.Context, name string) (view.Page, error) {
	return s.loadFn(ctx, name)
}

func newShell(storage *memStorage, pages PageLoader) *ShellHandler {
	if pages == nil {
		pages = view.NewLoader(view.DefaultFactories(), time.Second)
	}
	return NewShellHandler(gatekeeper.Default(), menu.DefaultTree, menu.NewStateStore(storage), pages, zerolog.Nop())
}

func TestShell_AnonymousProtectedRedirectsToLogin(t *testing.T) {
	tr := get(t, newMemStorage(), nil, "/dashboard")

	if err := newShell(newMemStorage(), nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", tr.rec.Code)
	}
	if loc := tr.rec.Header().Get(echo.HeaderLocation); loc != "/auth/login?redirectTo=%2Fdashboard" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestShell_ProtectedRendersAdminLayoutWithActiveMenu(t *testing.T) {
	storage := newMemStorage()
	tr := get(t, storage, editorUser(), "/events/create")

	if err := newShell(storage, nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", tr.rec.Code)
	}
	body := tr.rec.Body.String()
	if !strings.Contains(body, `href="/events/create" class="side-nav-link active"`) {
		t.Fatalf("active leaf not highlighted: %s", body)
	}
	if !strings.Contains(body, `data-active-url="/events/create"`) {
		t.Fatalf("active url missing")
	}
	if strings.Contains(body, `href="/users"`) {
		t.Fatalf("admin-only entries rendered for an editor")
	}

	st, err := menu.NewStateStore(storage).Load(context.Background(), "ctx-1", menu.DefaultTree.FilterForUser(editorUser()))
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.ActiveURL() != "/events/create" {
		t.Fatalf("menu state not persisted, active url %q", st.ActiveURL())
	}
}

func TestShell_AdminOnlyRouteForbiddenForEditor(t *testing.T) {
	storage := newMemStorage()
	tr := get(t, storage, editorUser(), "/users")

	if err := newShell(storage, nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", tr.rec.Code)
	}
}

func TestShell_AdminSeesAdminOnlyRoute(t *testing.T) {
	storage := newMemStorage()
	tr := get(t, storage, adminUser(), "/users")

	if err := newShell(storage, nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", tr.rec.Code)
	}
}

func TestShell_UnknownPathRendersNotFound(t *testing.T) {
	tr := get(t, newMemStorage(), editorUser(), "/nope")

	if err := newShell(newMemStorage(), nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", tr.rec.Code)
	}
	if !strings.Contains(tr.rec.Body.String(), "/nope does not exist") {
		t.Fatalf("not-found page missing path")
	}
}

func TestShell_PublicRouteRendersWithoutSession(t *testing.T) {
	tr := get(t, newMemStorage(), nil, "/auth/login?redirectTo=%2Fnews")

	if err := newShell(newMemStorage(), nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", tr.rec.Code)
	}
	if !strings.Contains(tr.rec.Body.String(), `name="redirectTo" value="/news"`) {
		t.Fatalf("redirectTo not carried into the form")
	}
}

func TestShell_LoginPageRedirectsAuthenticatedUser(t *testing.T) {
	tr := get(t, newMemStorage(), editorUser(), "/auth/login?redirectTo=%2Fnews")

	if err := newShell(newMemStorage(), nil).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := tr.rec.Header().Get(echo.HeaderLocation); tr.rec.Code != http.StatusFound || loc != "/news" {
		t.Fatalf("expected 302 to /news, got %d %q", tr.rec.Code, loc)
	}
}

func TestShell_LogoutPageClearsSession(t *testing.T) {
	storage := newMemStorage()
	shell := newShell(storage, nil)
	if err := shell.Serve(get(t, storage, editorUser(), "/jobs").c); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	tr := get(t, storage, editorUser(), "/auth/logout")

	if err := shell.Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", tr.rec.Code)
	}
	if tr.store.Authenticated() {
		t.Fatalf("session not cleared")
	}
	if _, err := storage.Get(context.Background(), "ctx-1", menu.StateKey); err == nil {
		t.Fatalf("menu state survived logout")
	}
}

func TestShell_SlowPageServesLoadingFallback(t *testing.T) {
	pages := &stubLoader{loadFn: func(context.Context, string) (view.Page, error) {
		return nil, view.ErrPageLoading
	}}
	tr := get(t, newMemStorage(), editorUser(), "/dashboard")

	if err := newShell(newMemStorage(), pages).Serve(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if tr.rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", tr.rec.Code)
	}
	if tr.rec.Header().Get("Retry-After") == "" || !strings.Contains(tr.rec.Body.String(), `http-equiv="refresh"`) {
		t.Fatalf("fallback page not rendered")
	}
}

func TestShell_ToggleSurvivesNavigation(t *testing.T) {
	storage := newMemStorage()
	shell := newShell(storage, nil)
	menus := NewMenuHandler(menu.DefaultTree, menu.NewStateStore(storage))

	if err := shell.Serve(get(t, storage, editorUser(), "/dashboard").c); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	toggle := postForm(t, storage, editorUser(), "/menu/toggle", "key=ui&return=%2Fdashboard")
	if err := menus.ToggleForm(toggle.c); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	tr := get(t, storage, editorUser(), "/dashboard")
	if err := shell.Serve(tr.c); err != nil {
		t.Fatalf("navigate again: %v", err)
	}
	body := tr.rec.Body.String()
	if !strings.Contains(body, `href="/ui/charts"`) {
		t.Fatalf("manually expanded group collapsed on navigation")
	}
	if !strings.Contains(body, `href="/dashboard" class="side-nav-link active"`) {
		t.Fatalf("active leaf lost after toggle")
	}
}

func TestShell_CollapseOfCurrentGroupSurvivesRedirectBack(t *testing.T) {
	storage := newMemStorage()
	shell := newShell(storage, nil)
	menus := NewMenuHandler(menu.DefaultTree, menu.NewStateStore(storage))

	first := get(t, storage, editorUser(), "/jobs")
	if err := shell.Serve(first.c); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !strings.Contains(first.rec.Body.String(), `href="/memberships"`) {
		t.Fatalf("operations should open on first visit to /jobs")
	}

	toggle := postForm(t, storage, editorUser(), "/menu/toggle", "key=operations&return=%2Fjobs")
	if err := menus.ToggleForm(toggle.c); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if loc := toggle.rec.Header().Get(echo.HeaderLocation); loc != "/jobs" {
		t.Fatalf("expected redirect back to /jobs, got %q", loc)
	}

	again := get(t, storage, editorUser(), "/jobs")
	if err := shell.Serve(again.c); err != nil {
		t.Fatalf("render after toggle: %v", err)
	}
	body := again.rec.Body.String()
	if strings.Contains(body, `href="/memberships"`) {
		t.Fatalf("operations reopened by the redirect-back render")
	}
	if !strings.Contains(body, `data-active-url="/jobs"`) {
		t.Fatalf("active url lost after collapse")
	}

	st, err := menu.NewStateStore(storage).Load(context.Background(), "ctx-1", menu.DefaultTree.FilterForUser(editorUser()))
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.IsExpanded("operations") {
		t.Fatalf("persisted state reopened operations")
	}
}
