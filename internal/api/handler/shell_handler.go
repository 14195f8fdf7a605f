package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/menu"
	"github.com/99minutos/backoffice/internal/view"
)

// PageLoader resolves page names from the route table to renderable pages.
type PageLoader interface {
	Load(ctx context.Context, name string) (view.Page, error)
}

// ShellHandler serves every page navigation: it asks the gatekeeper what
// to do with the path, keeps the menu state of the browser context in step
// and renders the page inside its layout.
type ShellHandler struct {
	gate  *gatekeeper.Gatekeeper
	tree  *menu.Tree
	menus *menu.StateStore
	pages PageLoader
	log   zerolog.Logger
}

func NewShellHandler(gate *gatekeeper.Gatekeeper, tree *menu.Tree, menus *menu.StateStore, pages PageLoader, log zerolog.Logger) *ShellHandler {
	return &ShellHandler{gate: gate, tree: tree, menus: menus, pages: pages, log: log}
}

// Serve handles GET /*.
func (h *ShellHandler) Serve(c echo.Context) error {
	ctx := c.Request().Context()
	path := c.Request().URL.Path
	store := currentStore(c)
	user := store.User()

	dec := h.gate.Decide(path, user != nil)
	metrics.NavigationsTotal.WithLabelValues(dec.Kind.String()).Inc()

	switch dec.Kind {
	case domain.RedirectToLogin:
		return c.Redirect(http.StatusFound, dec.Location)

	case domain.RenderNotFound:
		return h.renderPublic(c, http.StatusNotFound, *dec.Route, view.PageData{Path: path, User: user})

	case domain.RenderPublic:
		redirectTo := c.QueryParam(gatekeeper.RedirectParam)
		switch {
		case path == gatekeeper.LoginPath && user != nil:
			return c.Redirect(http.StatusFound, h.gate.SafeRedirect(redirectTo))
		case dec.Route.Page == "logout" && user != nil:
			if err := endSession(ctx, store, h.menus); err != nil {
				return err
			}
			metrics.SessionMutationsTotal.WithLabelValues("logout").Inc()
			user = nil
		}
		return h.renderPublic(c, http.StatusOK, *dec.Route, view.PageData{Path: path, User: user, RedirectTo: redirectTo})

	default:
		return h.renderProtected(c, *dec.Route, path)
	}
}

func (h *ShellHandler) renderPublic(c echo.Context, status int, route domain.Route, data view.PageData) error {
	data.Title = route.Name
	data.Route = route
	page, err := h.pages.Load(c.Request().Context(), route.Page)
	if errors.Is(err, view.ErrPageLoading) {
		return h.renderLoading(c, data)
	}
	if err != nil {
		return err
	}
	return view.Render(c, status, view.OtherLayout(data, page(data)))
}

func (h *ShellHandler) renderProtected(c echo.Context, route domain.Route, path string) error {
	ctx := c.Request().Context()
	store := currentStore(c)
	user := store.User()

	tree := h.tree.FilterForUser(user)
	state, err := h.menus.Load(ctx, store.ContextID(), tree)
	if err != nil {
		return err
	}
	if state.Navigate(path) {
		metrics.MenuActivationsTotal.WithLabelValues("matched").Inc()
	} else {
		metrics.MenuActivationsTotal.WithLabelValues("unmatched").Inc()
	}
	if err := h.menus.Save(ctx, store.ContextID(), state); err != nil {
		h.log.Warn().Err(err).Str("context_id", store.ContextID()).Msg("menu state not saved")
	}

	data := view.PageData{Title: route.Name, Path: path, User: user, Route: route}
	status := http.StatusOK
	pageName := route.Page
	if route.AdminOnly && !user.IsAdmin() {
		status = http.StatusForbidden
		pageName = view.PageForbidden
	}

	page, err := h.pages.Load(ctx, pageName)
	if errors.Is(err, view.ErrPageLoading) {
		return h.renderLoading(c, data)
	}
	if err != nil {
		return err
	}
	return view.Render(c, status, view.AdminLayout(data, view.SideMenu(tree, state, path), page(data)))
}

func (h *ShellHandler) renderLoading(c echo.Context, data view.PageData) error {
	metrics.PageLoadFallbacksTotal.Inc()
	c.Response().Header().Set("Retry-After", "1")
	return view.Render(c, http.StatusServiceUnavailable, view.LoadingPage(data))
}
