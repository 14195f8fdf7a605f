package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/menu"
	"github.com/99minutos/backoffice/internal/core/session"
)

// ContextRotator moves the request onto a fresh browser context and returns
// the store for it.
type ContextRotator func(echo.Context) (*session.Store, error)

// currentStore returns the session store attached by the Session middleware.
func currentStore(c echo.Context) *session.Store {
	return session.FromContext(c.Request().Context())
}

// wantsJSON reports whether the client posted JSON or asked for it.
func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// localPath accepts only same-origin absolute paths.
func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}

// endSession logs the browser context out and forgets its menu state, so
// the next user of the browser starts from a fresh menu.
func endSession(ctx context.Context, store *session.Store, menus *menu.StateStore) error {
	if err := menus.Clear(ctx, store.ContextID()); err != nil {
		return err
	}
	return store.Clear(ctx)
}
