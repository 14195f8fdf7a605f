package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current returns the user of the browser context.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	store := currentStore(c)
	user := store.User()
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, sessionResponse{ContextID: store.ContextID(), User: user})
}
