package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/menu"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/view"
)

type AuthHandler struct {
	authService ports.AuthService
	gate        *gatekeeper.Gatekeeper
	menus       *menu.StateStore
	rotate      ContextRotator
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, gate *gatekeeper.Gatekeeper, menus *menu.StateStore, rotate ContextRotator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, gate: gate, menus: menus, rotate: rotate, log: log}
}

// Login verifies credentials and stores the user in a freshly minted
// browser context. Form posts are redirected back to the page that
// required the login.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	asJSON := wantsJSON(c)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		if asJSON {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return h.renderLogin(c, http.StatusUnprocessableEntity, req.RedirectTo, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SessionMutationsTotal.WithLabelValues("login_failed").Inc()
			if !asJSON {
				return h.renderLogin(c, http.StatusUnauthorized, req.RedirectTo, "Invalid email or password.")
			}
		}
		return err
	}

	store, err := h.rotate(c)
	if err != nil {
		return err
	}
	if err := store.Save(c.Request().Context(), user); err != nil {
		return err
	}
	metrics.SessionMutationsTotal.WithLabelValues("login").Inc()

	target := h.gate.SafeRedirect(req.RedirectTo)
	if asJSON {
		return c.JSON(http.StatusOK, loginResponse{User: user, RedirectTo: target})
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout clears the session and menu state of the browser context and
// sends it to login.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := endSession(c.Request().Context(), currentStore(c), h.menus); err != nil {
		return err
	}
	metrics.SessionMutationsTotal.WithLabelValues("logout").Inc()

	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, gatekeeper.LoginPath)
}

// Register creates a back-office account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		return err
	}
	h.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, redirectTo, msg string) error {
	data := view.PageData{
		Title:      "Login",
		Path:       gatekeeper.LoginPath,
		RedirectTo: redirectTo,
		Error:      msg,
	}
	return view.Render(c, status, view.OtherLayout(data, view.LoginPage(data)))
}
