package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/gatekeeper"
	"github.com/99minutos/backoffice/internal/core/menu"
)

// MenuHandler exposes the menu of the current browser context.
type MenuHandler struct {
	tree  *menu.Tree
	menus *menu.StateStore
}

func NewMenuHandler(tree *menu.Tree, menus *menu.StateStore) *MenuHandler {
	return &MenuHandler{tree: tree, menus: menus}
}

// Get returns the menu filtered for the session user. With ?path= the
// response shows the activation that path would produce; nothing is saved.
//
// @Summary      Current menu
// @Tags         menu
// @Produce      json
// @Param        path  query     string  false  "Path to activate"
// @Success      200   {object}  menuResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/menu [get]
func (h *MenuHandler) Get(c echo.Context) error {
	tree, state, err := h.load(c)
	if err != nil {
		return err
	}
	if path := c.QueryParam("path"); path != "" {
		state.Navigate(path)
	}
	return c.JSON(http.StatusOK, toMenuResponse(tree, state))
}

// Toggle opens or closes a group.
//
// @Summary      Toggle a menu group
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body      toggleRequest  true  "Group key"
// @Success      200   {object}  menuResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/menu/toggle [post]
func (h *MenuHandler) Toggle(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tree, state, err := h.toggle(c, req.Key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuResponse(tree, state))
}

// ToggleForm is Toggle for the group buttons of the rendered side menu; it
// redirects back to the page the button was on.
func (h *MenuHandler) ToggleForm(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if _, _, err := h.toggle(c, req.Key); err != nil {
		return err
	}

	target := req.Return
	if !localPath(target) {
		target = gatekeeper.HomePath
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func (h *MenuHandler) toggle(c echo.Context, key string) (*menu.Tree, *menu.State, error) {
	tree, state, err := h.load(c)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Toggle(key); err != nil {
		return nil, nil, err
	}
	if err := h.menus.Save(c.Request().Context(), currentStore(c).ContextID(), state); err != nil {
		return nil, nil, err
	}
	return tree, state, nil
}

func (h *MenuHandler) load(c echo.Context) (*menu.Tree, *menu.State, error) {
	store := currentStore(c)
	tree := h.tree.FilterForUser(store.User())
	state, err := h.menus.Load(c.Request().Context(), store.ContextID(), tree)
	if err != nil {
		return nil, nil, err
	}
	return tree, state, nil
}
