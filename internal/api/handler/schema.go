package handler

import (
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// ── Requests ──────────────────────────────────────────────────────────────────

type loginRequest struct {
	Email      string `json:"email"      form:"email"      validate:"required,email"`
	Password   string `json:"password"   form:"password"   validate:"required"`
	RedirectTo string `json:"redirectTo" form:"redirectTo"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,oneof=admin editor"`
}

type toggleRequest struct {
	Key string `json:"key" form:"key" validate:"required"`
	// Return is where form posts send the browser back to.
	Return string `json:"-" form:"return"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

type errorResponse struct {
	Error string `json:"error"`
}

type loginResponse struct {
	User       *domain.User `json:"user"`
	RedirectTo string       `json:"redirectTo"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type sessionResponse struct {
	ContextID string       `json:"context_id"`
	User      *domain.User `json:"user"`
}

type menuResponse struct {
	Entries   []domain.MenuEntry `json:"entries"`
	Active    []string           `json:"active"`
	Expanded  []string           `json:"expanded"`
	Leaf      string             `json:"leaf,omitempty"`
	ActiveURL string             `json:"active_url,omitempty"`
}

type auditEventResponse struct {
	ContextID string    `json:"context_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Kind      string    `json:"kind"`
	At        time.Time `json:"at"`
}

type auditResponse struct {
	Events []auditEventResponse `json:"events"`
}
