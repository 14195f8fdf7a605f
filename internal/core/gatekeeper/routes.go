package gatekeeper

import "github.com/99minutos/backoffice/internal/core/domain"

const (
	LoginPath     = "/auth/login"
	HomePath      = "/dashboard"
	NotFoundPage  = "not-found"
	RedirectParam = "redirectTo"
)

// PublicRoutes render in the "other" layout whatever the session state.
var PublicRoutes = []domain.Route{
	{Path: LoginPath, Name: "Login", Page: "login"},
	{Path: "/auth/register", Name: "Register", Page: "register"},
	{Path: "/auth/forgot-password", Name: "Forgot password", Page: "forgot-password"},
	{Path: "/auth/logout", Name: "Logged out", Page: "logout"},
	{Path: "/error-404", Name: "Not found", Page: NotFoundPage},
	{Path: "/error-500", Name: "Server error", Page: "server-error"},
}

// ProtectedRoutes need an authenticated session and render in the admin layout.
var ProtectedRoutes = []domain.Route{
	{Path: "/", Name: "Dashboard", Page: "dashboard"},
	{Path: HomePath, Name: "Dashboard", Page: "dashboard"},
	{Path: "/users", Name: "Users", Page: "users", AdminOnly: true},
	{Path: "/users/create", Name: "Invite user", Page: "users-create", AdminOnly: true},
	{Path: "/events", Name: "Events", Page: "events"},
	{Path: "/events/create", Name: "New event", Page: "events-create"},
	{Path: "/news", Name: "News", Page: "news"},
	{Path: "/surveys", Name: "Surveys", Page: "surveys"},
	{Path: "/jobs", Name: "Jobs", Page: "jobs"},
	{Path: "/memberships", Name: "Memberships", Page: "memberships"},
	{Path: "/invoices", Name: "Invoices", Page: "invoices"},
	{Path: "/reports", Name: "Reports", Page: "reports"},
	{Path: "/ui/accordions", Name: "Accordions", Page: "ui-accordions"},
	{Path: "/ui/modals", Name: "Modals", Page: "ui-modals"},
	{Path: "/ui/charts", Name: "Charts", Page: "ui-charts"},
	{Path: "/ui/tables", Name: "Tables", Page: "ui-tables"},
	{Path: "/ui/forms/wizard", Name: "Form wizard", Page: "ui-wizard"},
}

// NotFoundRoute is the public catch-all rendered when nothing matches.
var NotFoundRoute = domain.Route{Path: "*", Name: "Not found", Page: NotFoundPage}
