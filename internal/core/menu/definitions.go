package menu

import "github.com/99minutos/backoffice/internal/core/domain"

// Definitions is the back-office navigation.
var Definitions = []domain.MenuEntry{
	{Key: "navigation", Label: "Navigation", IsTitle: true},
	{Key: "dashboard", Label: "Dashboard", Icon: "ri-dashboard-3-line", URL: "/dashboard"},
	{
		Key:       "users",
		Label:     "Users",
		Icon:      "ri-group-line",
		AdminOnly: true,
		Children: []domain.MenuEntry{
			{Key: "users-list", Label: "All users", URL: "/users"},
			{Key: "users-create", Label: "Invite user", URL: "/users/create"},
		},
	},
	{
		Key:   "content",
		Label: "Content",
		Icon:  "ri-article-line",
		Children: []domain.MenuEntry{
			{Key: "events", Label: "Events", URL: "/events"},
			{Key: "events-create", Label: "New event", URL: "/events/create"},
			{Key: "news", Label: "News", URL: "/news"},
			{Key: "surveys", Label: "Surveys", URL: "/surveys"},
		},
	},
	{
		Key:   "operations",
		Label: "Operations",
		Icon:  "ri-briefcase-line",
		Children: []domain.MenuEntry{
			{Key: "jobs", Label: "Jobs", URL: "/jobs"},
			{Key: "memberships", Label: "Memberships", URL: "/memberships"},
			{Key: "invoices", Label: "Invoices", URL: "/invoices", Badge: &domain.Badge{Text: "new", Variant: "success"}},
			{Key: "reports", Label: "Reports", URL: "/reports", IsDisabled: true},
		},
	},
	{Key: "ui-kit", Label: "UI Kit", IsTitle: true},
	{
		Key:   "ui",
		Label: "Components",
		Icon:  "ri-stack-line",
		Children: []domain.MenuEntry{
			{
				Key:   "ui-base",
				Label: "Base UI",
				Children: []domain.MenuEntry{
					{Key: "ui-accordions", Label: "Accordions", URL: "/ui/accordions"},
					{Key: "ui-modals", Label: "Modals", URL: "/ui/modals"},
				},
			},
			{Key: "ui-charts", Label: "Charts", URL: "/ui/charts"},
			{Key: "ui-tables", Label: "Tables", URL: "/ui/tables"},
			{Key: "ui-wizard", Label: "Form wizard", URL: "/ui/forms/wizard"},
		},
	},
	{Key: "docs", Label: "Documentation", Icon: "ri-book-line", URL: "https://docs.99minutos.com/backoffice", Target: "_blank"},
}

// DefaultTree is the validated tree built from Definitions.
var DefaultTree = MustTree(Definitions)
