package view

import (
	"net/http"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/menu"
)

// ToggleAction is where group headers post to open or close a group.
const ToggleAction = "/menu/toggle"

// SideMenu renders tree with the highlight and expansion held by state.
// The nav carries the active URL and the scroll plan read by scrollScript.
func SideMenu(tree *menu.Tree, state *menu.State, returnPath string) g.Node {
	plan := menu.InitialScrollPlan()
	return html.Nav(
		html.ID("side-menu"),
		html.Class("side-nav"),
		g.Attr("data-active-url", state.ActiveURL()),
		g.Attr("data-scroll-ms", strconv.FormatInt(plan.Duration.Milliseconds(), 10)),
		g.Attr("data-scroll-frame-ms", strconv.FormatInt(plan.Frame.Milliseconds(), 10)),
		g.Attr("data-scroll-ratio", strconv.FormatFloat(menu.CenterRatio, 'f', -1, 64)),
		g.Attr("data-scroll-curve", plan.EncodeCurve()),
		html.Ul(html.Class("side-nav-list"), menuEntries(tree.Entries(), state, returnPath)),
	)
}

func menuEntries(entries []domain.MenuEntry, state *menu.State, returnPath string) g.Node {
	nodes := make([]g.Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, menuEntry(e, state, returnPath))
	}
	return g.Group(nodes)
}

func menuEntry(e domain.MenuEntry, state *menu.State, returnPath string) g.Node {
	switch e.Kind() {
	case domain.KindTitle:
		return html.Li(html.Class("side-nav-title"), g.Text(e.Label))
	case domain.KindGroup:
		return menuGroup(e, state, returnPath)
	default:
		return menuLeaf(e, state)
	}
}

func menuGroup(e domain.MenuEntry, state *menu.State, returnPath string) g.Node {
	expanded := state.IsExpanded(e.Key)
	return html.Li(
		html.Class(itemClass("side-nav-item", state.IsActive(e.Key), "menuitem-active")),
		g.Attr("data-key", e.Key),
		html.Form(
			html.Method(http.MethodPost),
			html.Action(ToggleAction),
			html.Input(html.Type("hidden"), html.Name("key"), html.Value(e.Key)),
			html.Input(html.Type("hidden"), html.Name("return"), html.Value(returnPath)),
			html.Button(
				html.Type("submit"),
				html.Class("side-nav-link"),
				g.Attr("aria-expanded", strconv.FormatBool(expanded)),
				icon(e.Icon),
				html.Span(g.Text(e.Label)),
				badge(e.Badge),
			),
		),
		g.If(expanded, html.Ul(html.Class("side-nav-second-level"), menuEntries(e.Children, state, returnPath))),
	)
}

func menuLeaf(e domain.MenuEntry, state *menu.State) g.Node {
	active := state.IsActive(e.Key)
	if e.IsDisabled {
		return html.Li(
			html.Class("side-nav-item"),
			g.Attr("data-key", e.Key),
			html.Span(
				html.Class("side-nav-link disabled"),
				g.Attr("aria-disabled", "true"),
				icon(e.Icon),
				html.Span(g.Text(e.Label)),
				badge(e.Badge),
			),
		)
	}
	return html.Li(
		html.Class(itemClass("side-nav-item", active, "menuitem-active")),
		g.Attr("data-key", e.Key),
		html.A(
			html.Href(e.URL),
			html.Class(itemClass("side-nav-link", active, "active")),
			g.If(e.Target != "", html.Target(e.Target)),
			g.If(e.Target == "_blank", html.Rel("noopener noreferrer")),
			icon(e.Icon),
			html.Span(g.Text(e.Label)),
			badge(e.Badge),
		),
	)
}

func icon(name string) g.Node {
	if name == "" {
		return nil
	}
	return html.I(html.Class(name))
}

func badge(b *domain.Badge) g.Node {
	if b == nil {
		return nil
	}
	variant := b.Variant
	if variant == "" {
		variant = "secondary"
	}
	return html.Span(html.Class("badge bg-"+variant+" float-end"), g.Text(b.Text))
}

func itemClass(base string, on bool, extra string) string {
	if on {
		return base + " " + extra
	}
	return base
}
