// Package view renders the back-office HTML with gomponents: the two page
// layouts, the side menu and the page catalog.
package view

import (
	"net/http"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/99minutos/backoffice/internal/core/domain"
)

const appName = "99minutos Backoffice"

// PageData is what every page and layout can read.
type PageData struct {
	Title      string
	Path       string
	User       *domain.User
	Route      domain.Route
	RedirectTo string
	Error      string
}

// Render writes node as an HTML response.
func Render(c echo.Context, status int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}

func document(title string, head []g.Node, body ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(title+" | "+appName)),
				html.Link(html.Rel("stylesheet"), html.Href("/assets/css/app.min.css")),
				g.Group(head),
			),
			html.Body(body...),
		),
	)
}

// AdminLayout wraps protected pages: top bar, side menu and content.
func AdminLayout(data PageData, sideMenu g.Node, content g.Node) g.Node {
	return document(data.Title, nil,
		html.Div(
			html.Class("wrapper"),
			topbar(data.User),
			html.Aside(
				html.Class("leftside-menu"),
				html.Div(html.Class("logo"), html.A(html.Href("/dashboard"), g.Text(appName))),
				html.Div(html.Class("h-100"), html.ID("leftside-menu-container"), sideMenu),
			),
			html.Main(
				html.Class("content-page"),
				html.Div(
					html.Class("content"),
					html.Div(html.Class("page-title-box"), html.H4(html.Class("page-title"), g.Text(data.Title))),
					content,
				),
			),
		),
		html.Script(g.Raw(scrollScript)),
	)
}

// OtherLayout wraps public pages in a centred card.
func OtherLayout(data PageData, content g.Node) g.Node {
	return document(data.Title, nil,
		html.Div(
			html.Class("account-pages"),
			html.Div(
				html.Class("card auth-card"),
				html.Div(html.Class("card-header"), html.H4(g.Text(appName))),
				html.Div(html.Class("card-body"), content),
			),
		),
	)
}

func topbar(user *domain.User) g.Node {
	name := ""
	if user != nil {
		name = user.Username
	}
	return html.Header(
		html.Class("navbar-custom"),
		html.Span(html.Class("account-user-name"), g.Text(name)),
		g.If(user.IsAdmin(), html.Span(html.Class("badge bg-primary"), g.Text("admin"))),
		html.Form(
			html.Method(http.MethodPost),
			html.Action("/auth/logout"),
			html.Button(html.Type("submit"), html.Class("btn btn-link"), g.Text("Log out")),
		),
	)
}
