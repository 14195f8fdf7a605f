package view

import (
	"net/http"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/99minutos/backoffice/internal/core/gatekeeper"
)

// Pages that the shell renders outside the route table.
const (
	PageForbidden = "forbidden"
	PageLoading   = "loading"
)

// DefaultFactories registers every page named by the route table.
func DefaultFactories() map[string]Factory {
	static := func(p Page) Factory {
		return func() (Page, error) { return p, nil }
	}
	return map[string]Factory{
		"login":                 static(LoginPage),
		"register":              static(RegisterPage),
		"forgot-password":       static(ForgotPasswordPage),
		"logout":                static(LoggedOutPage),
		gatekeeper.NotFoundPage: static(NotFoundPage),
		"server-error":          static(ServerErrorPage),
		PageForbidden:           static(ForbiddenPage),

		"dashboard":    static(dashboardPage),
		"users":        static(listPage([]string{"Name", "Email", "Role"}, "/users/create")),
		"users-create": static(formPage("Invite", "Name", "Email", "Role")),
		"events":       static(listPage([]string{"Title", "Date", "Venue"}, "/events/create")),
		"events-create": static(formPage("Create event",
			"Title", "Date", "Venue", "Description")),
		"news":        static(listPage([]string{"Headline", "Published", "Author"}, "")),
		"surveys":     static(listPage([]string{"Survey", "Responses", "Status"}, "")),
		"jobs":        static(listPage([]string{"Position", "Location", "Applicants"}, "")),
		"memberships": static(listPage([]string{"Member", "Plan", "Renewal"}, "")),
		"invoices":    static(listPage([]string{"Number", "Customer", "Amount", "Status"}, "")),
		"reports":     static(listPage([]string{"Report", "Period"}, "")),

		"ui-accordions": static(accordionPage),
		"ui-modals":     static(modalPage),
		"ui-charts":     static(chartsPage),
		"ui-tables":     static(listPage([]string{"#", "First", "Last", "Handle"}, "")),
		"ui-wizard":     static(wizardPage),
	}
}

// LoginPage posts credentials back to the login route, carrying redirectTo.
func LoginPage(data PageData) g.Node {
	return html.Form(
		html.Method(http.MethodPost),
		html.Action(gatekeeper.LoginPath),
		g.If(data.Error != "", html.Div(html.Class("alert alert-danger"), g.Attr("role", "alert"), g.Text(data.Error))),
		html.Input(html.Type("hidden"), html.Name(gatekeeper.RedirectParam), html.Value(data.RedirectTo)),
		field("email", "Email address", "email"),
		field("password", "Password", "password"),
		html.Button(html.Type("submit"), html.Class("btn btn-primary w-100"), g.Text("Log in")),
		html.P(html.Class("mt-3"), html.A(html.Href("/auth/forgot-password"), g.Text("Forgot your password?"))),
	)
}

func RegisterPage(PageData) g.Node {
	return html.P(g.Text("Accounts are created by an administrator. Ask an admin for an invitation."))
}

func ForgotPasswordPage(PageData) g.Node {
	return html.P(g.Text("Contact an administrator to have your password reset."))
}

func LoggedOutPage(PageData) g.Node {
	return g.Group([]g.Node{
		html.P(g.Text("You have been logged out.")),
		html.A(html.Href(gatekeeper.LoginPath), html.Class("btn btn-primary"), g.Text("Log in again")),
	})
}

func NotFoundPage(data PageData) g.Node {
	return errorBody("404", "The page "+data.Path+" does not exist.")
}

func ServerErrorPage(PageData) g.Node {
	return errorBody("500", "Something went wrong on our side.")
}

func ForbiddenPage(PageData) g.Node {
	return errorBody("403", "Your account cannot open this page.")
}

// LoadingPage reloads itself until the requested page is ready.
func LoadingPage(data PageData) g.Node {
	return document("Loading",
		[]g.Node{html.Meta(g.Attr("http-equiv", "refresh"), g.Attr("content", "1"))},
		html.Div(
			html.Class("page-loader"),
			html.Div(html.Class("spinner-border"), g.Attr("role", "status")),
			html.P(g.Text("Loading "+data.Title+"...")),
		),
	)
}

func errorBody(code, msg string) g.Node {
	return html.Div(
		html.Class("text-center"),
		html.H1(html.Class("text-error"), g.Text(code)),
		html.P(g.Text(msg)),
		html.A(html.Href(gatekeeper.HomePath), html.Class("btn btn-info"), g.Text("Back to home")),
	)
}

func field(name, label, typ string) g.Node {
	return html.Div(
		html.Class("mb-3"),
		html.Label(html.For(name), html.Class("form-label"), g.Text(label)),
		html.Input(html.ID(name), html.Name(name), html.Type(typ), html.Class("form-control"), html.Required()),
	)
}

func dashboardPage(data PageData) g.Node {
	name := ""
	if data.User != nil {
		name = data.User.Username
	}
	return html.Div(
		html.Class("row"),
		html.Div(html.Class("col-12"), html.P(g.Textf("Welcome back, %s.", name))),
		statCard("Events", "/events"),
		statCard("Jobs", "/jobs"),
		statCard("Invoices", "/invoices"),
	)
}

func statCard(label, href string) g.Node {
	return html.Div(
		html.Class("col-md-4"),
		html.Div(html.Class("card"), html.Div(html.Class("card-body"),
			html.H5(html.Class("card-title"), g.Text(label)),
			html.A(html.Href(href), g.Text("Open")),
		)),
	)
}

func listPage(columns []string, createURL string) Page {
	return func(data PageData) g.Node {
		head := make([]g.Node, 0, len(columns))
		for _, c := range columns {
			head = append(head, html.Th(g.Text(c)))
		}
		return html.Div(
			html.Class("card"),
			html.Div(
				html.Class("card-body"),
				g.If(createURL != "", html.A(html.Href(createURL), html.Class("btn btn-primary mb-2"), g.Text("Add new"))),
				html.Table(
					html.Class("table table-centered"),
					html.THead(html.Tr(g.Group(head))),
					html.TBody(html.Tr(html.Td(
						g.Attr("colspan", itoa(len(columns))),
						g.Text("No "+data.Title+" yet."),
					))),
				),
			),
		)
	}
}

func formPage(submit string, fields ...string) Page {
	return func(PageData) g.Node {
		nodes := make([]g.Node, 0, len(fields)+1)
		for _, f := range fields {
			nodes = append(nodes, field(slug(f), f, "text"))
		}
		nodes = append(nodes, html.Button(html.Type("submit"), html.Class("btn btn-primary"), g.Text(submit)))
		return html.Div(html.Class("card"), html.Div(html.Class("card-body"), html.Form(nodes...)))
	}
}

func accordionPage(PageData) g.Node {
	items := []string{"Shipping", "Billing", "Returns"}
	nodes := make([]g.Node, 0, len(items))
	for i, it := range items {
		nodes = append(nodes, html.Details(
			g.If(i == 0, g.Attr("open")),
			html.Summary(g.Text(it)),
			html.P(g.Text(it+" section content.")),
		))
	}
	return html.Div(html.Class("accordion"), g.Group(nodes))
}

func modalPage(PageData) g.Node {
	return html.Div(
		html.Button(html.Type("button"), html.Class("btn btn-primary"),
			g.Attr("onclick", "document.getElementById('demo-modal').showModal()"),
			g.Text("Open modal")),
		g.El("dialog", html.ID("demo-modal"),
			html.P(g.Text("Modal body.")),
			html.Form(html.Method("dialog"), html.Button(html.Class("btn btn-light"), g.Text("Close"))),
		),
	)
}

func chartsPage(PageData) g.Node {
	return html.Div(
		html.Class("row"),
		html.Div(html.Class("col-md-6"), html.Div(html.ID("line-chart"), g.Attr("data-chart", "line"))),
		html.Div(html.Class("col-md-6"), html.Div(html.ID("bar-chart"), g.Attr("data-chart", "bar"))),
	)
}

func wizardPage(PageData) g.Node {
	steps := []string{"Account", "Profile", "Finish"}
	nodes := make([]g.Node, 0, len(steps))
	for i, s := range steps {
		nodes = append(nodes, html.Li(html.Class("nav-item"), g.Textf("%d. %s", i+1, s)))
	}
	return html.Div(
		html.Class("card"),
		html.Div(html.Class("card-body"),
			html.Ul(html.Class("nav nav-pills"), g.Group(nodes)),
			formPage("Next", "Username", "Email")(PageData{}),
		),
	)
}

// ErrorDocument is the standalone page the error handler renders for
// browser requests.
func ErrorDocument(code int, msg string) g.Node {
	data := PageData{Title: http.StatusText(code)}
	return OtherLayout(data, errorBody(itoa(code), msg))
}
