package domain

// Layout selects the page chrome a route renders inside.
type Layout string

const (
	LayoutOther Layout = "other"
	LayoutAdmin Layout = "admin"
)

// Route is one static entry of the route table.
type Route struct {
	Path      string
	Name      string
	Page      string
	AdminOnly bool
}

// DecisionKind is the outcome of gating a navigation.
type DecisionKind int

const (
	RenderPublic DecisionKind = iota
	RenderProtected
	RedirectToLogin
	RenderNotFound
)

func (k DecisionKind) String() string {
	switch k {
	case RenderPublic:
		return "render_public"
	case RenderProtected:
		return "render_protected"
	case RedirectToLogin:
		return "redirect_to_login"
	default:
		return "render_not_found"
	}
}

// Decision is what the gatekeeper wants done for a requested path.
type Decision struct {
	Kind  DecisionKind
	Route *Route
	// RedirectTo is the originally requested path, set for RedirectToLogin.
	RedirectTo string
	// Location is the full login URL including the redirectTo query.
	Location string
}
