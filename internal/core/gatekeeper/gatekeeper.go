// Package gatekeeper maps a requested path and the session state to a
// render or redirect decision.
package gatekeeper

import (
	"net/url"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Gatekeeper decides navigations against a fixed route table.
type Gatekeeper struct {
	public    map[string]domain.Route
	protected map[string]domain.Route
}

// New indexes the two route groups. A path present in both is public.
func New(public, protected []domain.Route) *Gatekeeper {
	g := &Gatekeeper{
		public:    make(map[string]domain.Route, len(public)),
		protected: make(map[string]domain.Route, len(protected)),
	}
	for _, r := range public {
		g.public[r.Path] = r
	}
	for _, r := range protected {
		g.protected[r.Path] = r
	}
	return g
}

// Default uses PublicRoutes and ProtectedRoutes.
func Default() *Gatekeeper {
	return New(PublicRoutes, ProtectedRoutes)
}

// Decide is a pure function of its inputs; path must match exactly.
func (g *Gatekeeper) Decide(path string, authenticated bool) domain.Decision {
	if r, ok := g.public[path]; ok {
		return domain.Decision{Kind: domain.RenderPublic, Route: &r}
	}
	if r, ok := g.protected[path]; ok {
		if authenticated {
			return domain.Decision{Kind: domain.RenderProtected, Route: &r}
		}
		return domain.Decision{
			Kind:       domain.RedirectToLogin,
			Route:      &r,
			RedirectTo: path,
			Location:   LoginURL(path),
		}
	}
	nf := NotFoundRoute
	return domain.Decision{Kind: domain.RenderNotFound, Route: &nf}
}

// IsProtected reports whether path is a protected route.
func (g *Gatekeeper) IsProtected(path string) bool {
	_, ok := g.protected[path]
	return ok
}

// LoginURL builds the login location carrying redirectTo.
func LoginURL(redirectTo string) string {
	if redirectTo == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{RedirectParam: {redirectTo}}.Encode()
}

// SafeRedirect returns target when it names a protected route, else HomePath.
// Only known paths are accepted so login cannot be used as an open redirect.
func (g *Gatekeeper) SafeRedirect(target string) string {
	if g.IsProtected(target) {
		return target
	}
	return HomePath
}
