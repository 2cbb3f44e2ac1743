package web

import (
	"net/http"
	"net/url"
	"strings"
)

// Capability is the access level a route demands. Every route states
// its capability explicitly in the route table.
type Capability int

const (
	CapPublic Capability = iota
	CapAuthenticated
	CapAdmin
)

// guard enforces cap before h runs. Anonymous requests to protected
// routes bounce to the login form carrying the requested path;
// non-admin requests to admin routes bounce to the dashboard without
// revealing whether the resource exists.
func (s *Server) guard(cap Capability, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := StateFrom(r.Context())

		if cap >= CapAuthenticated && !st.SignedIn() {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}
		if cap >= CapAdmin && !st.User.IsAdmin {
			s.addFlash(w, r, flashError, "Access denied. Admin privileges required.")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}

		h(w, r)
	}
}

// validNextPath accepts only same-site relative targets for the
// post-login redirect: a leading "/", not scheme-relative "//", and no
// control characters.
func validNextPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	for _, c := range p {
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
