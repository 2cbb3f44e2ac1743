package web

import (
	"context"
	"net/http"

	"github.com/hallgate/adminbase/internal/admin/domain"
)

// RequestState is the resolved identity for one request. In bypass mode
// User is a synthetic admin with an empty ID; it has no stored row.
type RequestState struct {
	User          domain.User
	Authenticated bool
	BypassActive  bool
}

// SignedIn reports whether the request carries a usable principal,
// real or synthetic.
func (st RequestState) SignedIn() bool {
	return st.Authenticated || st.BypassActive
}

type stateKey struct{}

func withState(ctx context.Context, st RequestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// StateFrom returns the request state resolved by the session
// middleware, or the anonymous state when none was attached.
func StateFrom(ctx context.Context) RequestState {
	if st, ok := ctx.Value(stateKey{}).(RequestState); ok {
		return st
	}
	return RequestState{}
}

func bypassPrincipal() domain.User {
	return domain.User{
		Username:  "admin",
		Email:     "admin@localhost",
		FirstName: "Development",
		LastName:  "Admin",
		IsActive:  true,
		IsAdmin:   true,
		Avatar:    domain.DefaultAvatarURL,
	}
}

// withRequestState resolves the session cookie (or the bypass flag)
// into a RequestState before any handler runs.
func (s *Server) withRequestState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := RequestState{}
		switch {
		case s.BypassAuth:
			st = RequestState{User: bypassPrincipal(), BypassActive: true}
		default:
			if id, ok := s.Sessions.UserID(r); ok {
				user, err := s.Store.Users().GetByID(r.Context(), id)
				if err == nil && user.IsActive {
					st = RequestState{User: user, Authenticated: true}
				}
			}
		}
		ctx := withFlashBag(withState(r.Context(), st))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
