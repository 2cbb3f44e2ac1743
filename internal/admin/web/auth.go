package web

import (
	"errors"
	"net/http"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/service"
	"github.com/hallgate/adminbase/pkg/slogx"
)

type loginView struct {
	Username string
	Next     string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if StateFrom(r.Context()).SignedIn() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	next := r.URL.Query().Get("next")
	if !validNextPath(next) {
		next = ""
	}
	s.render(w, r, http.StatusOK, "login.html", "Login", loginView{Next: next})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.Auth.Login(r.Context(), username, password, requestMeta(r))
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		inlineFlash(r, flashError, "Invalid username or password.")
		s.render(w, r, http.StatusOK, "login.html", "Login", loginView{Username: username})
		return
	case errors.Is(err, domain.ErrAccountDisabled):
		inlineFlash(r, flashError, "Your account has been disabled. Please contact an administrator.")
		s.render(w, r, http.StatusOK, "login.html", "Login", loginView{Username: username})
		return
	case err != nil:
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		inlineFlash(r, flashError, "Something went wrong. Please try again.")
		s.render(w, r, http.StatusOK, "login.html", "Login", loginView{Username: username})
		return
	}

	if err := s.Sessions.Issue(w, user.ID); err != nil {
		slogx.FromContext(r.Context()).Error("session issue failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	target := "/dashboard"
	if next := r.PostFormValue("next"); validNextPath(next) {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	st := StateFrom(r.Context())
	if st.Authenticated {
		if err := s.Auth.Logout(r.Context(), st.User, requestMeta(r)); err != nil {
			slogx.FromContext(r.Context()).Error("logout activity failed", "error", err)
		}
	}

	s.Sessions.Clear(w)
	s.addFlash(w, r, flashInfo, "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if StateFrom(r.Context()).SignedIn() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "register.html", "Register", service.RegisterInput{})
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	in := service.RegisterInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	_, err := s.Auth.Register(r.Context(), in, requestMeta(r))
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationClosed) {
			s.addFlash(w, r, flashError, "Registration is currently disabled.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if reason, ok := domain.IsValidation(err); ok {
			inlineFlash(r, flashError, reason)
		} else {
			slogx.FromContext(r.Context()).Error("registration failed", "error", err)
			inlineFlash(r, flashError, "Something went wrong. Please try again.")
		}
		in.Password, in.ConfirmPassword = "", ""
		s.render(w, r, http.StatusOK, "register.html", "Register", in)
		return
	}

	s.addFlash(w, r, flashSuccess, "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
