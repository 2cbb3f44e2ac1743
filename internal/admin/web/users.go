package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/service"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/slogx"
)

type usersListView struct {
	Page     service.UserPage
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := s.Users.List(r.Context(), page)
	if err != nil {
		slogx.FromContext(r.Context()).Error("user list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, "users.html", "User Management", usersListView{
		Page:     result,
		HasPrev:  result.Page > 1,
		HasNext:  result.Page < result.TotalPages,
		PrevPage: result.Page - 1,
		NextPage: result.Page + 1,
	})
}

type userFormView struct {
	Action  string
	Editing bool
	Input   service.UserInput
}

func userInputFromForm(r *http.Request) service.UserInput {
	return service.UserInput{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Password:  r.PostFormValue("password"),
		IsAdmin:   r.PostFormValue("is_admin") != "",
		IsActive:  r.PostFormValue("is_active") != "",
	}
}

func (s *Server) handleUserCreateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "user_form.html", "Create User", userFormView{
		Action: "/users/create",
		Input:  service.UserInput{IsActive: true},
	})
}

func (s *Server) handleUserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := userInputFromForm(r)

	user, err := s.Users.Create(r.Context(), in)
	if err != nil {
		if reason, ok := domain.IsValidation(err); ok {
			inlineFlash(r, flashError, reason)
		} else {
			slogx.FromContext(r.Context()).Error("user create failed", "error", err)
			inlineFlash(r, flashError, "Something went wrong. Please try again.")
		}
		in.Password = ""
		s.render(w, r, http.StatusOK, "user_form.html", "Create User", userFormView{
			Action: "/users/create",
			Input:  in,
		})
		return
	}

	s.addFlash(w, r, flashSuccess, fmt.Sprintf("User %s created successfully!", user.Username))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserEditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := s.Users.Get(r.Context(), id)
	if err != nil {
		s.userLookupFailed(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "user_form.html", "Edit User", userFormView{
		Action:  "/users/" + user.ID + "/edit",
		Editing: true,
		Input: service.UserInput{
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			IsAdmin:   user.IsAdmin,
			IsActive:  user.IsActive,
		},
	})
}

func (s *Server) handleUserEditSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	in := userInputFromForm(r)

	user, err := s.Users.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.userLookupFailed(w, r, err)
			return
		}
		if reason, ok := domain.IsValidation(err); ok {
			inlineFlash(r, flashError, reason)
		} else {
			slogx.FromContext(r.Context()).Error("user update failed", "error", err)
			inlineFlash(r, flashError, "Something went wrong. Please try again.")
		}
		in.Password = ""
		s.render(w, r, http.StatusOK, "user_form.html", "Edit User", userFormView{
			Action:  "/users/" + id + "/edit",
			Editing: true,
			Input:   in,
		})
		return
	}

	s.addFlash(w, r, flashSuccess, fmt.Sprintf("User %s updated successfully!", user.Username))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	st := StateFrom(r.Context())
	id := r.PathValue("id")

	user, err := s.Users.Delete(r.Context(), st.User.ID, id)
	switch {
	case errors.Is(err, domain.ErrSelfDeletion):
		s.addFlash(w, r, flashError, "You cannot delete your own account.")
	case errors.Is(err, store.ErrNotFound):
		s.addFlash(w, r, flashError, "User not found.")
	case err != nil:
		slogx.FromContext(r.Context()).Error("user delete failed", "error", err)
		s.addFlash(w, r, flashError, "Something went wrong. Please try again.")
	default:
		s.addFlash(w, r, flashSuccess, fmt.Sprintf("User %s deleted successfully!", user.Username))
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) userLookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.addFlash(w, r, flashError, "User not found.")
	} else {
		slogx.FromContext(r.Context()).Error("user lookup failed", "error", err)
		s.addFlash(w, r, flashError, "Something went wrong. Please try again.")
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
