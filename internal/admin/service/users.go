package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/cryptox"
	"github.com/hallgate/adminbase/pkg/idx"
)

// PageSize is the fixed number of users per management page.
const PageSize = 10

// UsersService implements the admin-facing user CRUD surface.
type UsersService struct {
	Store store.Store
	Auth  *AuthService
}

// UserPage is one page of the user list.
type UserPage struct {
	Users      []domain.User
	Page       int
	TotalPages int
	Total      int
}

// List returns page (1-based, clamped) of users with PageSize entries.
func (s *UsersService) List(ctx context.Context, page int) (UserPage, error) {
	if page < 1 {
		page = 1
	}

	users, total, err := s.Store.Users().List(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}

	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return UserPage{Users: users, Page: page, TotalPages: totalPages, Total: total}, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, id)
}

// UserInput holds the user management form fields. Password is
// optional on edit; IsAdmin/IsActive come from checkboxes.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsAdmin   bool
	IsActive  bool
}

func (in *UserInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

// Create inserts a new user. All fields including the password are
// required; duplicate usernames and emails are rejected.
func (s *UsersService) Create(ctx context.Context, in UserInput) (domain.User, error) {
	in.normalize()
	if in.Username == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return domain.User{}, domain.Validationf("All fields are required.")
	}

	if err := s.Auth.checkUnused(ctx, in.Username, in.Email, ""); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		IsAdmin:      in.IsAdmin,
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.Validationf("Username or email already exists.")
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update modifies an existing user. The password changes only when a
// new one is supplied.
func (s *UsersService) Update(ctx context.Context, id string, in UserInput) (domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	in.normalize()
	if in.Username == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" {
		return domain.User{}, domain.Validationf("All fields are required.")
	}

	if err := s.Auth.checkUnused(ctx, in.Username, in.Email, user.ID); err != nil {
		return domain.User{}, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.IsAdmin = in.IsAdmin
	user.IsActive = in.IsActive

	if in.Password != "" {
		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.Store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.Validationf("Username or email already exists.")
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user. A principal can never delete itself;
// actingUserID is empty for the synthetic bypass principal, which has
// no stored row and therefore cannot collide with any target.
func (s *UsersService) Delete(ctx context.Context, actingUserID, targetID string) (domain.User, error) {
	target, err := s.Store.Users().GetByID(ctx, targetID)
	if err != nil {
		return domain.User{}, err
	}

	if actingUserID != "" && actingUserID == target.ID {
		return domain.User{}, domain.ErrSelfDeletion
	}

	if err := s.Store.Users().Delete(ctx, target.ID); err != nil {
		return domain.User{}, fmt.Errorf("delete user: %w", err)
	}
	return target, nil
}

// Stats returns the dashboard counters.
func (s *UsersService) Stats(ctx context.Context) (total, active, admins int, err error) {
	return s.Store.Users().Count(ctx)
}
