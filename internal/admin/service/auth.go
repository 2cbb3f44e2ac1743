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
	"github.com/hallgate/adminbase/pkg/slogx"
)

const minPasswordLength = 6

// AuthService implements login, logout, and self-registration. Every
// successful transition writes exactly one activity record before
// returning.
type AuthService struct {
	Store    store.Store
	Settings *SettingsService
}

// Login authenticates by exact, case-sensitive username match. Unknown
// usernames and wrong passwords produce the same error so responses
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string, meta RequestMeta) (domain.User, error) {
	user, err := s.Store.Users().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			slogx.FromContext(ctx).Error("stored password hash is malformed", "user_id", user.ID)
		}
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.User{}, domain.ErrAccountDisabled
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateLastLogin(ctx, user.ID); err != nil {
			return err
		}
		return tx.Activity().Create(ctx, newActivity(&user.ID, domain.ActionLogin,
			fmt.Sprintf("User %s logged in", user.Username), meta))
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("record login: %w", err)
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	return user, nil
}

// Logout records the logout action for an authenticated principal. The
// caller is responsible for destroying the session token.
func (s *AuthService) Logout(ctx context.Context, user domain.User, meta RequestMeta) error {
	return s.Store.Activity().Create(ctx, newActivity(&user.ID, domain.ActionLogout,
		fmt.Sprintf("User %s logged out", user.Username), meta))
}

// RegisterInput holds the self-registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// Register creates a non-admin, active principal when the
// user_registration setting allows it. Validation failures leave the
// store untouched.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (domain.User, error) {
	if !s.Settings.Bool(ctx, domain.SettingUserRegistration, true) {
		return domain.User{}, domain.ErrRegistrationClosed
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.Username == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return domain.User{}, domain.Validationf("All fields are required.")
	}
	if in.Password != in.ConfirmPassword {
		return domain.User{}, domain.Validationf("Passwords do not match.")
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, domain.Validationf("Password must be at least 6 characters long.")
	}

	if err := s.checkUnused(ctx, in.Username, in.Email, ""); err != nil {
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
		IsActive:     true,
		IsAdmin:      false,
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return tx.Activity().Create(ctx, newActivity(&user.ID, domain.ActionRegister,
			fmt.Sprintf("User %s registered", user.Username), meta))
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent registration; same outcome as
		// the pre-check.
		return domain.User{}, domain.Validationf("Username or email already exists.")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// checkUnused rejects usernames and emails that belong to any record
// other than excludeID.
func (s *AuthService) checkUnused(ctx context.Context, username, email, excludeID string) error {
	if existing, err := s.Store.Users().GetByUsername(ctx, username); err == nil {
		if existing.ID != excludeID {
			return domain.Validationf("Username already exists.")
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	if existing, err := s.Store.Users().GetByEmail(ctx, email); err == nil {
		if existing.ID != excludeID {
			return domain.Validationf("Email already exists.")
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	return nil
}

func newActivity(userID *string, action, description string, meta RequestMeta) domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:          idx.New().String(),
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		CreatedAt:   time.Now().UTC(),
	}
}
