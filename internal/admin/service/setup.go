package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/cryptox"
	"github.com/hallgate/adminbase/pkg/idx"
	"github.com/hallgate/adminbase/pkg/slogx"
)

// Default admin credentials seeded on first initialization. Operators
// are expected to change the password immediately.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

type defaultSetting struct {
	key, value, description string
	public                  bool
}

var defaultSettings = []defaultSetting{
	{domain.SettingAppName, "adminbase", "Application name", true},
	{domain.SettingAppVersion, "1.0.0", "Application version", true},
	{domain.SettingMaintenanceMode, "false", "Enable maintenance mode", false},
	{domain.SettingUserRegistration, "true", "Allow new user registration", false},
	{domain.SettingMaxFileSize, "16777216", "Maximum file upload size in bytes", false},
}

// SetupService performs idempotent database initialization: schema
// migrations, the default admin principal, and the default settings.
// Running it repeatedly creates nothing new.
type SetupService struct {
	Store store.Store
}

// Run applies migrations and seeds missing defaults. It reports whether
// anything was created.
func (s *SetupService) Run(ctx context.Context) (bool, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.ApplyMigrations(); err != nil {
		return false, fmt.Errorf("apply migrations: %w", err)
	}

	seeded := false
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		created, err := s.ensureAdmin(ctx, tx)
		if err != nil {
			return err
		}
		seeded = seeded || created

		for _, def := range defaultSettings {
			created, err := s.ensureSetting(ctx, tx, def)
			if err != nil {
				return err
			}
			seeded = seeded || created
		}

		if seeded {
			return tx.Activity().Create(ctx, newActivity(nil, domain.ActionSystemInit,
				"System initialized with default data",
				RequestMeta{IPAddress: "127.0.0.1"}))
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		log.Info("database initialized with default data",
			"admin_username", DefaultAdminUsername)
	}
	return seeded, nil
}

func (s *SetupService) ensureAdmin(ctx context.Context, tx store.Tx) (bool, error) {
	_, err := tx.Users().GetByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := cryptox.HashPassword(defaultAdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	err = tx.Users().Create(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *SetupService) ensureSetting(ctx context.Context, tx store.Tx, def defaultSetting) (bool, error) {
	_, err := tx.Settings().Get(ctx, def.key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("look up setting %s: %w", def.key, err)
	}

	now := time.Now().UTC()
	err = tx.Settings().Create(ctx, domain.Setting{
		ID:          idx.New().String(),
		Key:         def.key,
		Value:       def.value,
		Description: def.description,
		IsPublic:    def.public,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return false, fmt.Errorf("create setting %s: %w", def.key, err)
	}
	return true, nil
}
