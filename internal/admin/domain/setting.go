package domain

import "time"

// Setting is a small key/value feature toggle. IsPublic marks settings
// viewable by non-admins.
type Setting struct {
	ID          string
	Key         string // unique
	Value       string
	Description string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Keys of the settings seeded at initialization.
const (
	SettingAppName          = "app_name"
	SettingAppVersion       = "app_version"
	SettingMaintenanceMode  = "maintenance_mode"
	SettingUserRegistration = "user_registration"
	SettingMaxFileSize      = "max_file_size"
)
