package domain

import "time"

// Action tags recorded in the activity log.
const (
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionRegister   = "register"
	ActionSystemInit = "system_init"
)

// ActivityRecord is an append-only audit entry. UserID is nil for
// system actions, and the referenced user may be deleted later without
// invalidating the record.
type ActivityRecord struct {
	ID          string
	UserID      *string
	Action      string
	Description string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}
