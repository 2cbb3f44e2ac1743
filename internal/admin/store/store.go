package store

import (
	"context"
	"errors"

	"github.com/hallgate/adminbase/internal/admin/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists maps UNIQUE constraint violations (username,
	// email, setting key) so callers can turn them into validation
	// errors instead of raw storage faults.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// it; services receive it at construction so there is no package-level
// database handle anywhere.
type Store interface {
	Users() Users
	Activity() Activity
	Settings() Settings

	ApplyMigrations() error

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// List returns one page of users ordered by creation (oldest first)
	// along with the total user count.
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)

	Create(ctx context.Context, u domain.User) error
	Update(ctx context.Context, u domain.User) error
	UpdateLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (total, active, admins int, err error)
}

// Activity is append-only: records are created and read, never mutated
// or deleted.
type Activity interface {
	Create(ctx context.Context, rec domain.ActivityRecord) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error)
}

type Settings interface {
	// GetValue returns the value for key, or def when the key is absent.
	GetValue(ctx context.Context, key, def string) (string, error)

	Get(ctx context.Context, key string) (domain.Setting, error)
	Create(ctx context.Context, s domain.Setting) error
	SetValue(ctx context.Context, key, value string) error
}
