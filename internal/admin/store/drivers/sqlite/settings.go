package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
)

type settingsRepo struct {
	db dbtx
}

func (r *settingsRepo) Get(ctx context.Context, key string) (domain.Setting, error) {
	var s domain.Setting
	err := r.db.QueryRowContext(ctx,
		`SELECT id, key, value, description, is_public, created_at, updated_at
		 FROM settings WHERE key = ?`, key).
		Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.IsPublic, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Setting{}, mapErr(err)
	}
	return s, nil
}

func (r *settingsRepo) GetValue(ctx context.Context, key, def string) (string, error) {
	s, err := r.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return s.Value, nil
}

func (r *settingsRepo) Create(ctx context.Context, s domain.Setting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, key, value, description, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Key, s.Value, s.Description, s.IsPublic, s.CreatedAt, s.UpdatedAt,
	)
	return mapErr(err)
}

func (r *settingsRepo) SetValue(ctx context.Context, key, value string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE settings SET value = ?, updated_at = ? WHERE key = ?`,
		value, time.Now().UTC(), key)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}
