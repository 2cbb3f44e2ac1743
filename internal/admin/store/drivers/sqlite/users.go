package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, first_name, last_name, password_hash,
	is_active, is_admin, avatar, created_at, updated_at, last_login`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.IsAdmin, &u.Avatar, &u.CreatedAt, &u.UpdatedAt, &lastLogin,
	)
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	u.LastLogin = timePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.IsActive, u.IsAdmin, u.Avatar, u.CreatedAt, u.UpdatedAt,
		func() sql.NullTime {
			if u.LastLogin == nil {
				return sql.NullTime{}
			}
			return sql.NullTime{Time: *u.LastLogin, Valid: true}
		}(),
	)
	return mapErr(err)
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, first_name = ?, last_name = ?,
		 password_hash = ?, is_active = ?, is_admin = ?, avatar = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, u.FirstName, u.LastName,
		u.PasswordHash, u.IsActive, u.IsAdmin, u.Avatar, time.Now().UTC(),
		u.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapErr(err)
	}
	return requireRow(res)
}

func (r *usersRepo) Count(ctx context.Context) (total, active, admins int, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_active), 0),
		        COALESCE(SUM(is_admin), 0)
		 FROM users`).Scan(&total, &active, &admins)
	return total, active, admins, err
}

// requireRow converts zero affected rows into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapErr(sql.ErrNoRows)
	}
	return nil
}
