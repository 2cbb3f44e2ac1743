package sqlite

import (
	"context"
	"database/sql"

	"github.com/hallgate/adminbase/internal/admin/domain"
)

// activityRepo is intentionally append-only; there are no UPDATE or
// DELETE statements for activity_logs anywhere in this package.
type activityRepo struct {
	db dbtx
}

func (r *activityRepo) Create(ctx context.Context, rec domain.ActivityRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_logs (id, user_id, action, description, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, nullString(rec.UserID), rec.Action, rec.Description,
		rec.IPAddress, rec.UserAgent, rec.CreatedAt,
	)
	return mapErr(err)
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, description, ip_address, user_agent, created_at
		 FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.ActivityRecord
	for rows.Next() {
		var rec domain.ActivityRecord
		var userID sql.NullString
		if err := rows.Scan(&rec.ID, &userID, &rec.Action, &rec.Description,
			&rec.IPAddress, &rec.UserAgent, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.UserID = stringPtr(userID)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
