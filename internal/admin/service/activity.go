package service

import (
	"context"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/idx"
)

// RequestMeta carries the origin details recorded with each activity
// entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ActivityService appends audit records. There is deliberately no way
// to mutate or remove an entry once written.
type ActivityService struct {
	Store store.Store
}

// Record writes one audit entry. A nil userID marks a system action.
func (s *ActivityService) Record(ctx context.Context, userID *string, action, description string, meta RequestMeta) error {
	return s.Store.Activity().Create(ctx, domain.ActivityRecord{
		ID:          idx.New().String(),
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		CreatedAt:   time.Now().UTC(),
	})
}

// Recent returns the most recent entries, newest first.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityRecord, error) {
	return s.Store.Activity().Recent(ctx, limit)
}
