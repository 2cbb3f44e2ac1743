package service

import (
	"context"
	"strings"

	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/slogx"
)

// SettingsService reads feature toggles stored in the database. Every
// lookup has a defined fallback; a storage fault degrades to the
// caller's default rather than propagating.
type SettingsService struct {
	Store store.Store
}

// Value returns the setting value for key, or def when the key is
// absent or the lookup fails.
func (s *SettingsService) Value(ctx context.Context, key, def string) string {
	v, err := s.Store.Settings().GetValue(ctx, key, def)
	if err != nil {
		slogx.FromContext(ctx).Warn("setting lookup failed", "key", key, "error", err)
		return def
	}
	return v
}

// Bool returns the setting coerced to a boolean. "true", "1", "yes",
// and "on" (case-insensitive) are true; any other stored value is
// false; an absent key returns def.
func (s *SettingsService) Bool(ctx context.Context, key string, def bool) bool {
	marker := "\x00absent"
	v := s.Value(ctx, key, marker)
	if v == marker {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
