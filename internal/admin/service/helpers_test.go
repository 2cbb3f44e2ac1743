package service

import (
	"context"
	"testing"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/internal/admin/store/drivers/sqlite"
	"github.com/hallgate/adminbase/pkg/cryptox"
	"github.com/hallgate/adminbase/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username, email, password string, admin, active bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		IsActive:     active,
		IsAdmin:      admin,
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().Create(context.Background(), user))
	return user
}

func testMeta() RequestMeta {
	return RequestMeta{IPAddress: "192.0.2.10", UserAgent: "go-test"}
}
