package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/hallgate/adminbase/internal/admin/config"
	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/internal/admin/store/drivers/sqlite"
	"github.com/hallgate/adminbase/pkg/cryptox"
	"github.com/hallgate/adminbase/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, bypass bool) (*Server, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	resolver, err := config.Load("testdata/does-not-exist.yaml")
	require.NoError(t, err)

	srv, err := NewServer(Config{
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:      st,
		Sessions:   &SessionManager{Secret: []byte("test-secret"), Lifetime: time.Hour},
		Resolver:   resolver,
		Env:        "test",
		BypassAuth: bypass,
	})
	require.NoError(t, err)
	return srv, st
}

func seedUser(t *testing.T, st store.Store, username, password string, admin bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      admin,
		Avatar:       domain.DefaultAvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().Create(context.Background(), user))
	return user
}

// noRedirectClient returns responses as-is so tests can assert on
// redirect targets.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
