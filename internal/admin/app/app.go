// Package app assembles the process: configuration, logging, storage,
// initialization, and the HTTP server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hallgate/adminbase/internal/admin/service"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/internal/admin/store/drivers/sqlite"
	"github.com/hallgate/adminbase/internal/admin/web"
	"github.com/hallgate/adminbase/pkg/slogx"
)

const Version = "1.0.0"

type App struct {
	cfg    Config
	log    *slog.Logger
	store  store.Store
	server *http.Server
}

// New wires the full application. The database is opened and seeded
// here so Run only has to serve.
func New(cfg Config) (*App, error) {
	log := slogx.New(slogx.Config{
		App:     "adminbase",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if cfg.UsingDefaultSecret() {
		log.Warn("SECRET_KEY is unset; sessions are signed with the built-in development key")
	}
	if cfg.DisableAuth {
		log.Warn("authentication is DISABLED; every request acts as an admin",
			"env", cfg.Env)
	}

	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DatabaseFile, err)
	}

	setup := &service.SetupService{Store: st}
	seeded, err := setup.Run(slogx.WithContext(context.Background(), log))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if seeded {
		log.Info("seeded default admin and settings", "database", cfg.DatabaseFile)
	}

	srv, err := web.NewServer(web.Config{
		Log:   log,
		Store: st,
		Sessions: &web.SessionManager{
			Secret:   []byte(cfg.SecretKey),
			Lifetime: cfg.SessionLifetime,
		},
		Resolver:   cfg.Resolver,
		Env:        cfg.Env,
		BypassAuth: cfg.DisableAuth,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		cfg:   cfg,
		log:   log,
		store: st,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Run serves until ctx is canceled, then drains connections within the
// configured grace period.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down", "grace", a.cfg.ShutdownGrace.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGrace)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return a.store.Close()
}
