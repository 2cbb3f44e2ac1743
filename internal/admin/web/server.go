// Package web is the HTTP surface: session resolution, per-route
// authorization, server-rendered pages, and the small JSON API.
package web

import (
	"log/slog"
	"net/http"

	"github.com/hallgate/adminbase/internal/admin/config"
	"github.com/hallgate/adminbase/internal/admin/service"
	"github.com/hallgate/adminbase/internal/admin/store"
	"github.com/hallgate/adminbase/pkg/httpx"
	"github.com/hallgate/adminbase/pkg/slogx"
)

// Server wires the services to routes. Construct it with NewServer and
// mount Routes on an http.Server.
type Server struct {
	Log      *slog.Logger
	Store    store.Store
	Auth     *service.AuthService
	Users    *service.UsersService
	Settings *service.SettingsService
	Activity *service.ActivityService
	LLM      *service.LLMService
	Sessions *SessionManager
	Renderer *Renderer
	Resolver *config.Resolver

	Env        string
	BypassAuth bool
}

// Config collects everything a Server needs.
type Config struct {
	Log      *slog.Logger
	Store    store.Store
	Sessions *SessionManager
	Resolver *config.Resolver

	Env        string
	BypassAuth bool
}

func NewServer(cfg Config) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	settings := &service.SettingsService{Store: cfg.Store}
	auth := &service.AuthService{Store: cfg.Store, Settings: settings}

	return &Server{
		Log:        cfg.Log,
		Store:      cfg.Store,
		Auth:       auth,
		Users:      &service.UsersService{Store: cfg.Store, Auth: auth},
		Settings:   settings,
		Activity:   &service.ActivityService{Store: cfg.Store},
		LLM:        &service.LLMService{Resolver: cfg.Resolver},
		Sessions:   cfg.Sessions,
		Renderer:   renderer,
		Resolver:   cfg.Resolver,
		Env:        cfg.Env,
		BypassAuth: cfg.BypassAuth,
	}, nil
}

// Routes builds the full handler tree. Every route names its
// capability here; handlers assume authorization already happened.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.Handle("POST /login", httpx.Chain(
		http.HandlerFunc(s.handleLoginSubmit),
		httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
	))
	mux.HandleFunc("GET /logout", s.guard(CapAuthenticated, s.handleLogout))
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.Handle("POST /register", httpx.Chain(
		http.HandlerFunc(s.handleRegisterSubmit),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))

	mux.HandleFunc("GET /dashboard", s.guard(CapAuthenticated, s.handleDashboard))

	mux.HandleFunc("GET /users", s.guard(CapAdmin, s.handleUsersList))
	mux.HandleFunc("GET /users/create", s.guard(CapAdmin, s.handleUserCreateForm))
	mux.HandleFunc("POST /users/create", s.guard(CapAdmin, s.handleUserCreateSubmit))
	mux.HandleFunc("GET /users/{id}/edit", s.guard(CapAdmin, s.handleUserEditForm))
	mux.HandleFunc("POST /users/{id}/edit", s.guard(CapAdmin, s.handleUserEditSubmit))
	mux.HandleFunc("POST /users/{id}/delete", s.guard(CapAdmin, s.handleUserDelete))

	for _, page := range demoPages {
		mux.HandleFunc("GET "+page.path, s.guard(CapAuthenticated, s.demoHandler(page)))
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/hello", s.handleHello)
	mux.HandleFunc("POST /api/hello", s.handleHello)
	mux.Handle("GET /api/llm-status", httpx.Chain(
		http.HandlerFunc(s.handleLLMStatus),
		httpx.RateLimitByIP(httpx.LenientLimit),
	))

	return httpx.Chain(mux,
		slogx.HTTPMiddleware(s.Log),
		s.withRequestState,
	)
}

func requestMeta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		IPAddress: httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
