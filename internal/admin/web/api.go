package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/pkg/httpx"
)

// handleHealth always reports healthy while the process serves
// requests. The settings lookups degrade to their defaults on any
// storage fault, so the response stays 200 through database trouble.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"app_name":    s.Settings.Value(r.Context(), domain.SettingAppName, "adminbase"),
		"version":     s.Settings.Value(r.Context(), domain.SettingAppVersion, "1.0.0"),
		"environment": s.Env,
		"features": map[string]bool{
			"registration": s.Resolver.GetBool("features.registration", true),
			"api":          s.Resolver.GetBool("features.api", true),
		},
	})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	name := "World"
	if r.Method == http.MethodPost {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Name != "" {
			name = body.Name
		}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Hello, " + name + "!",
		"method":    r.Method,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLLMStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, s.LLM.Status())
}
