package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, bypass bool) (*httptest.Server, *Server) {
	t.Helper()

	srv, _ := newTestServer(t, bypass)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, srv
}

func browserClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) *http.Response {
	t.Helper()

	resp, err := client.PostForm(baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	return resp
}

func TestIndexRedirects(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, false)
	client := noRedirectClient()

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDashboardRequiresLogin(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, false)
	client := noRedirectClient()

	resp, err := client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login?next=%2Fdashboard", resp.Header.Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "alice", "hunter2secret", false)
	client := browserClient(t)

	resp := login(t, client, ts.URL, "alice", "hunter2secret")
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Dashboard")

	resp, err := client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	readBody(t, resp)
}

func TestLoginFailureRerendersForm(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "alice", "hunter2secret", false)
	client := browserClient(t)

	resp := login(t, client, ts.URL, "alice", "wrong-password")
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Invalid username or password.")
	require.Contains(t, body, `value="alice"`)
}

func TestLoginHonorsValidNextPath(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "root", "rootpassword", true)
	client := browserClient(t)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"username": {"root"},
		"password": {"rootpassword"},
		"next":     {"/users"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/users", resp.Header.Get("Location"))
}

func TestLoginRejectsForeignNextPath(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "alice", "hunter2secret", false)
	client := browserClient(t)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	for _, next := range []string{"//evil.example.com", "https://evil.example.com/", "relative"} {
		resp, err := client.PostForm(ts.URL+"/login", url.Values{
			"username": {"alice"},
			"password": {"hunter2secret"},
			"next":     {next},
		})
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/dashboard", resp.Header.Get("Location"), "next %q must not be honored", next)
	}
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "alice", "hunter2secret", false)
	client := browserClient(t)

	for i := 0; i < 5; i++ {
		resp := login(t, client, ts.URL, "alice", "wrong-password")
		readBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode, "attempt %d", i+1)
	}

	resp := login(t, client, ts.URL, "alice", "wrong-password")
	readBody(t, resp)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "alice", "hunter2secret", false)
	client := browserClient(t)

	readBody(t, login(t, client, ts.URL, "alice", "hunter2secret"))

	resp, err := client.Get(ts.URL + "/logout")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Contains(t, body, "You have been logged out.")

	raw := noRedirectClient()
	raw.Jar = client.Jar
	resp, err = raw.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestRegisterFlow(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	client := browserClient(t)

	resp, err := client.PostForm(ts.URL+"/register", url.Values{
		"username":         {"newbie"},
		"email":            {"newbie@example.com"},
		"first_name":       {"New"},
		"last_name":        {"Bee"},
		"password":         {"secret6"},
		"confirm_password": {"secret6"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Registration successful! Please log in.")

	user, err := srv.Store.Users().GetByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	require.False(t, user.IsAdmin)
}

func TestUsersRequireAdmin(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	seedUser(t, srv.Store, "plain", "plainpassword", false)
	client := browserClient(t)
	readBody(t, login(t, client, ts.URL, "plain", "plainpassword"))

	raw := noRedirectClient()
	raw.Jar = client.Jar
	resp, err := raw.Get(ts.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestAdminUserManagement(t *testing.T) {
	t.Parallel()

	ts, srv := startServer(t, false)
	admin := seedUser(t, srv.Store, "root", "rootpassword", true)
	victim := seedUser(t, srv.Store, "victim", "victimpassword", false)
	client := browserClient(t)
	readBody(t, login(t, client, ts.URL, "root", "rootpassword"))

	t.Run("list shows users", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/users")
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "victim")
	})

	t.Run("self deletion is refused", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/users/"+admin.ID+"/delete", "application/x-www-form-urlencoded", strings.NewReader(""))
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Contains(t, body, "You cannot delete your own account.")
	})

	t.Run("deleting another user succeeds", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/users/"+victim.ID+"/delete", "application/x-www-form-urlencoded", strings.NewReader(""))
		require.NoError(t, err)
		body := readBody(t, resp)
		require.Contains(t, body, "deleted successfully")
	})
}

func TestBypassMode(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, true)
	client := browserClient(t)

	resp, err := client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Authentication is disabled")

	resp, err = client.Get(ts.URL + "/users")
	require.NoError(t, err)
	readBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, false)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "healthy", payload["status"])
	require.Equal(t, "test", payload["environment"])
	require.NotEmpty(t, payload["timestamp"])
}

func TestHello(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, false)

	resp, err := http.Get(ts.URL + "/api/hello")
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, "Hello, World!", payload["message"])

	resp, err = http.Post(ts.URL+"/api/hello", "application/json", strings.NewReader(`{"name":"Gopher"}`))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, "Hello, Gopher!", payload["message"])
	require.Equal(t, http.MethodPost, payload["method"])
}

func TestLLMStatusRateLimited(t *testing.T) {
	t.Parallel()

	ts, _ := startServer(t, false)

	for i := 0; i < 100; i++ {
		resp, err := http.Get(ts.URL + "/api/llm-status")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	resp, err := http.Get(ts.URL + "/api/llm-status")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestLLMStatus(t *testing.T) {
	ts, _ := startServer(t, false)

	t.Setenv("OPENAI_API_KEY", "sk-test-0123456789abcdef0123456789")
	t.Setenv("ANTHROPIC_API_KEY", "")

	resp, err := http.Get(ts.URL + "/api/llm-status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		DefaultProvider    string          `json:"default_provider"`
		AvailableProviders []string        `json:"available_providers"`
		APIKeysAvailable   map[string]bool `json:"api_keys_available"`
		OpenAI             struct {
			APIKeyAvailable bool    `json:"api_key_available"`
			APIKeyPreview   *string `json:"api_key_preview"`
		} `json:"openai"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	require.Equal(t, "openai", payload.DefaultProvider)
	require.Equal(t, []string{"openai"}, payload.AvailableProviders)
	require.True(t, payload.APIKeysAvailable["openai"])
	require.False(t, payload.APIKeysAvailable["anthropic"])
	require.NotNil(t, payload.OpenAI.APIKeyPreview)
	require.Len(t, *payload.OpenAI.APIKeyPreview, 23)
	require.NotContains(t, *payload.OpenAI.APIKeyPreview, "abcdef0123456789")
}
