package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestGetDottedPath(t *testing.T) {
	t.Parallel()

	r, err := Load(writeSettings(t, `
app:
  name: adminbase
  version: "1.0.0"
  features:
    api_enabled: true
security:
  session:
    lifetime: 3600
`))
	require.NoError(t, err)

	require.Equal(t, "adminbase", r.GetString("app.name", "fallback"))
	require.Equal(t, "1.0.0", r.GetString("app.version", ""))
	require.True(t, r.GetBool("app.features.api_enabled", false))
	require.Equal(t, 3600, r.GetInt("security.session.lifetime", 0))

	// Missing segments and untraversable nodes fall back to the default.
	require.Equal(t, "dflt", r.GetString("app.missing", "dflt"))
	require.Equal(t, "dflt", r.GetString("app.name.deeper", "dflt"))
	require.Equal(t, 42, r.GetInt("nope.nope", 42))
	require.False(t, r.GetBool("app.name", false))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	r, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "x", r.GetString("anything", "x"))
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	_, err := Load(writeSettings(t, "app: [unclosed"))
	require.Error(t, err)
}

func TestEnvBoolCoercion(t *testing.T) {
	cases := map[string]bool{
		"true": true, "TRUE": true, "1": true, "yes": true, "On": true,
		"false": false, "0": false, "off": false, "banana": false,
	}
	for value, want := range cases {
		t.Setenv("ADMINBASE_TEST_BOOL", value)
		require.Equal(t, want, EnvBool("ADMINBASE_TEST_BOOL", !want), "value %q", value)
	}

	os.Unsetenv("ADMINBASE_TEST_BOOL")
	require.True(t, EnvBool("ADMINBASE_TEST_BOOL", true))
	require.False(t, EnvBool("ADMINBASE_TEST_BOOL", false))
}

func TestEnvIntAndDuration(t *testing.T) {
	t.Setenv("ADMINBASE_TEST_INT", "8081")
	require.Equal(t, 8081, EnvInt("ADMINBASE_TEST_INT", 1))

	t.Setenv("ADMINBASE_TEST_INT", "not a number")
	require.Equal(t, 1, EnvInt("ADMINBASE_TEST_INT", 1))

	t.Setenv("ADMINBASE_TEST_DUR", "90m")
	require.Equal(t, 90*time.Minute, EnvDuration("ADMINBASE_TEST_DUR", time.Second))

	t.Setenv("ADMINBASE_TEST_DUR", "1800")
	require.Equal(t, 30*time.Minute, EnvDuration("ADMINBASE_TEST_DUR", time.Second))

	t.Setenv("ADMINBASE_TEST_DUR", "junk")
	require.Equal(t, time.Second, EnvDuration("ADMINBASE_TEST_DUR", time.Second))
}

func TestEnvOverridesFileValue(t *testing.T) {
	r, err := Load(writeSettings(t, `
server:
  port: 5000
`))
	require.NoError(t, err)

	// env > file > hardcoded default, the deployment precedence contract.
	resolve := func() int {
		return EnvInt("ADMINBASE_TEST_PORT", r.GetInt("server.port", 8080))
	}

	t.Setenv("ADMINBASE_TEST_PORT", "9999")
	require.Equal(t, 9999, resolve())

	os.Unsetenv("ADMINBASE_TEST_PORT")
	require.Equal(t, 5000, resolve())

	empty, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	require.Equal(t, 8080, EnvInt("ADMINBASE_TEST_PORT", empty.GetInt("server.port", 8080)))
}
