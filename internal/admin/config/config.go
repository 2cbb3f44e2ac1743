// Package config resolves application configuration from two layers: a
// YAML settings file queried by dotted path, and process environment
// variables with typed coercion. Environment values always win over
// file values; hardcoded defaults are the final fallback.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Resolver answers configuration lookups. Lookups never fail: a missing
// key, a missing file, or an untraversable node yields the caller's
// default.
type Resolver struct {
	tree map[string]any
}

// Load reads the YAML settings file at path. A missing file is not an
// error; the resolver simply answers every Get with the default.
// A malformed file is an error, since silently ignoring operator
// configuration is worse than failing at boot.
func Load(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Resolver{tree: map[string]any{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return &Resolver{tree: tree}, nil
}

// Get walks the settings tree along a dotted path ("app.name") and
// returns the value found, or def when any segment is missing or the
// node at that point is not a map.
func (r *Resolver) Get(path string, def any) any {
	node := any(r.tree)
	for _, key := range strings.Split(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return def
		}
		node, ok = m[key]
		if !ok {
			return def
		}
	}
	return node
}

// GetString returns the string at path, or def when absent or not a
// string.
func (r *Resolver) GetString(path, def string) string {
	if s, ok := r.Get(path, def).(string); ok {
		return s
	}
	return def
}

// GetBool returns the boolean at path, or def when absent or not a
// boolean.
func (r *Resolver) GetBool(path string, def bool) bool {
	if b, ok := r.Get(path, def).(bool); ok {
		return b
	}
	return def
}

// GetInt returns the integer at path, or def when absent or not an
// integer.
func (r *Resolver) GetInt(path string, def int) int {
	if n, ok := r.Get(path, def).(int); ok {
		return n
	}
	return def
}

// Env returns the environment variable or def when unset or empty.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvBool coerces an environment variable to a boolean. "true", "1",
// "yes", and "on" (case-insensitive) are true; any other set value is
// false; unset returns def.
func EnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// EnvInt coerces an environment variable to an int, returning def when
// unset or unparseable.
func EnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDuration coerces an environment variable to a time.Duration,
// accepting Go duration syntax ("30m") or plain seconds ("1800").
// Returns def when unset or unparseable.
func EnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
