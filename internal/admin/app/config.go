package app

import (
	"time"

	"github.com/hallgate/adminbase/internal/admin/config"
)

// defaultSecretKey only exists so development boots without setup.
// Startup logs a warning whenever it is in effect.
const defaultSecretKey = "dev-secret-key-change-in-production"

const defaultSessionLifetime = time.Hour

// Config is the process configuration snapshot. Each field resolves
// environment variable first, then the YAML settings file, then a
// hardcoded development default. Secret values are never logged.
type Config struct {
	Env  string
	Port int

	SecretKey       string
	DatabaseFile    string
	ConfigFile      string
	DisableAuth     bool
	SessionLifetime time.Duration
	ShutdownGrace   time.Duration

	LogLevel  string
	LogFormat string

	// Resolver is the parsed settings file, kept for lookups that have
	// no env counterpart (feature flags, llm defaults).
	Resolver *config.Resolver
}

// LoadConfig reads the deployment contract. CONFIG_FILE itself is
// env-only since it locates the file tier; everything else with a YAML
// counterpart falls back to it before the hardcoded default.
func LoadConfig() (Config, error) {
	configFile := config.Env("CONFIG_FILE", "config.yaml")
	resolver, err := config.Load(configFile)
	if err != nil {
		return Config{}, err
	}

	fileLifetime := time.Duration(resolver.GetInt("security.session.lifetime",
		int(defaultSessionLifetime/time.Second))) * time.Second

	return Config{
		Env:  config.Env("ENV", resolver.GetString("app.environment", "development")),
		Port: config.EnvInt("PORT", resolver.GetInt("server.port", 5000)),

		SecretKey:       config.Env("SECRET_KEY", defaultSecretKey),
		DatabaseFile:    config.Env("DATABASE_FILE", resolver.GetString("database.file", "adminbase.db")),
		ConfigFile:      configFile,
		DisableAuth:     config.EnvBool("DISABLE_AUTH", false),
		SessionLifetime: config.EnvDuration("SESSION_LIFETIME", fileLifetime),
		ShutdownGrace:   config.EnvDuration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		LogLevel:  config.Env("LOG_LEVEL", resolver.GetString("logging.level", "info")),
		LogFormat: config.Env("LOG_FORMAT", resolver.GetString("logging.format", "json")),

		Resolver: resolver,
	}, nil
}

// UsingDefaultSecret reports whether the built-in development secret is
// in effect.
func (c Config) UsingDefaultSecret() bool {
	return c.SecretKey == defaultSecretKey
}
