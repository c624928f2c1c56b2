package models

import (
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// ============================================================================
// Application Configuration
//
// Settings come from CONTENTFIELD_* environment variables, optionally backed
// by a config file named in CONTENTFIELD_CONFIG. Command line flags are
// applied on top by the caller.
// ============================================================================

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CONTENTFIELD"

// AppConfig holds the runtime configuration for the field service.
type AppConfig struct {
	Address        string        // Listen address (CONTENTFIELD_ADDRESS)
	SuggestBaseURL string        // Suggestion host (CONTENTFIELD_SUGGEST_BASE_URL)
	SuggestTimeout time.Duration // Per-lookup HTTP timeout (CONTENTFIELD_SUGGEST_TIMEOUT)
	DBPath         string        // Field store file (CONTENTFIELD_DB_PATH)
	JWTSecret      string        // Field token signing key (CONTENTFIELD_JWT_SECRET)
	SessionTTL     time.Duration // Idle lifetime of a field session (CONTENTFIELD_SESSION_TTL)
	LogLevel       string        // debug, info, warn, error (CONTENTFIELD_LOG_LEVEL)
}

const (
	defaultAddress        = ":8000"
	defaultSuggestTimeout = 10 * time.Second
	defaultDBPath         = "./data/fields.ddb"
	defaultSessionTTL     = 30 * time.Minute
	defaultLogLevel       = "info"
)

// DefaultAppConfig returns the configuration used when nothing is set.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Address:        defaultAddress,
		SuggestBaseURL: DefaultSuggestBaseURL,
		SuggestTimeout: defaultSuggestTimeout,
		DBPath:         defaultDBPath,
		SessionTTL:     defaultSessionTTL,
		LogLevel:       defaultLogLevel,
	}
}

// LoadAppConfig reads configuration from the environment and the optional
// config file.
func LoadAppConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultAppConfig()
	v.SetDefault("address", defaults.Address)
	v.SetDefault("suggest_base_url", defaults.SuggestBaseURL)
	v.SetDefault("suggest_timeout", defaults.SuggestTimeout.String())
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", defaults.SessionTTL.String())
	v.SetDefault("log_level", defaults.LogLevel)

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, serr.Wrap(err, "failed to read config file "+file)
		}
	}

	cfg := &AppConfig{
		Address:        v.GetString("address"),
		SuggestBaseURL: v.GetString("suggest_base_url"),
		DBPath:         v.GetString("db_path"),
		JWTSecret:      v.GetString("jwt_secret"),
		LogLevel:       strings.ToLower(v.GetString("log_level")),
	}

	// Durations are parsed by hand so a typo is reported instead of
	// silently becoming zero
	var err error
	if cfg.SuggestTimeout, err = time.ParseDuration(v.GetString("suggest_timeout")); err != nil {
		return nil, serr.Wrap(err, "invalid CONTENTFIELD_SUGGEST_TIMEOUT value, expected duration like '10s'")
	}
	if cfg.SessionTTL, err = time.ParseDuration(v.GetString("session_ttl")); err != nil {
		return nil, serr.Wrap(err, "invalid CONTENTFIELD_SESSION_TTL value, expected duration like '30m'")
	}

	return cfg, nil
}

// Validate fails fast on settings the service cannot run with.
func (c *AppConfig) Validate() error {
	if c.Address == "" {
		return serr.New("CONTENTFIELD_ADDRESS must not be empty")
	}
	if !strings.HasPrefix(c.SuggestBaseURL, "http://") && !strings.HasPrefix(c.SuggestBaseURL, "https://") {
		return serr.New("CONTENTFIELD_SUGGEST_BASE_URL must be an http(s) URL")
	}
	if c.SuggestTimeout <= 0 {
		return serr.New("CONTENTFIELD_SUGGEST_TIMEOUT must be positive")
	}
	if c.DBPath == "" {
		return serr.New("CONTENTFIELD_DB_PATH must not be empty")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < MinSecretLength {
		return serr.New("CONTENTFIELD_JWT_SECRET must be at least 32 characters")
	}
	if c.SessionTTL < time.Minute {
		return serr.New("CONTENTFIELD_SESSION_TTL must be at least 1m")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return serr.New("CONTENTFIELD_LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
