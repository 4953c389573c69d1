package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/racklayout/pkg/cache"
	errs "github.com/matzehuels/racklayout/pkg/errors"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// EnvPrefix is the prefix of environment variables read by LoadSettings.
const EnvPrefix = "RACKLAYOUT"

// Settings configures the HTTP service.
type Settings struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Mode is the pipeline mode used when a request does not name one.
	Mode string

	Cache cache.Config
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return settingsFrom(newViper())
}

// LoadSettings loads settings from the optional file at path, the environment
// and defaults. Environment > config file > defaults precedence; the
// environment variable of "cache.url" is RACKLAYOUT_CACHE_URL.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}
	s := settingsFrom(v)
	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("layout.strict_units", true)
	v.SetDefault("cache.backend", cache.BackendNone)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.url", "")
	v.SetDefault("cache.database", "racklayout")
	v.SetDefault("cache.collection", cache.DefaultMongoCollection)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func settingsFrom(v *viper.Viper) *Settings {
	mode := pipeline.ModeStrict
	if !v.GetBool("layout.strict_units") {
		mode = pipeline.ModePermissive
	}
	return &Settings{
		Addr:            v.GetString("server.addr"),
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		MaxBodyBytes:    v.GetInt64("server.max_body_bytes"),
		Mode:            mode,
		Cache: cache.Config{
			Backend:    strings.ToLower(v.GetString("cache.backend")),
			Dir:        v.GetString("cache.dir"),
			URL:        v.GetString("cache.url"),
			Database:   v.GetString("cache.database"),
			Collection: v.GetString("cache.collection"),
		},
	}
}

// validateSettings checks address, positive limits and the cache backend.
func validateSettings(s *Settings) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", s.MaxBodyBytes)
	}
	if s.Cache.Backend == "" {
		s.Cache.Backend = cache.BackendNone
	}
	return errs.RequireOneOf("cache.backend", s.Cache.Backend, cache.Backends...)
}

// validateNoSecretsInConfig keeps credential-bearing cache URLs out of config
// files; they belong in RACKLAYOUT_CACHE_URL.
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.InConfig("cache.url") && strings.Contains(v.GetString("cache.url"), "@") {
		return fmt.Errorf("cache.url with credentials not allowed in config files (use %s_CACHE_URL environment variable)", EnvPrefix)
	}
	return nil
}
