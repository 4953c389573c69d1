package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Backends lists the valid backend names.
var Backends = []string{BackendNone, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend    string // one of Backends; empty means none
	Dir        string // file: directory (defaults to DefaultDir)
	URL        string // redis: redis:// URL; mongo: mongodb:// URI
	Database   string // mongo: database name
	Collection string // mongo: collection name
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache requires a url")
		}
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.URL == "" || cfg.Database == "" {
			return nil, fmt.Errorf("mongo cache requires a url and a database")
		}
		c, err := NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (must be one of: %s)", cfg.Backend, strings.Join(Backends, ", "))
}

// DefaultDir returns the per-user cache directory (~/.cache/racklayout/,
// honouring XDG_CACHE_HOME).
func DefaultDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "racklayout"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "racklayout"), nil
}
