package cache

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/apexkit/pkg/errors"
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
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// DefaultDir returns the per-user cache directory.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "apexkit")
	}
	return filepath.Join(os.TempDir(), "apexkit-cache")
}

// Open creates the cache selected by cfg.Backend. An empty backend means
// "file".
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache needs an address")
		}
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.Mongo.URI == "" || cfg.Mongo.Database == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache needs a URI and a database")
		}
		c, err := NewMongoCache(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.InvalidChoice("cache backend", cfg.Backend, Backends)
	}
}
