// Package config loads the apexkit server configuration.
//
// Settings come from three layers, later ones winning: built-in defaults,
// an optional TOML file and APEXKIT_* environment variables. Command-line
// flags are applied by the CLI on top of the result.
//
// Example file:
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[charts]
//	dir = "charts"
//	refresh_time = 30
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
	"github.com/matzehuels/apexkit/pkg/server"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Charts ChartsConfig `toml:"charts"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	Scope           string `toml:"scope"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	RedisPrefix     string `toml:"redis_prefix"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ChartsConfig sets where definitions live and how charts are built.
type ChartsConfig struct {
	Dir         string `toml:"dir"`
	RefreshTime int    `toml:"refresh_time"`
	Debug       bool   `toml:"debug"`
	NoDataText  string `toml:"no_data_text"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  server.DefaultReadTimeout,
			WriteTimeout: server.DefaultWriteTimeout,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
		},
		Charts: ChartsConfig{
			Dir:         "charts",
			RefreshTime: chart.DefaultRefreshTime,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
	}
	return nil
}

// ChartConfig returns the config injected into every chart.
func (c Config) ChartConfig() chart.Config {
	return chart.Config{
		RefreshTime: c.Charts.RefreshTime,
		Debug:       c.Charts.Debug,
		NoDataText:  c.Charts.NoDataText,
	}
}

// CacheOptions returns the options for cache.Open.
func (c Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   c.Cache.RedisPrefix,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
}

// Keyer returns the cache keyer for the runner. A scope prefixes every key
// so several deployments can share one Redis or MongoDB cache.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Scope == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Scope+":")
}

// ServerOptions returns the options for server.Run.
func (c Config) ServerOptions() server.Options {
	return server.Options{
		Addr:         c.Server.Addr,
		ReadTimeout:  c.Server.ReadTimeout,
		WriteTimeout: c.Server.WriteTimeout,
	}
}
