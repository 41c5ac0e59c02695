package config

import (
	"slices"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateCharts()
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts cannot be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Backend != "" && !slices.Contains(cache.Backends, c.Cache.Backend) {
		return errors.Wrap(errors.ErrCodeInvalidConfig,
			errors.InvalidChoice("cache.backend", c.Cache.Backend, cache.Backends), "cache")
	}
	switch c.Cache.Backend {
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" || c.Cache.MongoDatabase == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri and cache.mongo_database are required for the mongo backend")
		}
	}
	if c.Cache.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_db cannot be negative")
	}
	return nil
}

func (c *Config) validateCharts() error {
	if err := chart.ValidateRefreshTime(c.Charts.RefreshTime); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "charts.refresh_time")
	}
	return nil
}
