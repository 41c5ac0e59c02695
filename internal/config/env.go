package config

import (
	"os"
	"strconv"
	"time"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "APEXKIT_"

// applyEnv overrides fields from APEXKIT_* variables. Unparsable values
// are ignored.
func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Dir = getEnv("CACHE_DIR", c.Cache.Dir)
	c.Cache.Scope = getEnv("CACHE_SCOPE", c.Cache.Scope)
	c.Cache.RedisAddr = getEnv("REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPassword = getEnv("REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Cache.RedisDB = getIntEnv("REDIS_DB", c.Cache.RedisDB)
	c.Cache.MongoURI = getEnv("MONGO_URI", c.Cache.MongoURI)
	c.Cache.MongoDatabase = getEnv("MONGO_DATABASE", c.Cache.MongoDatabase)

	c.Charts.Dir = getEnv("CHARTS_DIR", c.Charts.Dir)
	c.Charts.RefreshTime = getIntEnv("REFRESH_TIME", c.Charts.RefreshTime)
	c.Charts.Debug = getBoolEnv("DEBUG", c.Charts.Debug)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
