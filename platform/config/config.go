// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// TenantConfig provides settings for hostname-based tenant resolution.
type TenantConfig interface {
	GetBaseDomain() string
	GetAPIDomain() string
}

// RedisConfig provides settings for the Redis tenant cache.
type RedisConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetTenantCacheTTL() time.Duration
	IsRedisEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	BaseDomain     string
	APIDomain      string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
	RedisEnabled   bool
	RedisAddr      string
	RedisPassword  string
	TenantCacheTTL time.Duration
}

// Load reads configuration from the environment, with .env as a fallback
// for local development. Missing required values fail fast.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		BaseDomain:     getEnv("BASE_DOMAIN", "taleschool.taldev.xyz"),
		APIDomain:      getEnv("API_DOMAIN", "api-taleschool.taldev.xyz"),
		CORSAllowAll:   getBool("CORS_ALLOW_ALL", false),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		CORSAllowCreds: getBool("CORS_ALLOW_CREDENTIALS", true),
		RedisEnabled:   getBool("REDIS_ENABLED", false),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		TenantCacheTTL: getDuration("TENANT_CACHE_TTL", 5*time.Minute),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetJWTSecret() string { return c.JWTSecret }

func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

func (c *Config) GetBaseDomain() string { return c.BaseDomain }

func (c *Config) GetAPIDomain() string { return c.APIDomain }

func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }

func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetCORSAllowCreds() bool { return c.CORSAllowCreds }

func (c *Config) GetRedisAddr() string { return c.RedisAddr }

func (c *Config) GetRedisPassword() string { return c.RedisPassword }

func (c *Config) GetTenantCacheTTL() time.Duration { return c.TenantCacheTTL }

func (c *Config) IsRedisEnabled() bool { return c.RedisEnabled }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
