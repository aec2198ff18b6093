package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultJWTSecret is the insecure fallback signing key. Deployments must
// override it via JWT_SECRET; main warns loudly when it is in use.
const DefaultJWTSecret = "curiosity-secret"

// Config holds all configuration for the curiosity-quest backend
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Topics  TopicsConfig
	Store   StoreConfig
	Rewards RewardsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// TopicsConfig holds topic catalog configuration
type TopicsConfig struct {
	Path string
}

// StoreConfig holds user store configuration
type StoreConfig struct {
	Driver        string
	DatabaseDSN   string
	MigrationsDir string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// RewardsConfig holds the server-side badge threshold rule
type RewardsConfig struct {
	ThresholdPoints int
	ThresholdBadge  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("PORT", 3001),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),
		},
		Topics: TopicsConfig{
			Path: getEnv("TOPICS_PATH", "./data/topics.json"),
		},
		Store: StoreConfig{
			Driver:        getEnv("STORE_DRIVER", "memory"),
			DatabaseDSN:   getEnv("DATABASE_DSN", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
			RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
		Rewards: RewardsConfig{
			ThresholdPoints: getEnvAsInt("BADGE_THRESHOLD_POINTS", 50),
			ThresholdBadge:  getEnv("BADGE_THRESHOLD_NAME", "Curious Explorer"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case "memory", "postgres", "redis":
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}

	if c.Store.Driver == "postgres" && c.Store.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for the postgres store")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret must not be empty")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.Topics.Path == "" {
		return fmt.Errorf("topics path is required")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
