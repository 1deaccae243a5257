package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; rate limiting is skipped when unset)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// S3 configuration (optional; image uploads are disabled when unset)
	S3Bucket  string
	AWSRegion string

	// CORS configuration
	CORSOrigins []string
}

// LoadConfig creates a new Config instance from environment variables, falling
// back to Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getSecret("DB_USER", "db_user", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", "db_password", ""),
		DBName:     getEnv("DB_NAME", "tastery"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: getSecret("JWT_SECRET", "jwt_secret", ""),

		S3Bucket:  getEnv("S3_BUCKET_NAME", ""),
		AWSRegion: getEnv("AWS_REGION", ""),
	}

	ttlSeconds, err := strconv.Atoi(getEnv("JWT_EXPIRES_IN", "604800"))
	if err != nil || ttlSeconds <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: must be a positive number of seconds")
	}
	cfg.TokenTTL = time.Duration(ttlSeconds) * time.Second

	origins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks that configuration required in every environment is present.
func validate(cfg *Config) error {
	var missing []string

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET (or jwt_secret secret)")
	}
	if cfg.DBPassword == "" && GetEnvironment() == Production {
		missing = append(missing, "DB_PASSWORD (or db_password secret)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads a sensitive value from the environment first and from the
// secrets directory second.
func getSecret(envKey, secretName, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
