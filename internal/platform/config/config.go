// Package config loads application settings from the environment.
//
// Values are resolved in this order: process environment, then a .env file,
// then an optional YAML file named by CONFIG_FILE whose top-level keys are
// environment variable names. Earlier sources win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings. Adapter-specific settings (database,
// price sources, Redis) are read by their own packages from the same
// environment.
type Config struct {
	Addr           string
	LogLevel       string
	LogFormat      string
	JWTSecret      string
	JWTExpiration  time.Duration
	AllowedOrigins []string
	PriceSource    string
	OpTimeout      time.Duration
	BcryptCost     int
	Seed           bool
}

// Load reads .env and CONFIG_FILE into the environment and builds a Config.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment without touching files.
func FromEnv() *Config {
	return &Config{
		Addr:           getEnv("APP_ADDR", "127.0.0.1:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiration:  getEnvAsDuration("JWT_EXPIRATION", 12*time.Hour),
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		PriceSource:    strings.ToLower(getEnv("PRICE_SOURCE", "alphavantage")),
		OpTimeout:      getEnvAsDuration("DB_OP_TIMEOUT", 5*time.Second),
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 10),
		Seed:           getEnvAsBool("SEED_DATA", true),
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.PriceSource {
	case "alphavantage", "twelvedata", "synthetic":
	default:
		return fmt.Errorf("PRICE_SOURCE must be alphavantage, twelvedata or synthetic, got %q", c.PriceSource)
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("DB_OP_TIMEOUT must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}

// LoadYAML copies the top-level scalar keys of a YAML file into the
// environment. Variables that are already set are left alone.
func LoadYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	for k, v := range values {
		key := strings.ToUpper(k)
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		var s string
		switch tv := v.(type) {
		case []any:
			parts := make([]string, 0, len(tv))
			for _, p := range tv {
				parts = append(parts, fmt.Sprint(p))
			}
			s = strings.Join(parts, ",")
		case nil:
			continue
		default:
			s = fmt.Sprint(tv)
		}
		if err := os.Setenv(key, s); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
