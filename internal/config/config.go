package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingDBHost    = errors.New("DB_HOST is not set")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	WhatsAppNumber        string
	DeliveryFee           int64
	FreeDeliveryThreshold int64

	LocalStorePath string
	CORSOrigin     string
	SessionTTL     time.Duration

	// PGListen feeds realtime events from Postgres NOTIFY instead of the
	// services publishing them directly.
	PGListen bool
}

// LoadConfig reads .env (when present) and the process environment, and
// exits the process when the configuration is unusable.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

// Load is LoadConfig without the fatal exit.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getEnv("DB_PORT", "5432"),
		AppPort:        getEnv("APP_PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "+212641973545"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "rz-local.db"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	var err error
	if cfg.DeliveryFee, err = getInt64("DELIVERY_FEE", 15); err != nil {
		return nil, err
	}
	if cfg.FreeDeliveryThreshold, err = getInt64("FREE_DELIVERY_THRESHOLD", 300); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if cfg.PGListen, err = getBool("PG_LISTEN", true); err != nil {
		return nil, err
	}

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, v)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
