package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendFirebase = "firebase"
	BackendRedis    = "redis"
)

type Config struct {
	// Server
	Port         string `env:"PORT" envDefault:"8080"`
	CORSOrigins  string `env:"CORS_ORIGINS" envDefault:"*"`
	PublicOrigin string `env:"PUBLIC_ORIGIN"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`
	SentryDSN    string `env:"SENTRY_DSN"`
	SupportEmail string `env:"SUPPORT_EMAIL" envDefault:"support@resqr.co.in"`

	// Profile store
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`

	// Database (postgres backend)
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"resqr"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Firebase realtime database (firebase backend)
	FirebaseDatabaseURL     string        `env:"FIREBASE_DATABASE_URL"`
	FirebaseCredentialsFile string        `env:"FIREBASE_CREDENTIALS_FILE"`
	FirebasePollInterval    time.Duration `env:"FIREBASE_POLL_INTERVAL" envDefault:"3s"`

	// Wizard drafts
	DraftBackend  string        `env:"DRAFT_BACKEND" envDefault:"memory"`
	DraftTTL      time.Duration `env:"DRAFT_TTL" envDefault:"24h"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	// Identity provider tokens are verified, never issued, here.
	JWTSecret string `env:"JWT_SECRET"`

	// Admin
	AdminEmails  string `env:"ADMIN_EMAILS"`
	AdminUserIDs string `env:"ADMIN_USER_IDS"`
	AdminToken   string `env:"ADMIN_TOKEN"`

	// Hosted checkout
	CheckoutKeyID    string `env:"CHECKOUT_KEY_ID"`
	CheckoutCurrency string `env:"CHECKOUT_CURRENCY" envDefault:"INR"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD is required for the postgres store")
		}
	case BackendFirebase:
		if c.FirebaseDatabaseURL == "" {
			return errors.New("FIREBASE_DATABASE_URL is required for the firebase store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.DraftBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown DRAFT_BACKEND %q", c.DraftBackend)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
