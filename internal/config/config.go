package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	SourcePlaid = "plaid"
	SourceCSV   = "csv"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Ledger"`
		Port     int    `envconfig:"PORT" default:"5001"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// Ledger scopes the persisted exclusions.
		Ledger string `envconfig:"LEDGER_NAME" default:"default"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ledger"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5001"`
	}

	Store struct {
		Kind string `envconfig:"EXCLUSION_STORE" default:"postgres"`
	}

	Source struct {
		Kind          string `envconfig:"TRANSACTION_SOURCE" default:"plaid"`
		StatementPath string `envconfig:"STATEMENT_PATH" default:"statements"`
	}

	Plaid struct {
		ClientID    string        `envconfig:"PLAID_CLIENT_ID"`
		Secret      string        `envconfig:"PLAID_SECRET"`
		Env         string        `envconfig:"PLAID_ENV" default:"sandbox"`
		AccessToken string        `envconfig:"PLAID_ACCESS_TOKEN_PRIMARY"`
		Timeout     time.Duration `envconfig:"PLAID_TIMEOUT" default:"15s"`
	}

	Session struct {
		Secret       string `envconfig:"SESSION_SECRET"`
		SecureCookie bool   `envconfig:"SESSION_SECURE_COOKIE" default:"false"`
	}

	Rules struct {
		NoRentKeywords []string      `envconfig:"RULES_NO_RENT_KEYWORDS" default:"rent"`
		TransferWindow time.Duration `envconfig:"RULES_TRANSFER_WINDOW" default:"48h"`
	}

	Cache struct {
		TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Validate reports settings that would only fail later, at the first request.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Kind {
	case StorePostgres, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("EXCLUSION_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store.Kind))
	}

	switch c.Source.Kind {
	case SourcePlaid:
		switch strings.ToLower(c.Plaid.Env) {
		case "sandbox", "development", "production":
		default:
			errs = append(errs, fmt.Errorf("PLAID_ENV must be sandbox, development or production, got %q", c.Plaid.Env))
		}

		if c.Plaid.ClientID == "" || c.Plaid.Secret == "" {
			errs = append(errs, errors.New("PLAID_CLIENT_ID and PLAID_SECRET are required"))
		}

		if c.Plaid.AccessToken == "" {
			errs = append(errs, errors.New("PLAID_ACCESS_TOKEN_PRIMARY is required"))
		}
	case SourceCSV:
		if c.Source.StatementPath == "" {
			errs = append(errs, errors.New("STATEMENT_PATH is required for the csv source"))
		}
	default:
		errs = append(errs, fmt.Errorf("TRANSACTION_SOURCE must be %q or %q, got %q", SourcePlaid, SourceCSV, c.Source.Kind))
	}

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}

	if c.Rules.TransferWindow < 0 {
		errs = append(errs, errors.New("RULES_TRANSFER_WINDOW must not be negative"))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
