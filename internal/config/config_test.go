package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.App.Port)
	assert.Equal(t, "default", cfg.App.Ledger)
	assert.Equal(t, config.StorePostgres, cfg.Store.Kind)
	assert.Equal(t, config.SourcePlaid, cfg.Source.Kind)
	assert.Equal(t, 15*time.Second, cfg.Plaid.Timeout)
	assert.Equal(t, []string{"rent"}, cfg.Rules.NoRentKeywords)
	assert.Equal(t, 48*time.Hour, cfg.Rules.TransferWindow)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RULES_NO_RENT_KEYWORDS", "rent,landlord")
	t.Setenv("TRANSACTION_SOURCE", "csv")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"rent", "landlord"}, cfg.Rules.NoRentKeywords)
	assert.Equal(t, config.SourceCSV, cfg.Source.Kind)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.Store.Kind = config.StoreMemory
		cfg.Source.Kind = config.SourcePlaid
		cfg.Plaid.Env = "sandbox"
		cfg.Plaid.ClientID = "id"
		cfg.Plaid.Secret = "secret"
		cfg.Plaid.AccessToken = "access-sandbox"
		cfg.Session.Secret = "s3cret"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(*config.Config) {}},
		{name: "BadPlaidEnv", mutate: func(c *config.Config) { c.Plaid.Env = "staging" }, wantErr: "PLAID_ENV"},
		{name: "MissingToken", mutate: func(c *config.Config) { c.Plaid.AccessToken = "" }, wantErr: "PLAID_ACCESS_TOKEN_PRIMARY"},
		{name: "CSVNeedsNoPlaid", mutate: func(c *config.Config) {
			c.Source.Kind = config.SourceCSV
			c.Source.StatementPath = "statements"
			c.Plaid = valid().Plaid
			c.Plaid.Env = "nope"
		}},
		{name: "BadStore", mutate: func(c *config.Config) { c.Store.Kind = "redis" }, wantErr: "EXCLUSION_STORE"},
		{name: "MissingSessionSecret", mutate: func(c *config.Config) { c.Session.Secret = "" }, wantErr: "SESSION_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
