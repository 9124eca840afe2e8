// Package app assembles the services shared by the web server, the TUI and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/database"
	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/exclusion/memory"
	exclusionStore "github.com/MrJamesThe3rd/ledger/internal/exclusion/store"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/plaid"
	"github.com/MrJamesThe3rd/ledger/internal/statement"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

type App struct {
	Config       *config.Config
	Transactions *transaction.Service
	Exclusions   *exclusion.Service
	Ledger       *ledger.Service
	Export       *export.Service
	Flash        *flash.Store

	// Statements is set when transactions come from CSV statements.
	Statements *statement.Source

	closers []func() error
}

// New builds the services described by cfg. Callers must Close the result.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	source, err := a.newSource(cfg)
	if err != nil {
		return nil, err
	}

	repo, err := a.newRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	flashStore, err := flash.NewStore([]byte(cfg.Session.Secret))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("creating flash store: %w", err)
	}

	a.Flash = flashStore.Secure(cfg.Session.SecureCookie)
	a.Transactions = transaction.NewService(source, cfg.Cache.TTL)
	a.Exclusions = exclusion.NewService(repo)
	a.Ledger = ledger.NewService(
		a.Transactions,
		a.Exclusions,
		ledger.NewRentRule(cfg.Rules.NoRentKeywords),
		ledger.NewTransferDetector(cfg.Rules.TransferWindow),
	)
	a.Export = export.NewService(a.Ledger)

	return a, nil
}

// Owner is the exclusion scope of this deployment.
func (a *App) Owner() string {
	return a.Config.App.Ledger
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}

	a.closers = nil

	return errors.Join(errs...)
}

func (a *App) newSource(cfg *config.Config) (transaction.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceCSV:
		slog.Info("reading transactions from statements", "path", cfg.Source.StatementPath)
		a.Statements = statement.NewSource(cfg.Source.StatementPath)
		return a.Statements, nil
	case config.SourcePlaid:
		client, err := plaid.NewClient(plaid.Config{
			ClientID:     cfg.Plaid.ClientID,
			Secret:       cfg.Plaid.Secret,
			Env:          plaid.Environment(strings.ToLower(cfg.Plaid.Env)),
			AccessTokens: []string{cfg.Plaid.AccessToken},
			Timeout:      cfg.Plaid.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("creating plaid client: %w", err)
		}

		slog.Info("reading transactions from plaid", "env", cfg.Plaid.Env)

		return client, nil
	}

	return nil, fmt.Errorf("unknown transaction source %q", cfg.Source.Kind)
}

func (a *App) newRepository(ctx context.Context, cfg *config.Config) (exclusion.Repository, error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		slog.Warn("exclusions are kept in memory and lost on restart")
		return memory.New(), nil
	case config.StorePostgres:
		if err := database.Migrate(cfg.ConnectionString(), database.Up); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.closers = append(a.closers, db.Close)

		return exclusionStore.New(db), nil
	}

	return nil, fmt.Errorf("unknown exclusion store %q", cfg.Store.Kind)
}
