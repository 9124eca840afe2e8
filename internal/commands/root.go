// Package commands implements the ledgerctl command line.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/config"
)

// Loader supplies the configuration every command runs with.
type Loader func() (*config.Config, error)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(load Loader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect ledger totals and manage manual exclusions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newSummaryCommand(load),
		newExcludeCommand(load),
		newIncludeCommand(load),
		newClearCommand(load),
		newListCommand(load),
		newExportCommand(load),
		newMigrateCommand(load),
	)

	return rootCmd
}

func loadConfig(load Loader) (*config.Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// withApp runs fn against a freshly assembled app and closes it afterwards.
func withApp(ctx context.Context, load Loader, fn func(context.Context, *app.App) error) (err error) {
	cfg, err := loadConfig(load)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("starting app: %w", err)
	}

	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing app: %w", cerr)
		}
	}()

	return fn(ctx, a)
}
