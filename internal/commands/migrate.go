package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/database"
)

func newMigrateCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the exclusion store schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if cfg.Store.Kind != config.StorePostgres {
				return fmt.Errorf("migrate needs EXCLUSION_STORE=%s, got %q", config.StorePostgres, cfg.Store.Kind)
			}

			dir := database.Direction(args[0])
			if err := database.Migrate(cfg.ConnectionString(), dir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s.\n", dir)

			return nil
		},
	}
}
