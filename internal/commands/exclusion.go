package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
)

func newExcludeCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "exclude <transaction-id>",
		Short: "Leave a transaction out of the totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				added, err := a.Exclusions.Exclude(ctx, a.Owner(), args[0])
				if err != nil {
					return err
				}

				short := exclusion.ShortID(args[0])
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s... manually excluded.\n", short)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s... was already manually excluded.\n", short)
				}

				return nil
			})
		},
	}
}

func newIncludeCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "include <transaction-id>",
		Short: "Count a manually excluded transaction again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				removed, err := a.Exclusions.Include(ctx, a.Owner(), args[0])
				if err != nil {
					return err
				}

				short := exclusion.ShortID(args[0])
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s... re-included.\n", short)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s... was not manually excluded.\n", short)
				}

				return nil
			})
		},
	}
}

func newClearCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every manual exclusion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				n, err := a.Exclusions.Clear(ctx, a.Owner())
				if err != nil {
					return err
				}

				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No manual exclusions to clear.")
					return nil
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Manually excluded transactions reset (%d removed).\n", n)

				return nil
			})
		},
	}
}

func newListCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:     "exclusions",
		Aliases: []string{"ls"},
		Short:   "List manually excluded transaction ids",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				ids, err := a.Exclusions.List(ctx, a.Owner())
				if err != nil {
					return err
				}

				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}

				return nil
			})
		},
	}
}
