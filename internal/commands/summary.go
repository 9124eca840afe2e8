package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

type summaryOptions struct {
	today     string
	weekStart string
	startDate string
	endDate   string
	rows      bool
}

func newSummaryCommand(load Loader) *cobra.Command {
	var opts summaryOptions

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print week, month-to-date and filter totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today := time.Now()
			if opts.today != "" {
				t, err := time.Parse(ledger.DateLayout, opts.today)
				if err != nil {
					return fmt.Errorf("parsing --today: %w", err)
				}
				today = t
			}

			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				v := a.Ledger.Build(ctx, ledger.Request{
					Owner:     a.Owner(),
					Today:     today,
					StartDate: opts.startDate,
					EndDate:   opts.endDate,
					WeekStart: opts.weekStart,
				})

				printSummary(cmd.OutOrStdout(), v, opts.rows)

				if !v.Loaded() {
					return v.Err
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.today, "today", "", "reference date (YYYY-MM-DD), defaults to the current date")
	cmd.Flags().StringVar(&opts.weekStart, "week", "", "Monday of the week to summarize (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.startDate, "start", "", "filter start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.endDate, "end", "", "filter end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.rows, "rows", false, "list the transactions inside the filter")

	return cmd
}

func printSummary(w io.Writer, v *ledger.View, rows bool) {
	for _, n := range v.Notices {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Text)
	}

	if !v.Loaded() {
		fmt.Fprintln(w, "No transaction data available.")
		return
	}

	printTotals(w, "Week "+v.Week.String(), v.WeekTotals)
	printTotals(w, "Month "+v.Month.String(), v.MonthTotals)
	printTotals(w, "Filter "+v.Filter.String(), v.FilterTotals)

	fmt.Fprintf(w, "Excluded: %d manual, %d total\n", v.ManualCount(), v.CombinedCount())

	if !rows {
		return
	}

	for _, r := range v.Filtered {
		tx := r.Transaction
		mark := " "
		if r.Class.Excluded() {
			mark = "x"
		}

		fmt.Fprintf(w, "%s %s %-10s %12s  %s\n", mark, tx.Date.Format(ledger.DateLayout), tx.ID, ledger.Format(tx.Amount), tx.Name)
	}
}

func printTotals(w io.Writer, title string, t ledger.Totals) {
	fmt.Fprintf(w, "%s\n  income %s  expenses %s  net %s  expenses (no rent) %s  (%d transactions)\n",
		title,
		ledger.Format(t.Income),
		ledger.Format(t.Expenses),
		ledger.Format(t.Net),
		ledger.Format(t.ExpensesExcludingRent),
		t.Count,
	)
}
