package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

func newExportCommand(load Loader) *cobra.Command {
	var (
		startDate string
		endDate   string
		format    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the transactions of a date range as CSV or a text summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "csv" && format != "text" {
				return fmt.Errorf("--format must be csv or text, got %q", format)
			}

			return withApp(cmd.Context(), load, func(ctx context.Context, a *app.App) error {
				v, err := a.Export.Export(ctx, ledger.Request{
					Owner:     a.Owner(),
					Today:     time.Now(),
					StartDate: startDate,
					EndDate:   endDate,
				})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if output != "" && output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating %s: %w", output, err)
					}
					defer f.Close()

					w = f
				}

				return writeExport(w, format, v.Filtered)
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD), defaults to this week's Monday")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")

	return cmd
}

func writeExport(w io.Writer, format string, rows []ledger.Row) error {
	if format == "text" {
		_, err := io.WriteString(w, export.Summary(rows))
		return err
	}

	return export.WriteCSV(w, rows)
}
