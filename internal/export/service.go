// Package export writes the transactions of a ledger view as a CSV statement or a
// plain-text summary.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

// Header matches the plaid statement profile so an export can be read back as a
// CSV source.
var Header = []string{"date", "name", "amount", "category", "account", "transaction_id", "pending", "status"}

type Builder interface {
	Build(ctx context.Context, req ledger.Request) *ledger.View
}

// Service handles the export of ledger rows.
type Service struct {
	ledger Builder
}

func NewService(b Builder) *Service {
	return &Service{ledger: b}
}

// Export returns the rows inside the request's filter window, newest first. It
// fails when the transactions could not be loaded so a partial file is never
// written.
func (s *Service) Export(ctx context.Context, req ledger.Request) (*ledger.View, error) {
	v := s.ledger.Build(ctx, req)
	if !v.Loaded() {
		return v, fmt.Errorf("building ledger view: %w", v.Err)
	}

	return v, nil
}

// WriteCSV writes rows with Header as the first line.
func WriteCSV(w io.Writer, rows []ledger.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		tx := r.Transaction
		record := []string{
			tx.Date.Format(ledger.DateLayout),
			tx.Name,
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Account,
			tx.ID,
			strconv.FormatBool(tx.Pending),
			r.Class.String(),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders one line per row, the way it would be pasted into an email.
func Summary(rows []ledger.Row) string {
	var sb strings.Builder

	for _, r := range rows {
		tx := r.Transaction

		sign := "-"
		if r.Kind == ledger.KindIncome {
			sign = "+"
		}

		status := "counted"
		if r.Class.Excluded() {
			status = "excluded"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			tx.Date.Format(ledger.DateLayout), tx.Name, sign, ledger.Format(tx.Amount.Abs()), status)
	}

	return sb.String()
}
