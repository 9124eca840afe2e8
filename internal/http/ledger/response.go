package ledger

import (
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

type windowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type weekResponse struct {
	windowResponse
	Prev      string `json:"prev"`
	Next      string `json:"next"`
	IsCurrent bool   `json:"is_current"`
}

// Amounts are rendered with two decimals so clients never see float rounding.
type totalsResponse struct {
	Income                string `json:"income"`
	Expenses              string `json:"expenses"`
	Net                   string `json:"net"`
	ExpensesExcludingRent string `json:"expenses_excluding_rent"`
	Count                 int    `json:"count"`
}

type transactionResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Account  string `json:"account"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	NoRent   bool   `json:"no_rent,omitempty"`
}

type ledgerResponse struct {
	Today  string         `json:"today"`
	Week   weekResponse   `json:"week"`
	Month  windowResponse `json:"month"`
	Filter windowResponse `json:"filter"`

	WeekTotals   totalsResponse `json:"week_totals"`
	MonthTotals  totalsResponse `json:"month_totals"`
	FilterTotals totalsResponse `json:"filter_totals"`

	Transactions []transactionResponse `json:"transactions"`
	Filtered     []transactionResponse `json:"filtered"`

	ManualExcluded        []string `json:"manual_excluded"`
	CombinedExcluded      []string `json:"combined_excluded"`
	ManualExcludedCount   int      `json:"manual_excluded_count"`
	CombinedExcludedCount int      `json:"combined_excluded_count"`

	Notices []flash.Message `json:"notices,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

func toWindow(w ledger.Window) windowResponse {
	return windowResponse{Start: day(w.Start), End: day(w.End)}
}

func toTotals(t ledger.Totals) totalsResponse {
	return totalsResponse{
		Income:                ledger.Format(t.Income),
		Expenses:              ledger.Format(t.Expenses),
		Net:                   ledger.Format(t.Net),
		ExpensesExcludingRent: ledger.Format(t.ExpensesExcludingRent),
		Count:                 t.Count,
	}
}

func toRows(rows []ledger.Row) []transactionResponse {
	resp := make([]transactionResponse, len(rows))
	for i, r := range rows {
		resp[i] = transactionResponse{
			ID:       r.Transaction.ID,
			Date:     day(r.Transaction.Date),
			Account:  r.Transaction.Account,
			Name:     r.Transaction.Name,
			Category: r.Transaction.Category,
			Amount:   ledger.Format(r.Transaction.Amount),
			Kind:     string(r.Kind),
			Status:   r.Class.String(),
			NoRent:   r.NoRent,
		}
	}

	return resp
}

func toResponse(v *ledger.View) ledgerResponse {
	resp := ledgerResponse{
		Today: day(v.Today),
		Week: weekResponse{
			windowResponse: toWindow(v.Week.Window),
			Prev:           day(v.Week.Prev),
			Next:           day(v.Week.Next),
			IsCurrent:      v.Week.IsCurrent,
		},
		Month:  toWindow(v.Month),
		Filter: toWindow(v.Filter),

		WeekTotals:   toTotals(v.WeekTotals),
		MonthTotals:  toTotals(v.MonthTotals),
		FilterTotals: toTotals(v.FilterTotals),

		Transactions: toRows(v.Rows),
		Filtered:     toRows(v.Filtered),

		ManualExcluded:        v.Manual.Sorted(),
		CombinedExcluded:      v.Combined.Sorted(),
		ManualExcludedCount:   v.ManualCount(),
		CombinedExcludedCount: v.CombinedCount(),

		Notices: v.Notices,
	}

	if v.Err != nil {
		resp.Error = v.Err.Error()
	}

	return resp
}
