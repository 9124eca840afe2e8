package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// Totals are exact sums over the included transactions of a window.
type Totals struct {
	Income                decimal.Decimal
	Expenses              decimal.Decimal
	Net                   decimal.Decimal
	ExpensesExcludingRent decimal.Decimal
	Count                 int
}

// Summarize sums the transactions dated inside w whose id is not in excluded.
// Negative amounts are income, everything else (zero included) is an expense.
// noRent may be nil; when set, matching expenses are left out of
// ExpensesExcludingRent only.
func Summarize(txs []*transaction.Transaction, w Window, excluded IDSet, noRent Rule) Totals {
	var (
		income   = decimal.Zero
		expenses = decimal.Zero
		rent     = decimal.Zero
		count    int
	)

	for _, tx := range txs {
		if tx == nil || !w.Contains(tx.Date) || excluded.Has(tx.ID) {
			continue
		}

		count++

		if tx.Amount.IsNegative() {
			income = income.Sub(tx.Amount)
			continue
		}

		expenses = expenses.Add(tx.Amount)

		if noRent != nil && noRent.Match(tx) {
			rent = rent.Add(tx.Amount)
		}
	}

	return Totals{
		Income:                income,
		Expenses:              expenses,
		Net:                   income.Sub(expenses),
		ExpensesExcludingRent: expenses.Sub(rent),
		Count:                 count,
	}
}

// Format renders an amount with two decimal places. Rounding happens here and
// nowhere earlier.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
