package ledger

import "github.com/shopspring/decimal"

// Classification is the exclusion state of a transaction for the primary totals.
type Classification int

const (
	Included Classification = iota
	ManuallyExcluded
	AutoExcluded
)

func (c Classification) String() string {
	switch c {
	case Included:
		return "included"
	case ManuallyExcluded:
		return "manually_excluded"
	case AutoExcluded:
		return "auto_excluded"
	}

	return "unknown"
}

// Excluded reports whether the transaction is left out of totals.
func (c Classification) Excluded() bool {
	return c != Included
}

// Classify places id in exactly one classification. A manual exclusion takes
// precedence over an automatic one so the user can always undo their own action.
func Classify(id string, manual, auto IDSet) Classification {
	switch {
	case manual.Has(id):
		return ManuallyExcluded
	case auto.Has(id):
		return AutoExcluded
	}

	return Included
}

// Kind is the direction of money for display purposes.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// KindOf maps an amount to its kind. Zero counts as an expense.
func KindOf(amount decimal.Decimal) Kind {
	if amount.IsNegative() {
		return KindIncome
	}

	return KindExpense
}
