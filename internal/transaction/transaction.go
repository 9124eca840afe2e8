package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	UnknownAccount = "Unknown Account"
	Uncategorized  = "Uncategorized"

	// CategorySeparator joins a category path into a single display string.
	CategorySeparator = " > "
)

var (
	// ErrReauthRequired is returned by a Source when the bank connection must be re-linked.
	ErrReauthRequired = errors.New("bank connection needs re-authentication")

	ErrSourceUnavailable = errors.New("transaction source unavailable")
)

// Transaction is a settled bank or card transaction as reported by the upstream aggregator.
//
// Amount follows the aggregator's sign convention: a negative amount is money
// coming in (income, refunds, credits) and a positive amount is money going out.
type Transaction struct {
	ID           string
	Date         time.Time // civil date at 00:00 UTC
	Account      string
	Name         string
	Category     string
	CategoryPath []string
	Amount       decimal.Decimal
	Pending      bool
}

// IsIncome reports whether the transaction brings money in.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsNegative()
}

// Day truncates t to its civil date in UTC, dropping any clock time.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// JoinCategory renders a category path for display.
func JoinCategory(path []string) string {
	if len(path) == 0 {
		return Uncategorized
	}

	return strings.Join(path, CategorySeparator)
}
