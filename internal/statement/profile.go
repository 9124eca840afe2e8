package statement

import "time"

type amountMode int

const (
	// amountSingle is one signed column.
	amountSingle amountMode = iota
	// amountSplit is separate debit and credit columns, both unsigned.
	amountSplit
)

// Profile describes the column layout of a statement export. Column names are
// matched case-insensitively after trimming.
type Profile struct {
	Name       string
	Comma      rune
	DateLayout string
	// DecimalComma marks amounts written as "1.234,56".
	DecimalComma bool

	DateCol     string
	NameCol     string
	IDCol       string
	AccountCol  string
	CategoryCol string
	PendingCol  string

	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string

	// CreditPositive marks exports where money in is positive; amounts are
	// negated so that income is negative like in the Plaid feed.
	CreditPositive bool
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.NameCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "plaid",
		Comma:       ',',
		DateLayout:  time.DateOnly,
		DateCol:     "date",
		NameCol:     "name",
		IDCol:       "transaction_id",
		AccountCol:  "account",
		CategoryCol: "category",
		PendingCol:  "pending",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
	},
	{
		Name:       "split",
		Comma:      ',',
		DateLayout: time.DateOnly,
		DateCol:    "date",
		NameCol:    "description",
		AccountCol: "account",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:           "bank",
		Comma:          ',',
		DateLayout:     "01/02/2006",
		DateCol:        "posting date",
		NameCol:        "description",
		CategoryCol:    "type",
		AmountMode:     amountSingle,
		AmountCol:      "amount",
		CreditPositive: true,
	},
	{
		Name:           "conta",
		Comma:          ';',
		DateLayout:     "02-01-2006",
		DecimalComma:   true,
		DateCol:        "data mov.",
		NameCol:        "descrição",
		AmountMode:     amountSingle,
		AmountCol:      "montante",
		CreditPositive: true,
	},
	{
		Name:         "cartão",
		Comma:        ';',
		DateLayout:   "02-01-2006",
		DecimalComma: true,
		DateCol:      "data",
		NameCol:      "descrição",
		AmountMode:   amountSplit,
		DebitCol:     "débito",
		CreditCol:    "crédito",
	},
}
