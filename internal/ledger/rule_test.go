package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

func TestKeywordRule_Match(t *testing.T) {
	tests := []struct {
		name string
		rule ledger.KeywordRule
		tx   *transaction.Transaction
		want bool
	}{
		{
			name: "CategoryCaseInsensitive",
			rule: ledger.NewRentRule(nil),
			tx:   &transaction.Transaction{Category: "Payment > RENT"},
			want: true,
		},
		{
			name: "Name",
			rule: ledger.NewRentRule(nil),
			tx:   &transaction.Transaction{Name: "Monthly rent Apt 4"},
			want: true,
		},
		{
			name: "NoMatch",
			rule: ledger.NewRentRule(nil),
			tx:   &transaction.Transaction{Name: "Coffee", Category: "Food and Drink"},
		},
		{
			name: "CustomKeywordsTrimmed",
			rule: ledger.NewRentRule([]string{" Landlord ", "", "HOA"}),
			tx:   &transaction.Transaction{Name: "hoa dues"},
			want: true,
		},
		{
			name: "NameFieldOnly",
			rule: ledger.NewKeywordRule([]string{"rent"}, ledger.FieldName),
			tx:   &transaction.Transaction{Name: "Grocer", Category: "Rent"},
		},
		{
			name: "Nil",
			rule: ledger.NewRentRule(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Match(tt.tx))
		})
	}
}

func TestNewRentRule_Defaults(t *testing.T) {
	assert.Equal(t, []string{"rent"}, ledger.NewRentRule(nil).Keywords())
	assert.Equal(t, []string{"landlord"}, ledger.NewRentRule([]string{"Landlord"}).Keywords())
}

func TestRuleFunc(t *testing.T) {
	big := ledger.RuleFunc(func(tx *transaction.Transaction) bool {
		return tx.Amount.GreaterThan(decimal.NewFromInt(1000))
	})

	assert.True(t, big.Match(&transaction.Transaction{Amount: decimal.NewFromInt(1001)}))
	assert.False(t, big.Match(&transaction.Transaction{Amount: decimal.NewFromInt(10)}))
}

func transfer(id, name string, amount string, d time.Time, category ...string) *transaction.Transaction {
	return &transaction.Transaction{
		ID:           id,
		Name:         name,
		Date:         d,
		CategoryPath: category,
		Amount:       decimal.RequireFromString(amount),
	}
}

func TestTransferDetector_Detect(t *testing.T) {
	d := date(2024, 3, 5)
	detector := ledger.NewTransferDetector(ledger.DefaultTransferWindow)

	tests := []struct {
		name string
		txs  []*transaction.Transaction
		want []string
	}{
		{
			name: "PairByName",
			txs: []*transaction.Transaction{
				transfer("out", "Online Transfer to SAV 1234", "500", d),
				transfer("in", "ONLINE TRANSFER FROM CHK 9876", "-500", d.AddDate(0, 0, 1)),
			},
			want: []string{"in", "out"},
		},
		{
			name: "PairByCategory",
			txs: []*transaction.Transaction{
				transfer("out", "Zelle", "75.10", d, "Transfer", "Debit"),
				transfer("in", "Deposit", "-75.1", d, "transfer"),
			},
			want: []string{"in", "out"},
		},
		{
			name: "TooFarApart",
			txs: []*transaction.Transaction{
				transfer("out", "transfer to savings", "500", d),
				transfer("in", "transfer from checking", "-500", d.AddDate(0, 0, 3)),
			},
		},
		{
			name: "DifferentAmounts",
			txs: []*transaction.Transaction{
				transfer("out", "transfer to savings", "500", d),
				transfer("in", "transfer from checking", "-499.99", d),
			},
		},
		{
			name: "NotTransfers",
			txs: []*transaction.Transaction{
				transfer("out", "Landlord", "500", d, "Payment"),
				transfer("in", "Payroll", "-500", d),
			},
		},
		{
			name: "SameDirection",
			txs: []*transaction.Transaction{
				transfer("a", "transfer to savings", "500", d),
				transfer("b", "transfer to brokerage", "500", d),
			},
		},
		{
			name: "EachLegPairedOnce",
			txs: []*transaction.Transaction{
				transfer("out1", "transfer to savings", "100", d),
				transfer("out2", "transfer to savings", "100", d),
				transfer("in1", "transfer from checking", "-100", d),
			},
			want: []string{"in1", "out1"},
		},
		{
			name: "ZeroIgnored",
			txs: []*transaction.Transaction{
				transfer("a", "transfer to savings", "0", d),
				transfer("b", "transfer from checking", "0", d),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.Detect(tt.txs)
			if len(tt.want) == 0 {
				assert.Zero(t, got.Len())
				return
			}

			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestClassify(t *testing.T) {
	manual := ledger.NewIDSet("m", "both")
	auto := ledger.NewIDSet("a", "both")

	assert.Equal(t, ledger.Included, ledger.Classify("x", manual, auto))
	assert.Equal(t, ledger.ManuallyExcluded, ledger.Classify("m", manual, auto))
	assert.Equal(t, ledger.AutoExcluded, ledger.Classify("a", manual, auto))
	assert.Equal(t, ledger.ManuallyExcluded, ledger.Classify("both", manual, auto))
	assert.Equal(t, ledger.Included, ledger.Classify("x", nil, nil))

	assert.False(t, ledger.Included.Excluded())
	assert.True(t, ledger.AutoExcluded.Excluded())
	assert.Equal(t, "manually_excluded", ledger.ManuallyExcluded.String())
}

func TestClassify_ExcludedNeverCounted(t *testing.T) {
	d := date(2024, 3, 5)
	txs := []*transaction.Transaction{
		tx("inc", "-10", d),
		tx("exp", "4", d),
		tx("man", "7", d),
		tx("auto", "-3", d),
	}
	manual := ledger.NewIDSet("man")
	auto := ledger.NewIDSet("auto")
	combined := manual.Union(auto)

	totals := ledger.Summarize(txs, ledger.NewWindow(d, d), combined, nil)

	included := 0
	for _, x := range txs {
		if ledger.Classify(x.ID, manual, auto) == ledger.Included {
			included++
		}
	}

	assert.Equal(t, included, totals.Count)
	assert.Equal(t, "10.00", ledger.Format(totals.Income))
	assert.Equal(t, "4.00", ledger.Format(totals.Expenses))
}

func TestIDSet(t *testing.T) {
	s := ledger.NewIDSet("b", "a")
	s.Add("c")
	s.Add("a")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())

	u := s.Union(ledger.NewIDSet("d"))
	assert.Equal(t, 4, u.Len())
	assert.Equal(t, 3, s.Len())

	var empty ledger.IDSet
	assert.False(t, empty.Has("a"))
	assert.Equal(t, 0, empty.Len())
}
