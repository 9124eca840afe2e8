package ledger

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// DefaultTransferWindow is how far apart the two legs of an internal transfer may be dated.
const DefaultTransferWindow = 2 * 24 * time.Hour

var transferNameMarkers = []string{"online transfer", "transfer from", "transfer to"}

// TransferDetector finds pairs of transfers between the user's own accounts: an
// inflow and an outflow of the same magnitude, both looking like transfers, dated
// within Window of each other. Both legs cancel out and are excluded from totals.
type TransferDetector struct {
	Window time.Duration
}

func NewTransferDetector(window time.Duration) TransferDetector {
	return TransferDetector{Window: window}
}

func isTransferCandidate(tx *transaction.Transaction) bool {
	if len(tx.CategoryPath) > 0 && strings.EqualFold(tx.CategoryPath[0], "transfer") {
		return true
	}

	name := strings.ToLower(tx.Name)
	for _, marker := range transferNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	return false
}

// Detect returns the ids of every matched transfer leg. Pairing is greedy in input
// order: each inflow takes the first unpaired outflow that qualifies.
func (d TransferDetector) Detect(txs []*transaction.Transaction) IDSet {
	excluded := NewIDSet()

	var order []string

	groups := make(map[string][]*transaction.Transaction)

	for _, tx := range txs {
		if tx == nil || tx.Amount.IsZero() || !isTransferCandidate(tx) {
			continue
		}

		key := tx.Amount.Abs().String()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}

		groups[key] = append(groups[key], tx)
	}

	for _, key := range order {
		var inflows, outflows []*transaction.Transaction

		for _, tx := range groups[key] {
			if tx.Amount.IsNegative() {
				inflows = append(inflows, tx)
			} else {
				outflows = append(outflows, tx)
			}
		}

		for _, in := range inflows {
			if excluded.Has(in.ID) {
				continue
			}

			for _, out := range outflows {
				if excluded.Has(out.ID) || !in.Amount.Neg().Equal(out.Amount) {
					continue
				}

				if absDuration(in.Date.Sub(out.Date)) > d.Window {
					continue
				}

				excluded.Add(in.ID)
				excluded.Add(out.ID)

				break
			}
		}
	}

	return excluded
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}

	return d
}
