package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses "1,234.56" or, with decimalComma, "1.234,56". Currency
// symbols and surrounding spaces are ignored; "(12.00)" is negative.
func parseAmount(s string, decimalComma bool) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.NewReplacer("$", "", "€", "", "£", "", " ", "").Replace(clean)

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
