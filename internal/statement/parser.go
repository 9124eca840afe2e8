package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/ledger/internal/encoding"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching statement format")

// idNamespace seeds the ids derived for rows that carry no transaction id.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ledger/statement"))

// Result is a parsed statement.
type Result struct {
	Profile      string
	Charset      enc.Charset
	Transactions []*transaction.Transaction
}

// Parse reads a statement export. The layout is auto-detected by matching the
// header row against the known profiles, trying comma and then semicolon
// separated content. Pending rows are dropped.
func Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, comma := range []rune{',', ';'} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma)
		if profile == nil {
			continue
		}

		txs, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Result{Profile: profile.Name, Charset: charset, Transactions: txs}, nil
	}

	return nil, ErrUnknownFormat
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

// detectProfile scans rows for a header matching a profile that uses comma.
// Banks often put account details above the header, so any row may qualify.
func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma == comma && matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]*transaction.Transaction, error) {
	var (
		txs  []*transaction.Transaction
		seen = make(map[string]int)
	)

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cell(row, cols, p.DateCol), p.DateLayout)
		if !ok {
			continue
		}

		name := cell(row, cols, p.NameCol)
		if name == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		if isTrue(cell(row, cols, p.PendingCol)) {
			continue
		}

		amount, ok, err := rowAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !ok {
			continue
		}

		tx := &transaction.Transaction{
			ID:      cell(row, cols, p.IDCol),
			Date:    date,
			Account: cell(row, cols, p.AccountCol),
			Name:    name,
			Amount:  amount,
		}

		if tx.Account == "" {
			tx.Account = transaction.UnknownAccount
		}

		tx.CategoryPath = splitCategory(cell(row, cols, p.CategoryCol))
		tx.Category = transaction.JoinCategory(tx.CategoryPath)

		if tx.ID == "" {
			key := strings.Join([]string{tx.Account, date.Format(time.DateOnly), name, amount.String()}, "|")
			tx.ID = uuid.NewSHA1(idNamespace, fmt.Appendf(nil, "%s|%d", key, seen[key])).String()
			seen[key]++
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

// rowAmount returns the signed amount of row. ok is false when the row carries no
// amount at all; an amount cell that does not parse is an error.
func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool, error) {
	switch p.AmountMode {
	case amountSingle:
		s := cell(row, cols, p.AmountCol)
		if s == "" {
			return decimal.Zero, false, nil
		}

		d, err := parseAmount(s, p.DecimalComma)
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("invalid amount %q: %w", s, err)
		}

		if p.CreditPositive {
			d = d.Neg()
		}

		return d, true, nil
	case amountSplit:
		debit, hasDebit, err := splitCell(p, cols, row, p.DebitCol)
		if err != nil {
			return decimal.Zero, false, err
		}

		credit, hasCredit, err := splitCell(p, cols, row, p.CreditCol)
		if err != nil {
			return decimal.Zero, false, err
		}

		switch {
		case hasCredit && !credit.IsZero():
			return credit.Abs().Neg(), true, nil
		case hasDebit:
			return debit.Abs(), true, nil
		case hasCredit:
			return decimal.Zero, true, nil
		}
	}

	return decimal.Zero, false, nil
}

func splitCell(p *Profile, cols colIndex, row []string, name string) (decimal.Decimal, bool, error) {
	s := cell(row, cols, name)
	if s == "" {
		return decimal.Zero, false, nil
	}

	d, err := parseAmount(s, p.DecimalComma)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, true, nil
}

// parseDate returns false for empty or unparseable cells, such as footer rows.
func parseDate(s, layout string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return transaction.Day(t), true
}

func splitCategory(s string) []string {
	var path []string

	for part := range strings.SplitSeq(s, ">") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}

	return path
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}

	return false
}

// cell returns the trimmed value of column name, or "" when the profile or the
// row lacks it.
func cell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
