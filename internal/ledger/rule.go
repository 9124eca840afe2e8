package ledger

import (
	"strings"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// Rule is a pure predicate over a single transaction.
type Rule interface {
	Match(tx *transaction.Transaction) bool
}

type RuleFunc func(tx *transaction.Transaction) bool

func (f RuleFunc) Match(tx *transaction.Transaction) bool { return f(tx) }

// Field selects which transaction text a KeywordRule looks at.
type Field int

const (
	FieldCategory Field = iota
	FieldName
)

// DefaultRentKeywords drive the "expenses without rent" figure unless configured otherwise.
var DefaultRentKeywords = []string{"rent"}

// KeywordRule matches when any keyword is a case-insensitive substring of any of
// the selected fields.
type KeywordRule struct {
	keywords []string
	fields   []Field
}

// NewKeywordRule builds a rule from keywords, ignoring blank entries. With no fields
// given both category and name are searched.
func NewKeywordRule(keywords []string, fields ...Field) KeywordRule {
	kws := make([]string, 0, len(keywords))

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kws = append(kws, k)
		}
	}

	if len(fields) == 0 {
		fields = []Field{FieldCategory, FieldName}
	}

	return KeywordRule{keywords: kws, fields: fields}
}

// NewRentRule returns the rule used for the rent-free expense figure.
func NewRentRule(keywords []string) KeywordRule {
	if len(keywords) == 0 {
		keywords = DefaultRentKeywords
	}

	return NewKeywordRule(keywords)
}

func (r KeywordRule) Keywords() []string {
	return r.keywords
}

func (r KeywordRule) Match(tx *transaction.Transaction) bool {
	if tx == nil {
		return false
	}

	for _, f := range r.fields {
		var text string

		switch f {
		case FieldCategory:
			text = tx.Category
		case FieldName:
			text = tx.Name
		}

		text = strings.ToLower(text)
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
	}

	return false
}
