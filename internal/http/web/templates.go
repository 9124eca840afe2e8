package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return ledger.Format(d) },
	"date":  func(t time.Time) string { return t.Format(ledger.DateLayout) },
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
