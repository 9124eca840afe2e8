package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

const opTimeout = 20 * time.Second

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return ledger.Format(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// OpCtx returns a context bounded for one fetch or store round trip.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

var noticeColors = map[flash.Level]lipgloss.Color{
	flash.LevelDanger:  lipgloss.Color("196"),
	flash.LevelWarning: lipgloss.Color("214"),
	flash.LevelSuccess: lipgloss.Color("42"),
	flash.LevelInfo:    lipgloss.Color("39"),
}

func renderNotice(m flash.Message) string {
	c, ok := noticeColors[m.Level]
	if !ok {
		c = noticeColors[flash.LevelInfo]
	}

	return lipgloss.NewStyle().Foreground(c).Render(m.Text)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
