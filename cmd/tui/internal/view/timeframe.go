package view

import (
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

// Timeframe selects which window of a ledger view the table shows.
type Timeframe int

const (
	TimeframeWeek Timeframe = iota
	TimeframeMonth
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeWeek:
		return "Week"
	case TimeframeMonth:
		return "Month to Date"
	}

	return "Unknown"
}

// Toggle switches between the week and month-to-date windows.
func (t Timeframe) Toggle() Timeframe {
	if t == TimeframeWeek {
		return TimeframeMonth
	}

	return TimeframeWeek
}

// Window returns the window of v selected by t.
func (t Timeframe) Window(v *ledger.View) ledger.Window {
	if t == TimeframeMonth {
		return v.Month
	}

	return v.Week.Window
}

// Totals returns the totals of v selected by t.
func (t Timeframe) Totals(v *ledger.View) ledger.Totals {
	if t == TimeframeMonth {
		return v.MonthTotals
	}

	return v.WeekTotals
}

// Rows returns the rows of v dated inside the window selected by t, newest first.
func (t Timeframe) Rows(v *ledger.View) []ledger.Row {
	w := t.Window(v)

	var rows []ledger.Row
	for _, r := range v.Rows {
		if w.Contains(r.Transaction.Date) {
			rows = append(rows, r)
		}
	}

	return rows
}

// weekParam turns a week anchor into the raw value ledger.Request expects.
// The zero time selects the current week.
func weekParam(ws time.Time) string {
	if ws.IsZero() {
		return ""
	}

	return ws.Format(ledger.DateLayout)
}
