package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// DateLayout is the wire format for every date accepted from or shown to a user.
const DateLayout = time.DateOnly

var (
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrReversedRange = errors.New("end date is before start date")
)

// Window is an inclusive range of civil dates. A window whose End is before its
// Start is empty and matches nothing.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start, end time.Time) Window {
	return Window{Start: transaction.Day(start), End: transaction.Day(end)}
}

func (w Window) Empty() bool {
	return w.End.Before(w.Start)
}

func (w Window) Contains(t time.Time) bool {
	if w.Empty() {
		return false
	}

	d := transaction.Day(t)

	return !d.Before(w.Start) && !d.After(w.End)
}

// Union returns the smallest window covering both w and o. Empty windows are ignored.
func (w Window) Union(o Window) Window {
	switch {
	case w.Empty():
		return o
	case o.Empty():
		return w
	}

	u := w
	if o.Start.Before(u.Start) {
		u.Start = o.Start
	}

	if o.End.After(u.End) {
		u.End = o.End
	}

	return u
}

// Clamp trims the end of the window so it does not run past limit.
func (w Window) Clamp(limit time.Time) Window {
	limit = transaction.Day(limit)
	if w.End.After(limit) {
		w.End = limit
	}

	return w
}

func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// WeekStart returns the Monday of the week containing d. Weeks run Monday to Sunday.
func WeekStart(d time.Time) time.Time {
	d = transaction.Day(d)
	offset := (int(d.Weekday()) + 6) % 7

	return d.AddDate(0, 0, -offset)
}

// MonthToDate returns the window from the first day of today's month through today.
func MonthToDate(today time.Time) Window {
	today = transaction.Day(today)
	return Window{
		Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   today,
	}
}

// DefaultRange is the filter used when the caller supplies none: Monday of the
// current week through today.
func DefaultRange(today time.Time) Window {
	return NewWindow(WeekStart(today), today)
}

// Week is a navigable seven day window.
type Week struct {
	Window
	Prev      time.Time
	Next      time.Time
	IsCurrent bool
}

// ResolveWeek builds the week anchored at weekStart. A date that is not a Monday is
// moved back to the Monday of its week so navigation stays aligned.
func ResolveWeek(weekStart, today time.Time) Week {
	ws := WeekStart(weekStart)

	return Week{
		Window:    Window{Start: ws, End: ws.AddDate(0, 0, 6)},
		Prev:      ws.AddDate(0, 0, -7),
		Next:      ws.AddDate(0, 0, 7),
		IsCurrent: ws.Equal(WeekStart(today)),
	}
}

// ParseWeek resolves the week named by raw, a YYYY-MM-DD date. An empty value selects
// the current week; an unparsable one selects the current week and reports ErrInvalidDate.
func ParseWeek(raw string, today time.Time) (Week, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ResolveWeek(today, today), nil
	}

	ws, err := time.Parse(DateLayout, raw)
	if err != nil {
		return ResolveWeek(today, today), fmt.Errorf("week_start %q: %w", raw, ErrInvalidDate)
	}

	return ResolveWeek(ws, today), nil
}

// ParseRange resolves an explicit start/end filter. Missing bounds come from
// DefaultRange, except that a start after today with no end yields a one day
// window at start. Unparsable input falls back to DefaultRange and reports
// ErrInvalidDate. A reversed range is returned as is (empty) along with
// ErrReversedRange.
func ParseRange(startRaw, endRaw string, today time.Time) (Window, error) {
	def := DefaultRange(today)
	w := def

	if s := strings.TrimSpace(startRaw); s != "" {
		start, err := time.Parse(DateLayout, s)
		if err != nil {
			return def, fmt.Errorf("start_date %q: %w", s, ErrInvalidDate)
		}

		w.Start = start
	}

	if s := strings.TrimSpace(endRaw); s != "" {
		end, err := time.Parse(DateLayout, s)
		if err != nil {
			return def, fmt.Errorf("end_date %q: %w", s, ErrInvalidDate)
		}

		w.End = end
	} else if w.Start.After(w.End) {
		w.End = w.Start
	}

	if w.Empty() {
		return w, ErrReversedRange
	}

	return w, nil
}
