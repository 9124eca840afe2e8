package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "Monday", in: date(2024, 3, 4), want: date(2024, 3, 4)},
		{name: "Wednesday", in: date(2024, 3, 6), want: date(2024, 3, 4)},
		{name: "Sunday", in: date(2024, 3, 10), want: date(2024, 3, 4)},
		{name: "CrossesMonth", in: date(2024, 3, 2), want: date(2024, 2, 26)},
		{name: "DropsClock", in: time.Date(2024, 3, 6, 18, 45, 0, 0, time.UTC), want: date(2024, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.WeekStart(tt.in))
		})
	}
}

func TestResolveWeek(t *testing.T) {
	today := date(2024, 3, 6)

	week := ledger.ResolveWeek(date(2024, 3, 4), today)
	assert.Equal(t, date(2024, 3, 4), week.Start)
	assert.Equal(t, date(2024, 3, 10), week.End)
	assert.Equal(t, date(2024, 2, 26), week.Prev)
	assert.Equal(t, date(2024, 3, 11), week.Next)
	assert.True(t, week.IsCurrent)

	prev := ledger.ResolveWeek(week.Prev, today)
	assert.False(t, prev.IsCurrent)
	assert.Equal(t, date(2024, 3, 3), prev.End)

	snapped := ledger.ResolveWeek(date(2024, 3, 8), today)
	assert.Equal(t, week.Window, snapped.Window)
}

func TestResolveWeek_NavigationIsReversible(t *testing.T) {
	today := date(2024, 3, 6)
	start := date(2023, 12, 25)

	for range 60 {
		week := ledger.ResolveWeek(start, today)
		next := ledger.ResolveWeek(week.Next, today)
		back := ledger.ResolveWeek(next.Prev, today)

		require.Equal(t, week.Start, back.Start)

		start = week.Next
	}
}

func TestMonthToDate(t *testing.T) {
	w := ledger.MonthToDate(date(2024, 3, 1))
	assert.Equal(t, w.Start, w.End)
	assert.Equal(t, date(2024, 3, 1), w.Start)

	w = ledger.MonthToDate(time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 2, 1), w.Start)
	assert.Equal(t, date(2024, 2, 29), w.End)
}

func TestParseRange(t *testing.T) {
	today := date(2024, 3, 6)
	def := ledger.NewWindow(date(2024, 3, 4), today)

	tests := []struct {
		name    string
		start   string
		end     string
		want    ledger.Window
		wantErr error
	}{
		{name: "Default", want: def},
		{name: "Explicit", start: "2024-02-01", end: "2024-02-15", want: ledger.NewWindow(date(2024, 2, 1), date(2024, 2, 15))},
		{name: "OnlyStart", start: "2024-03-01", want: ledger.NewWindow(date(2024, 3, 1), today)},
		{name: "OnlyStartAfterToday", start: "2024-03-20", want: ledger.NewWindow(date(2024, 3, 20), date(2024, 3, 20))},
		{name: "OnlyEnd", end: "2024-03-05", want: ledger.NewWindow(date(2024, 3, 4), date(2024, 3, 5))},
		{name: "BadStart", start: "03/01/2024", end: "2024-03-05", want: def, wantErr: ledger.ErrInvalidDate},
		{name: "BadEnd", start: "2024-03-01", end: "tomorrow", want: def, wantErr: ledger.ErrInvalidDate},
		{name: "Reversed", start: "2024-03-05", end: "2024-03-01", want: ledger.NewWindow(date(2024, 3, 5), date(2024, 3, 1)), wantErr: ledger.ErrReversedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseRange(tt.start, tt.end, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWeek(t *testing.T) {
	today := date(2024, 3, 6)

	week, err := ledger.ParseWeek("", today)
	require.NoError(t, err)
	assert.True(t, week.IsCurrent)

	week, err = ledger.ParseWeek("2024-02-19", today)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 19), week.Start)
	assert.False(t, week.IsCurrent)

	week, err = ledger.ParseWeek("not-a-date", today)
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)
	assert.True(t, week.IsCurrent)
}

func TestWindow(t *testing.T) {
	w := ledger.NewWindow(date(2024, 3, 4), date(2024, 3, 10))

	assert.True(t, w.Contains(date(2024, 3, 4)))
	assert.True(t, w.Contains(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(date(2024, 3, 11)))
	assert.False(t, w.Contains(date(2024, 3, 3)))

	empty := ledger.NewWindow(date(2024, 3, 10), date(2024, 3, 4))
	assert.True(t, empty.Empty())
	assert.False(t, empty.Contains(date(2024, 3, 6)))

	assert.Equal(t, w, w.Union(empty))
	assert.Equal(t, w, empty.Union(w))

	month := ledger.NewWindow(date(2024, 3, 1), date(2024, 3, 6))
	assert.Equal(t, ledger.NewWindow(date(2024, 3, 1), date(2024, 3, 10)), w.Union(month))

	assert.Equal(t, ledger.NewWindow(date(2024, 3, 4), date(2024, 3, 6)), w.Clamp(date(2024, 3, 6)))
	assert.Equal(t, "2024-03-04..2024-03-10", w.String())
}
