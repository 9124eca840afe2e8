package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// Lister supplies the transactions of a date range.
type Lister interface {
	List(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error)
}

// ExclusionReader supplies the persisted manual exclusions of a ledger.
type ExclusionReader interface {
	Manual(ctx context.Context, owner string) (IDSet, error)
}

type Service struct {
	transactions Lister
	exclusions   ExclusionReader
	noRent       Rule
	transfers    TransferDetector
}

func NewService(transactions Lister, exclusions ExclusionReader, noRent Rule, transfers TransferDetector) *Service {
	return &Service{
		transactions: transactions,
		exclusions:   exclusions,
		noRent:       noRent,
		transfers:    transfers,
	}
}

// Request names the ledger and the windows to show. Date fields are raw user input.
type Request struct {
	Owner     string
	Today     time.Time
	StartDate string
	EndDate   string
	WeekStart string
}

// Row is a transaction with its display state.
type Row struct {
	Transaction *transaction.Transaction
	Class       Classification
	Kind        Kind
	NoRent      bool
}

// View is everything a page needs to render one request.
type View struct {
	Today time.Time

	// Rows holds every fetched transaction, newest first; Filtered the subset
	// inside Filter.
	Rows     []Row
	Filtered []Row

	Manual   IDSet
	Auto     IDSet
	Combined IDSet

	Week   Week
	Month  Window
	Filter Window

	WeekTotals   Totals
	MonthTotals  Totals
	FilterTotals Totals

	Notices []flash.Message

	// Err is the fetch failure, if any. Totals are zero when it is set.
	Err error
}

func (v *View) ManualCount() int { return v.Manual.Len() }

func (v *View) CombinedCount() int { return v.Combined.Len() }

// Loaded reports whether transactions were fetched successfully.
func (v *View) Loaded() bool { return v.Err == nil }

// Build resolves the windows, fetches once for their union, classifies every
// transaction and computes the week, month-to-date and filter totals. It never
// fails: problems are reported as notices and degrade to empty totals.
func (s *Service) Build(ctx context.Context, req Request) *View {
	today := transaction.Day(req.Today)

	v := &View{
		Today:    today,
		Manual:   NewIDSet(),
		Auto:     NewIDSet(),
		Combined: NewIDSet(),
		Month:    MonthToDate(today),
	}

	filter, err := ParseRange(req.StartDate, req.EndDate, today)
	switch {
	case errors.Is(err, ErrInvalidDate):
		v.Notices = append(v.Notices, flash.Warning("Invalid date format in URL for filter. Please use YYYY-MM-DD. Using default week."))
	case errors.Is(err, ErrReversedRange):
		v.Notices = append(v.Notices, flash.Warning("Filter end date is before start date. No transactions match."))
	}

	v.Filter = filter

	week, err := ParseWeek(req.WeekStart, today)
	if err != nil {
		v.Notices = append(v.Notices, flash.Warning("Invalid week in URL. Please use YYYY-MM-DD. Showing the current week."))
	}

	v.Week = week

	manual, err := s.exclusions.Manual(ctx, req.Owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load exclusions", "owner", req.Owner, "error", err)
		v.Notices = append(v.Notices, flash.Danger("Could not load excluded transactions."))
		v.Err = err

		return v
	}

	v.Manual = manual

	shown := v.Week.Window.Union(v.Month).Union(v.Filter)

	// Transfer legs may sit just outside the shown windows; fetch them so a
	// boundary pair still cancels out.
	fetch := shown.Clamp(today)
	fetch.Start = fetch.Start.Add(-s.transfers.Window)

	txs, err := s.transactions.List(ctx, fetch.Start, fetch.End)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch transactions", "range", fetch.String(), "error", err)
		v.Notices = append(v.Notices, fetchNotices(err)...)
		v.Combined = manual
		v.Err = err

		return v
	}

	v.Auto = s.transfers.Detect(txs)
	v.Combined = manual.Union(v.Auto)

	v.Rows = make([]Row, 0, len(txs))
	for _, tx := range txs {
		if !shown.Contains(tx.Date) {
			continue
		}

		row := Row{
			Transaction: tx,
			Class:       Classify(tx.ID, manual, v.Auto),
			Kind:        KindOf(tx.Amount),
			NoRent:      s.noRent != nil && s.noRent.Match(tx),
		}

		v.Rows = append(v.Rows, row)

		if v.Filter.Contains(tx.Date) {
			v.Filtered = append(v.Filtered, row)
		}
	}

	v.WeekTotals = Summarize(txs, v.Week.Window, v.Combined, s.noRent)
	v.MonthTotals = Summarize(txs, v.Month, v.Combined, s.noRent)
	v.FilterTotals = Summarize(txs, v.Filter, v.Combined, s.noRent)

	return v
}

func fetchNotices(err error) []flash.Message {
	msgs := []flash.Message{flash.Danger("Error fetching transactions: " + err.Error())}

	if errors.Is(err, transaction.ErrReauthRequired) {
		msgs = append(msgs, flash.Warning("Bank connection needs update. Re-link account required."))
	}

	return msgs
}
