// Package web serves the server-rendered ledger page and its form actions.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

// queryKeys are carried across every redirect so the user stays on the same view.
var queryKeys = []string{"start_date", "end_date", "week_start"}

type Handler struct {
	appName      string
	owner        string
	timeout      time.Duration
	ledger       *ledger.Service
	exclusions   *exclusion.Service
	transactions *transaction.Service
	flash        *flash.Store
	tmpl         *template.Template
}

type Config struct {
	AppName string
	Owner   string
	// Timeout bounds the page build, including the upstream fetch.
	Timeout time.Duration
}

func NewHandler(
	cfg Config,
	ledgerSvc *ledger.Service,
	exclusions *exclusion.Service,
	transactions *transaction.Service,
	flashStore *flash.Store,
) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Handler{
		appName:      cfg.AppName,
		owner:        cfg.Owner,
		timeout:      cfg.Timeout,
		ledger:       ledgerSvc,
		exclusions:   exclusions,
		transactions: transactions,
		flash:        flashStore,
		tmpl:         tmpl,
	}, nil
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.index)
	r.Post("/refresh", h.refresh)
	r.Post("/exclude", h.exclude)
	r.Post("/include", h.include)
	r.Post("/clear_exclusions", h.clearExclusions)
}

type page struct {
	AppName string
	View    *ledger.View
	Notices []flash.Message

	Query       template.URL
	WeekStart   string
	PrevWeekURL template.URL
	NextWeekURL template.URL
	ThisWeekURL template.URL
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	q := r.URL.Query()

	v := h.ledger.Build(ctx, ledger.Request{
		Owner:     h.owner,
		Today:     time.Now(),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		WeekStart: q.Get("week_start"),
	})

	p := page{
		AppName:     h.appName,
		View:        v,
		Notices:     append(h.flash.Pop(w, r), v.Notices...),
		Query:       template.URL(preserved(q).Encode()),
		WeekStart:   q.Get("week_start"),
		PrevWeekURL: weekURL(q, v.Week.Prev),
		NextWeekURL: weekURL(q, v.Week.Next),
		ThisWeekURL: weekURL(q, time.Time{}),
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		slog.ErrorContext(ctx, "failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	n := h.transactions.Refresh()
	slog.InfoContext(r.Context(), "transaction cache dropped", "ranges", n)

	h.redirect(w, r, flash.Info("Refreshing transaction data..."))
}

func (h *Handler) exclude(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("transaction_id")

	added, err := h.exclusions.Exclude(r.Context(), h.owner, id)

	switch {
	case errors.Is(err, exclusion.ErrMissingID):
		h.redirect(w, r, flash.Danger("Could not exclude transaction: ID missing."))
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to exclude transaction", "id", id, "error", err)
		h.redirect(w, r, flash.Danger("Could not exclude transaction. Please try again."))
	case added:
		h.redirect(w, r, flash.Warning(fmt.Sprintf("Transaction %s... manually excluded.", exclusion.ShortID(id))))
	default:
		h.redirect(w, r, flash.Info(fmt.Sprintf("Transaction %s... was already manually excluded.", exclusion.ShortID(id))))
	}
}

func (h *Handler) include(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("transaction_id")

	removed, err := h.exclusions.Include(r.Context(), h.owner, id)

	switch {
	case errors.Is(err, exclusion.ErrMissingID):
		h.redirect(w, r, flash.Danger("Could not include transaction: ID missing."))
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to include transaction", "id", id, "error", err)
		h.redirect(w, r, flash.Danger("Could not include transaction. Please try again."))
	case removed:
		h.redirect(w, r, flash.Info(fmt.Sprintf("Transaction %s... re-included.", exclusion.ShortID(id))))
	default:
		h.redirect(w, r, flash.Warning(fmt.Sprintf("Transaction %s... was not manually excluded.", exclusion.ShortID(id))))
	}
}

func (h *Handler) clearExclusions(w http.ResponseWriter, r *http.Request) {
	n, err := h.exclusions.Clear(r.Context(), h.owner)

	switch {
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to clear exclusions", "error", err)
		h.redirect(w, r, flash.Danger("Could not clear exclusions. Please try again."))
	case n > 0:
		h.redirect(w, r, flash.Info("Manually excluded transactions reset."))
	default:
		h.redirect(w, r, flash.Info("No manual exclusions to clear."))
	}
}

// redirect sends the user back to the page they posted from with msgs queued.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, msgs ...flash.Message) {
	if err := h.flash.Add(w, r, msgs...); err != nil {
		slog.ErrorContext(r.Context(), "failed to store flash messages", "error", err)
	}

	target := "/"
	if q := preserved(r.URL.Query()).Encode(); q != "" {
		target += "?" + q
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func preserved(q url.Values) url.Values {
	out := url.Values{}

	for _, k := range queryKeys {
		if v := q.Get(k); v != "" {
			out.Set(k, v)
		}
	}

	return out
}

// weekURL keeps the range filter and points week_start at ws, or drops it when ws is zero.
func weekURL(q url.Values, ws time.Time) template.URL {
	out := preserved(q)
	out.Del("week_start")

	if !ws.IsZero() {
		out.Set("week_start", ws.Format(ledger.DateLayout))
	}

	if len(out) == 0 {
		return "/"
	}

	return template.URL("/?" + out.Encode())
}
