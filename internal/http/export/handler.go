package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

type Handler struct {
	svc   *export.Service
	owner string
	now   func() time.Time
}

func NewHandler(svc *export.Service, owner string) *Handler {
	return &Handler{svc: svc, owner: owner, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams the filtered rows as a CSV attachment, or as the plain-text
// summary when format=text.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := h.now()

	v, err := h.svc.Export(r.Context(), ledger.Request{
		Owner:     h.owner,
		Today:     today,
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		WeekStart: q.Get("week_start"),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to export transactions", "error", err)
		http.Error(w, "could not load transactions", http.StatusBadGateway)
		return
	}

	switch q.Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=\"ledger_%s.csv\"", today.Format("20060102")))

		if err := export.WriteCSV(w, v.Filtered); err != nil {
			slog.ErrorContext(r.Context(), "failed to write export", "error", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if _, err := w.Write([]byte(export.Summary(v.Filtered))); err != nil {
			slog.ErrorContext(r.Context(), "failed to write export", "error", err)
		}
	default:
		http.Error(w, "format must be csv or text", http.StatusBadRequest)
	}
}
