package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

type Handler struct {
	svc          *ledger.Service
	transactions *transaction.Service
	owner        string
}

func NewHandler(svc *ledger.Service, transactions *transaction.Service, owner string) *Handler {
	return &Handler{svc: svc, transactions: transactions, owner: owner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ledger", h.get)
	r.Post("/refresh", h.refresh)
}

// get accepts the same start_date, end_date and week_start query parameters as
// the web page.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	v := h.svc.Build(r.Context(), ledger.Request{
		Owner:     h.owner,
		Today:     time.Now(),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		WeekStart: q.Get("week_start"),
	})

	status := http.StatusOK
	if !v.Loaded() {
		status = http.StatusBadGateway
	}

	writeJSON(w, status, toResponse(v))
}

type refreshResponse struct {
	Dropped int `json:"dropped"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	n := h.transactions.Refresh()
	slog.InfoContext(r.Context(), "transaction cache dropped", "ranges", n)

	writeJSON(w, http.StatusOK, refreshResponse{Dropped: n})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
