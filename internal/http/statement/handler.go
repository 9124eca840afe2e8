package statement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/statement"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	source       *statement.Source
	transactions *transaction.Service
	now          func() time.Time
}

func NewHandler(source *statement.Source, transactions *transaction.Service) *Handler {
	return &Handler{source: source, transactions: transactions, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type uploadResponse struct {
	File         string `json:"file"`
	Profile      string `json:"profile"`
	Charset      string `json:"charset"`
	Transactions int    `json:"transactions"`
}

// upload stores a multipart "file" statement and drops the transaction cache so
// the next ledger read includes it.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, stored, err := h.source.Save(header.Filename, file, h.now())
	switch {
	case errors.Is(err, statement.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, statement.ErrNotDirectory):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "failed to store statement", "file", header.Filename, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dropped := h.transactions.Refresh()
	slog.InfoContext(r.Context(), "statement uploaded", "file", stored, "profile", res.Profile, "rows", len(res.Transactions), "dropped", dropped)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(uploadResponse{
		File:         stored,
		Profile:      res.Profile,
		Charset:      string(res.Charset),
		Transactions: len(res.Transactions),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
