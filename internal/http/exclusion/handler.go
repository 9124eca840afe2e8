package exclusion

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
)

type Handler struct {
	svc   *exclusion.Service
	owner string
}

func NewHandler(svc *exclusion.Service, owner string) *Handler {
	return &Handler{svc: svc, owner: owner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Put("/{id}", h.exclude)
	r.Delete("/{id}", h.include)
}

type listResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type changeResponse struct {
	ID       string `json:"id"`
	Excluded bool   `json:"excluded"`
	Changed  bool   `json:"changed"`
}

type clearResponse struct {
	Cleared int `json:"cleared"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.List(r.Context(), h.owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list exclusions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if ids == nil {
		ids = []string{}
	}

	writeJSON(w, http.StatusOK, listResponse{IDs: ids, Count: len(ids)})
}

func (h *Handler) exclude(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	added, err := h.svc.Exclude(r.Context(), h.owner, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, changeResponse{ID: id, Excluded: true, Changed: added})
}

func (h *Handler) include(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.svc.Include(r.Context(), h.owner, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, changeResponse{ID: id, Excluded: false, Changed: removed})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Clear(r.Context(), h.owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clearResponse{Cleared: n})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, exclusion.ErrMissingID) {
		http.Error(w, "transaction id is required", http.StatusBadRequest)
		return
	}

	slog.ErrorContext(r.Context(), "exclusion request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
