package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwellhq/moodlog/internal/journal"
	"github.com/inkwellhq/moodlog/internal/types"
)

// Handler implements the API handlers
type Handler struct {
	service *journal.Service
}

// NewHandler creates a new Handler over the entry service.
func NewHandler(service *journal.Service) *Handler {
	return &Handler{service: service}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "OK"})
}

// CreateEntry handles POST /entries
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req types.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.service.Create(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.EntryIDResponse{ID: entry.ID})
}

// ListEntries handles GET /entries with optional moods, startDate and
// endDate filters.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := journal.ParseListFilter(q.Get("moods"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetEntry handles GET /entries/{id}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// UpdateEntry handles PUT /entries/{id}
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.EntryIDResponse{ID: entry.ID})
}

// DeleteEntry handles DELETE /entries/{id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MoodSummary handles GET /mood/summary with optional date bounds.
func (h *Handler) MoodSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := journal.ParseListFilter("", q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
