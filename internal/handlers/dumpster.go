package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// DumpsterHandler handles dumpster HTTP requests
type DumpsterHandler struct {
	dumpsterService *services.DumpsterService
}

// NewDumpsterHandler creates a new dumpster handler
func NewDumpsterHandler(dumpsterService *services.DumpsterService) *DumpsterHandler {
	return &DumpsterHandler{dumpsterService: dumpsterService}
}

// GetDumpsters handles GET /api/v1/dumpsters
func (h *DumpsterHandler) GetDumpsters(w http.ResponseWriter, r *http.Request) {
	filter := query.DumpsterFilter{
		Phrase: r.URL.Query().Get("phrase"),
		Region: parseRegion(r),
	}

	dumpsters, err := h.dumpsterService.GetDumpsters(filter, parseRange(r))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dumpsters)
}

// CreateDumpster handles POST /api/v1/dumpsters
func (h *DumpsterHandler) CreateDumpster(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDumpsterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dumpster, err := h.dumpsterService.CreateDumpster(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dumpster)
}

// UpdateDumpster handles PUT /api/v1/dumpsters/{dumpster_id}
func (h *DumpsterHandler) UpdateDumpster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "dumpster_id"))
	if err != nil {
		respondError(w, "Invalid dumpster id", http.StatusBadRequest)
		return
	}

	var dumpster models.Dumpster
	if err := json.NewDecoder(r.Body).Decode(&dumpster); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dumpster.ID = id

	updated, err := h.dumpsterService.UpdateDumpster(dumpster)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteDumpster handles DELETE /api/v1/dumpsters/{dumpster_id}
func (h *DumpsterHandler) DeleteDumpster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "dumpster_id"))
	if err != nil {
		respondError(w, "Invalid dumpster id", http.StatusBadRequest)
		return
	}

	if err := h.dumpsterService.DeleteDumpster(id); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
