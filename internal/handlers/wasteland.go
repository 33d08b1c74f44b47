package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/query"
	"cleanup-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// WastelandHandler handles litter-site HTTP requests
type WastelandHandler struct {
	wastelandService *services.WastelandService
}

// NewWastelandHandler creates a new wasteland handler
func NewWastelandHandler(wastelandService *services.WastelandService) *WastelandHandler {
	return &WastelandHandler{wastelandService: wastelandService}
}

// GetWastelands handles GET /api/v1/wastelands
func (h *WastelandHandler) GetWastelands(w http.ResponseWriter, r *http.Request) {
	filter := query.WastelandFilter{
		Phrase:     r.URL.Query().Get("phrase"),
		Region:     parseRegion(r),
		OnlyActive: r.URL.Query().Get("only_active") == "true",
	}

	sites, err := h.wastelandService.GetWastelands(filter, parseRange(r))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sites)
}

// CreateWasteland handles POST /api/v1/wastelands
func (h *WastelandHandler) CreateWasteland(w http.ResponseWriter, r *http.Request) {
	var req services.CreateWastelandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site, err := h.wastelandService.CreateWasteland(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, site)
}

// ClearWastelandBody carries the cleanup details
type ClearWastelandBody struct {
	OtherCleanerIDs []int    `json:"other_cleaner_ids,omitempty"`
	PhotoURLs       []string `json:"photo_urls,omitempty"`
}

// ClearWasteland handles POST /api/v1/wastelands/{wasteland_id}/clear
func (h *WastelandHandler) ClearWasteland(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "wasteland_id"))
	if err != nil {
		respondError(w, "Invalid wasteland id", http.StatusBadRequest)
		return
	}

	var body ClearWastelandBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	site, err := h.wastelandService.ClearWasteland(id, body.OtherCleanerIDs, body.PhotoURLs)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, site)
}
