package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/services"
)

// PhotoHandler handles photo upload HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// UploadRequest asks for a pre-signed upload URL
type UploadRequest struct {
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
}

// Upload handles POST /api/v1/photos/upload
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Kind == "" {
		req.Kind = "misc"
	}

	resp, err := h.photoService.GetPreSignedURL(r.Context(), req.Kind, req.ContentType)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
