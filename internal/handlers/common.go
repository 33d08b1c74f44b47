package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

// respondJSON writes a value as JSON
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondAppError maps a typed engine error to an HTTP status.
func respondAppError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidData, apperrors.CodeInvalidPassword:
		status = http.StatusBadRequest
	case apperrors.CodeUserNotAuthorized:
		status = http.StatusUnauthorized
	case apperrors.CodeNotFound, apperrors.CodeUserDoesNotExist:
		status = http.StatusNotFound
	}

	message := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Description
	}
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// parseRange reads the from/to pagination window from query params.
// Absent params mean "everything".
func parseRange(r *http.Request) *query.Range {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" && toStr == "" {
		return nil
	}
	from, _ := strconv.Atoi(fromStr)
	to, _ := strconv.Atoi(toStr)
	return &query.Range{From: from, To: to}
}

// parseRegion reads a bounding region from query params, nil when the
// center is absent.
func parseRegion(r *http.Request) *query.Region {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lon") == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(q.Get("lon"), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	latDelta, _ := strconv.ParseFloat(q.Get("lat_delta"), 64)
	lonDelta, _ := strconv.ParseFloat(q.Get("lon_delta"), 64)
	return &query.Region{
		Center:         models.Coordinates{Latitude: lat, Longitude: lon},
		LatitudeDelta:  latDelta,
		LongitudeDelta: lonDelta,
	}
}

// parseTime reads an optional RFC3339 query param.
func parseTime(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// pathID reads a numeric chi URL parameter.
func pathID(raw string) (int, error) {
	return strconv.Atoi(raw)
}
