package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles identity and user-listing HTTP requests
type UserHandler struct {
	userService *services.UserService
	gate        *services.SessionGate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, gate *services.SessionGate) *UserHandler {
	return &UserHandler{
		userService: userService,
		gate:        gate,
	}
}

// SignUp handles POST /api/v1/users
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.SignUp(req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the logged-in user and their bearer token
type LoginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login handles POST /api/v1/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.gate.Login(req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	token, err := h.userService.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token")
		respondError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{User: user, Token: token})
}

// Logout handles POST /api/v1/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.gate.CurrentUser()
	if !ok {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMeBody carries the mutable profile fields
type UpdateMeBody struct {
	Handle    string  `json:"handle,omitempty"`
	Password  string  `json:"password,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	PushToken *string `json:"push_token,omitempty"`
}

// UpdateMe handles PATCH /api/v1/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body UpdateMeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateSelf(models.User{
		Handle:    body.Handle,
		Password:  body.Password,
		PhotoURL:  body.PhotoURL,
		PushToken: body.PushToken,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteMe handles DELETE /api/v1/me
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.RemoveAccount(); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUsers handles GET /api/v1/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := query.UserFilter{Phrase: r.URL.Query().Get("phrase")}

	users, err := h.userService.GetUsers(filter, parseRange(r))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
