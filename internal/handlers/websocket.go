package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams geofenced change events to clients. Each
// connection owns one hub subscription.
type WebSocketHandler struct {
	hub         *services.NotificationHub
	userService *services.UserService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.NotificationHub, userService *services.UserService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
	}
}

// wsClientMessage is what clients may send over the socket.
type wsClientMessage struct {
	Type      string  `json:"type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleWebSocket handles GET /ws?token=...&lat=...&lon=...
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}
	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		respondError(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	// Serialize writes: hub callbacks fire from mutation goroutines.
	var writeMu sync.Mutex
	deliver := func(ev models.ChangeEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("Failed to deliver change event")
		}
	}

	area := models.AreaOfInterest{
		Center: models.Coordinates{Latitude: lat, Longitude: lon},
	}
	listenerID := h.hub.Register(area, deliver)
	defer h.hub.Remove(listenerID)

	log.Info().Int("user_id", userID).Int("listener_id", listenerID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Int("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg wsClientMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("Failed to parse WebSocket message")
			continue
		}

		switch msg.Type {
		case "update_area":
			area := models.AreaOfInterest{
				Center: models.Coordinates{Latitude: msg.Latitude, Longitude: msg.Longitude},
			}
			if err := h.hub.Update(listenerID, area); err != nil {
				log.Error().Err(err).Int("listener_id", listenerID).Msg("Failed to update listener area")
			}
		default:
			log.Warn().Str("type", msg.Type).Msg("Unknown WebSocket message type")
		}
	}
}
