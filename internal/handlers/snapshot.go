package handlers

import (
	"net/http"
	"sync"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/services"
)

// SnapshotHandler fetches all four entity kinds at once. Each kind is
// queried independently; one kind failing does not invalidate the rest.
type SnapshotHandler struct {
	eventService     *services.EventService
	wastelandService *services.WastelandService
	dumpsterService  *services.DumpsterService
	userService      *services.UserService
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(
	eventService *services.EventService,
	wastelandService *services.WastelandService,
	dumpsterService *services.DumpsterService,
	userService *services.UserService,
) *SnapshotHandler {
	return &SnapshotHandler{
		eventService:     eventService,
		wastelandService: wastelandService,
		dumpsterService:  dumpsterService,
		userService:      userService,
	}
}

// KindResult reports one entity kind's data or its error.
type KindResult[T any] struct {
	Data  []T    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// SnapshotResponse aggregates the per-kind results
type SnapshotResponse struct {
	Events     KindResult[models.Event]     `json:"events"`
	Wastelands KindResult[models.Wasteland] `json:"wastelands"`
	Dumpsters  KindResult[models.Dumpster]  `json:"dumpsters"`
	Users      KindResult[models.User]      `json:"users"`
}

// GetSnapshot handles GET /api/v1/snapshot
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	region := parseRegion(r)
	var resp SnapshotResponse

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		data, err := h.eventService.GetEvents(query.EventFilter{Region: region}, nil, false)
		resp.Events = kindResult(data, err)
	}()
	go func() {
		defer wg.Done()
		data, err := h.wastelandService.GetWastelands(query.WastelandFilter{Region: region}, nil)
		resp.Wastelands = kindResult(data, err)
	}()
	go func() {
		defer wg.Done()
		data, err := h.dumpsterService.GetDumpsters(query.DumpsterFilter{Region: region}, nil)
		resp.Dumpsters = kindResult(data, err)
	}()
	go func() {
		defer wg.Done()
		data, err := h.userService.GetUsers(query.UserFilter{}, nil)
		resp.Users = kindResult(data, err)
	}()

	wg.Wait()
	respondJSON(w, http.StatusOK, resp)
}

func kindResult[T any](data []T, err error) KindResult[T] {
	if err != nil {
		return KindResult[T]{Error: err.Error()}
	}
	return KindResult[T]{Data: data}
}
