package services

import (
	"testing"
	"time"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

// testEngine bundles an isolated engine instance for one test.
type testEngine struct {
	store     *repository.Store
	gate      *SessionGate
	hub       *NotificationHub
	users     *UserService
	events    *EventService
	sites     *WastelandService
	dumpsters *DumpsterService
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	store := repository.NewStore()
	gate := NewSessionGate(store, 400*time.Millisecond)
	// No sleeping in tests.
	gate.SetLatency(func() time.Duration { return 0 }, func(time.Duration) {})
	hub := NewNotificationHub(DefaultNotificationRadiusM)

	return &testEngine{
		store:     store,
		gate:      gate,
		hub:       hub,
		users:     NewUserService(store, gate, hub, "test-secret"),
		events:    NewEventService(store, gate, hub),
		sites:     NewWastelandService(store, gate, hub),
		dumpsters: NewDumpsterService(store, gate, hub),
	}
}

// signUpAndLogin creates a user and activates their session.
func (e *testEngine) signUpAndLogin(t *testing.T, handle, email string) models.User {
	t.Helper()

	u, err := e.users.SignUp(SignUpRequest{
		Email:    email,
		Handle:   handle,
		Password: "secret",
	})
	require.NoError(t, err)

	logged, err := e.gate.Login(email, "secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)
	return logged
}

// signUp creates a user without touching the session.
func (e *testEngine) signUp(t *testing.T, handle, email string) models.User {
	t.Helper()

	u, err := e.users.SignUp(SignUpRequest{
		Email:    email,
		Handle:   handle,
		Password: "secret",
	})
	require.NoError(t, err)
	return u
}

// collect registers a subscription that appends every delivered event.
func (e *testEngine) collect(center models.Coordinates) (*[]models.ChangeEvent, int) {
	received := &[]models.ChangeEvent{}
	id := e.hub.Register(models.AreaOfInterest{Center: center}, func(ev models.ChangeEvent) {
		*received = append(*received, ev)
	})
	return received, id
}
