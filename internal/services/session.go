package services

import (
	"math/rand"
	"sync"
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// SessionGate holds the single currently-authenticated identity and
// wraps privileged operations: it rejects them without a session and
// injects a bounded random delay emulating network latency.
type SessionGate struct {
	mu      sync.Mutex
	store   *repository.Store
	current *models.User
	hooks   []func()

	delay func() time.Duration
	sleep func(time.Duration)
}

// NewSessionGate creates a gate with a uniform delay in [0, maxDelay).
func NewSessionGate(store *repository.Store, maxDelay time.Duration) *SessionGate {
	g := &SessionGate{
		store: store,
		sleep: time.Sleep,
	}
	g.delay = func() time.Duration {
		if maxDelay <= 0 {
			return 0
		}
		return time.Duration(rand.Int63n(int64(maxDelay)))
	}
	return g
}

// SetLatency overrides the delay and sleep functions. Tests use this to
// make Authorize deterministic.
func (g *SessionGate) SetLatency(delay func() time.Duration, sleep func(time.Duration)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if delay != nil {
		g.delay = delay
	}
	if sleep != nil {
		g.sleep = sleep
	}
}

// Authorize rejects the call when no identity is active, otherwise
// applies the simulated latency and lets the operation proceed. The
// delay is not a correctness mechanism; it carries no timeout.
func (g *SessionGate) Authorize() error {
	g.mu.Lock()
	active := g.current != nil
	delay, sleep := g.delay, g.sleep
	g.mu.Unlock()

	if !active {
		return apperrors.NotAuthorized()
	}
	sleep(delay())
	return nil
}

// Login activates a session. Failure reasons are distinguished: unknown
// email vs wrong password.
func (g *SessionGate) Login(email, password string) (models.User, error) {
	u, ok := g.store.FindUserByEmail(email)
	if !ok {
		return models.User{}, apperrors.UserDoesNotExist()
	}
	if u.Password != password {
		return models.User{}, apperrors.InvalidPassword()
	}

	g.mu.Lock()
	cur := u
	g.current = &cur
	g.mu.Unlock()

	log.Info().Int("user_id", u.ID).Str("handle", u.Handle).Msg("User logged in")
	return u, nil
}

// Logout clears the identity and runs all registered hooks. Privileged.
func (g *SessionGate) Logout() error {
	if err := g.Authorize(); err != nil {
		return err
	}

	g.mu.Lock()
	if g.current == nil {
		g.mu.Unlock()
		return apperrors.NotAuthorized()
	}
	userID := g.current.ID
	g.current = nil
	hooks := append([]func(){}, g.hooks...)
	g.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	log.Info().Int("user_id", userID).Msg("User logged out")
	return nil
}

// OnLogout registers a hook invoked after every logout. Collaborators
// use it to reset dependent state.
func (g *SessionGate) OnLogout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks = append(g.hooks, fn)
}

// CurrentUser returns a fresh snapshot of the active identity.
func (g *SessionGate) CurrentUser() (models.User, bool) {
	g.mu.Lock()
	cur := g.current
	g.mu.Unlock()

	if cur == nil {
		return models.User{}, false
	}
	if u, ok := g.store.GetUser(cur.ID); ok {
		return u, true
	}
	return *cur, true
}

// IsLoggedIn reports whether a session is active
func (g *SessionGate) IsLoggedIn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != nil
}

// clearSession drops the identity without running hooks. Used when the
// active account is removed.
func (g *SessionGate) clearSession() {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()
}
