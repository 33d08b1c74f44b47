package services

import (
	"testing"
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginDistinguishesFailures(t *testing.T) {
	e := newTestEngine(t)
	e.signUp(t, "alice", "a@x.com")

	_, err := e.gate.Login("nobody@x.com", "secret")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserDoesNotExist, apperrors.CodeOf(err))

	_, err = e.gate.Login("a@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidPassword, apperrors.CodeOf(err))

	u, err := e.gate.Login("a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Handle)
	assert.True(t, e.gate.IsLoggedIn())
}

func TestAuthorizeRejectsWithoutSession(t *testing.T) {
	e := newTestEngine(t)

	err := e.gate.Authorize()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserNotAuthorized, apperrors.CodeOf(err))

	// Privileged operations surface the same code.
	_, err = e.sites.CreateWasteland(CreateWastelandRequest{})
	assert.Equal(t, apperrors.CodeUserNotAuthorized, apperrors.CodeOf(err))
}

func TestAuthorizeAppliesDelay(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	var slept time.Duration
	e.gate.SetLatency(
		func() time.Duration { return 123 * time.Millisecond },
		func(d time.Duration) { slept += d },
	)

	require.NoError(t, e.gate.Authorize())
	assert.Equal(t, 123*time.Millisecond, slept)
}

func TestLogoutRunsHooks(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	var calls []string
	e.gate.OnLogout(func() { calls = append(calls, "first") })
	e.gate.OnLogout(func() { calls = append(calls, "second") })

	require.NoError(t, e.gate.Logout())
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, e.gate.IsLoggedIn())

	// A second logout has no session to clear.
	err := e.gate.Logout()
	assert.Equal(t, apperrors.CodeUserNotAuthorized, apperrors.CodeOf(err))
}

func TestCurrentUserReflectsStoreState(t *testing.T) {
	e := newTestEngine(t)
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	e.store.MutateUser(alice.ID, func(u *models.User) {
		u.ClearedSites = 7
	})

	current, ok := e.gate.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, 7, current.ClearedSites, "CurrentUser returns a fresh snapshot")
}
