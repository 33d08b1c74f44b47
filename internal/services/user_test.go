package services

import (
	"testing"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpDuplicateEmail(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.users.SignUp(SignUpRequest{Email: "a@x.com", Handle: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = e.users.SignUp(SignUpRequest{Email: "a@x.com", Handle: "alice2", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "email already in use")

	_, err = e.users.SignUp(SignUpRequest{Email: "b@x.com", Handle: "alice", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handle already in use")
}

func TestSignUpRequiresFields(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.users.SignUp(SignUpRequest{Email: "a@x.com"})
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))
}

func TestGetUsersRanksAndRedacts(t *testing.T) {
	e := newTestEngine(t)
	e.signUp(t, "bob", "b@x.com")
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	// Alice earns points: one dumpster added, one site cleared.
	_, err := e.dumpsters.CreateDumpster(CreateDumpsterRequest{})
	require.NoError(t, err)
	site, err := e.sites.CreateWasteland(CreateWastelandRequest{})
	require.NoError(t, err)
	_, err = e.sites.ClearWasteland(site.ID, nil, nil)
	require.NoError(t, err)

	users, err := e.users.GetUsers(query.UserFilter{}, nil)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, alice.ID, users[0].ID, "alice leads the board")
	assert.Equal(t, 2, users[0].Score())
	assert.Empty(t, users[0].Email)
	assert.Empty(t, users[0].Password)
}

func TestUpdateSelf(t *testing.T) {
	e := newTestEngine(t)
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	updated, err := e.users.UpdateSelf(models.User{Handle: "alice2", PhotoURL: "me.jpg"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID, "id is preserved")
	assert.Equal(t, "alice2", updated.Handle)
	assert.Equal(t, "me.jpg", updated.PhotoURL)
	assert.Equal(t, "a@x.com", updated.Email, "email is preserved")

	// Password changes take effect on the next login.
	_, err = e.users.UpdateSelf(models.User{Password: "newpw"})
	require.NoError(t, err)
	_, err = e.gate.Login("a@x.com", "secret")
	assert.Equal(t, apperrors.CodeInvalidPassword, apperrors.CodeOf(err))
	_, err = e.gate.Login("a@x.com", "newpw")
	assert.NoError(t, err)
}

func TestRemoveAccountClearsSession(t *testing.T) {
	e := newTestEngine(t)
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	require.NoError(t, e.users.RemoveAccount())
	assert.False(t, e.gate.IsLoggedIn())

	_, ok := e.store.GetUser(alice.ID)
	assert.False(t, ok)
}

func TestResetPasswordIsFatalStub(t *testing.T) {
	e := newTestEngine(t)
	assert.Panics(t, func() {
		e.users.ResetPassword("a@x.com")
	})
}

func TestJWTRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	token, err := e.users.GenerateJWT(7)
	require.NoError(t, err)

	userID, err := e.users.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)

	_, err = e.users.ValidateJWT("not-a-token")
	assert.Error(t, err)
}
