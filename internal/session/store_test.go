package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SameKart/internal/kv"
)

func newTestStore(t *testing.T, state kv.Store) *Store {
	t.Helper()

	s, err := NewStore(state, NewTokenMaker("test-secret"), 0, nil)
	require.NoError(t, err)
	return s
}

func TestLogin_Success(t *testing.T) {
	state := kv.NewMemStore()
	s := newTestStore(t, state)

	assert.False(t, s.Loading())
	assert.False(t, s.Authenticated())

	sess, err := s.Login(context.Background(), "admin@samekart.com", "admin123")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, User{Email: "admin@samekart.com", Name: "Admin", Role: "admin"}, sess.User)
	assert.True(t, s.Authenticated())

	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, sess.User, u)

	var token string
	ok, err = state.Get("adminToken", &token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess.Token, token)

	var stored User
	ok, err = state.Get("adminUser", &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess.User, stored)
}

// The credential check is strict equality: padded or case-shifted input is
// not the hardcoded pair.
func TestLogin_RejectsPaddedOrCaseShiftedInput(t *testing.T) {
	s := newTestStore(t, kv.NewMemStore())

	for _, tc := range []struct{ email, password string }{
		{" admin@samekart.com ", " admin123 "},
		{"admin@samekart.com ", "admin123"},
		{"ADMIN@SAMEKART.COM", "admin123"},
		{"admin@samekart.com", "ADMIN123"},
	} {
		_, err := s.Login(context.Background(), tc.email, tc.password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "email=%q password=%q", tc.email, tc.password)
	}
	assert.False(t, s.Authenticated())
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	state := kv.NewMemStore()
	s := newTestStore(t, state)

	for _, tc := range []struct{ email, password string }{
		{"x", "y"},
		{"admin@samekart.com", "wrong"},
		{"other@samekart.com", "admin123"},
		{"", ""},
	} {
		_, err := s.Login(context.Background(), tc.email, tc.password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "email=%q", tc.email)
		assert.NotEmpty(t, err.Error())
	}

	assert.False(t, s.Authenticated())

	var token string
	ok, err := state.Get("adminToken", &token)
	require.NoError(t, err)
	assert.False(t, ok, "failed logins must not persist a session")
}

func TestLogin_CancelAbortsDelay(t *testing.T) {
	state := kv.NewMemStore()
	s, err := NewStore(state, NewTokenMaker("test-secret"), time.Hour, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Login(ctx, "admin@samekart.com", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Authenticated())
}

func TestLogout_ClearsPersistedSession(t *testing.T) {
	state := kv.NewMemStore()
	s := newTestStore(t, state)

	_, err := s.Login(context.Background(), "admin@samekart.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	assert.False(t, s.Authenticated())

	_, ok := s.CurrentUser()
	assert.False(t, ok)

	var token string
	ok, err = state.Get("adminToken", &token)
	require.NoError(t, err)
	assert.False(t, ok)

	// logging out twice is fine
	require.NoError(t, s.Logout())
}

func TestRestore_ReestablishesSession(t *testing.T) {
	state := kv.NewMemStore()
	s := newTestStore(t, state)

	sess, err := s.Login(context.Background(), "admin@samekart.com", "admin123")
	require.NoError(t, err)

	restored := newTestStore(t, state)
	assert.False(t, restored.Loading())
	assert.True(t, restored.Authenticated())

	u, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, sess.User, u)
}

func TestRestore_RequiresBothKeys(t *testing.T) {
	state := kv.NewMemStore()
	require.NoError(t, state.Set("adminToken", "tok"))

	s := newTestStore(t, state)
	assert.False(t, s.Authenticated(), "token without user record stays logged out")
}

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker("test-secret")
	u := User{Email: "admin@samekart.com", Name: "Admin", Role: "admin"}

	tok, err := tm.New(u, time.Minute)
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.Role, claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = tm.Parse(tok + "x")
	assert.Error(t, err)

	other := NewTokenMaker("different-secret")
	_, err = other.Parse(tok)
	assert.Error(t, err)
}
