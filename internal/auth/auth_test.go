package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/store"
	"tally/internal/store/memory"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(memory.New())
	ctx := context.Background()

	_, err := a.Register(ctx, "alice", "short", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	user, err := a.Register(ctx, "alice", "correct horse battery", "")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	_, err = a.Register(ctx, "alice", "another password", "")
	assert.ErrorIs(t, err, ErrUsernameExists)

	got, err := a.Authenticate(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-key-that-is-long", time.Hour)
	user := &store.User{ID: "u1", Username: "alice", Role: RoleAdmin}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = m.Validate(token + "tampered")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpiry(t *testing.T) {
	m := NewJWTManager("test-secret-key-that-is-long", -time.Minute)
	token, err := m.Generate(&store.User{Username: "alice"})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
