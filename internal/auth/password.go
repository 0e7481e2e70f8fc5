// Package auth implements the identity provider: password registration and
// login over the user store, and JWT session tokens. Passwords are hashed
// with bcrypt (per-user random salt); the service never stores or compares
// bare digests.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tally/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUsernameExists     = errors.New("username already registered")
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// PasswordAuthenticator implements password-based authentication using
// bcrypt, independent of the storage backend.
type PasswordAuthenticator struct {
	users store.UserStore
}

func NewPasswordAuthenticator(users store.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users}
}

// ValidateCredential checks the minimum password requirement.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential, role string) (*store.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	if existing, err := a.users.GetUserByName(ctx, username); err == nil && existing != nil {
		return nil, ErrUsernameExists
	}
	if role == "" {
		role = RoleUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &store.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies username and password, returning the user if valid.
// Lookup and compare failures collapse into the same error so responses do
// not leak which usernames exist.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*store.User, error) {
	user, err := a.users.GetUserByName(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
