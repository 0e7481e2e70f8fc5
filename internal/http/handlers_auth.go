package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"tally/internal/auth"
)

type (
	registerRequest struct {
		Username string `json:"username" validate:"required,min=3,max=64"`
		Password string `json:"password" validate:"required,min=8,max=128"`
		Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	}

	loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	sessionResponse struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}

	userResponse struct {
		Username  string    `json:"username"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := s.authn.Register(r.Context(), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, auth.ErrUsernameExists):
		respondError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, auth.ErrWeakPassword):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Registration failed", "error", err, "username", req.Username)
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	slog.InfoContext(r.Context(), "User registered",
		"username", user.Username,
		"role", user.Role)
	respondJSON(w, http.StatusCreated, userResponse{
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err, "username", user.Username)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "username", user.Username)
	respondJSON(w, http.StatusOK, sessionResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List users failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	respondJSON(w, http.StatusOK, out)
}

func respondValidationError(w http.ResponseWriter, err error) {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = "failed validation on '" + fe.Tag() + "'"
		}
	}
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
}
