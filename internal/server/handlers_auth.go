package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"reelshare/internal/api"
	"reelshare/internal/auth"
	"reelshare/internal/domain"
	"reelshare/internal/logging"
	"reelshare/internal/store"
)

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleRegister serves POST /api/auth/create
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w, r)

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest("Invalid request body")
		return
	}
	req.Username = sanitize(req.Username)
	req.Email = sanitize(req.Email)

	if fields := validateStruct(&req); fields != nil {
		rw.ValidationError("All fields are required", fields)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		rw.InternalError("Failed to create user", err)
		return
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			rw.Conflict("User already exists")
			return
		}
		rw.InternalError("Failed to create user", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	rw.Created(api.UserResult{User: user.Public()})
}

// handleLogin serves POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w, r)

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest("Invalid request body")
		return
	}
	req.Email = sanitize(req.Email)

	if fields := validateStruct(&req); fields != nil {
		rw.ValidationError("Email and password are required", fields)
		return
	}

	user, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			rw.InternalError("Failed to log in", err)
			return
		}
		rw.Unauthorized("Invalid credentials")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		rw.Unauthorized("Invalid credentials")
		return
	}

	token, expiresAt, err := s.jwt.GenerateToken(user)
	if err != nil {
		rw.InternalError("Failed to log in", err)
		return
	}

	rw.Success(api.LoginResult{User: user.Public(), Token: token, ExpiresAt: expiresAt})
}
