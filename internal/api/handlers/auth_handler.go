package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
)

// UserService defines the account operations used by the handler.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	service UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

type signupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	School    string `json:"school"`
	IsTeacher truthy `json:"isTeacher"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsTeacher bool   `json:"isTeacher"`
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload signupRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.Name) == "" || strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	user, err := h.service.Signup(r.Context(), services.SignupInput{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  payload.Password,
		School:    payload.School,
		IsTeacher: bool(payload.IsTeacher),
	})
	if err != nil {
		respondWithAppError(w, r, err, "Signup failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Signup successful",
		"userId":  user.ID,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	user, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		// An unknown email is a client error here, unlike feedback submission.
		if isNotFound(err) {
			respondWithError(w, http.StatusBadRequest, "User not found")
			return
		}
		respondWithAppError(w, r, err, "Login failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": loginUser{
			ID:        user.ID,
			Name:      user.Name,
			IsTeacher: user.IsTeacher,
		},
	})
}
