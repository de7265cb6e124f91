package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/classpulse/backend/internal/api/handlers"
	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/entities"
	apperrors "github.com/classpulse/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	signupIn  services.SignupInput
	signupErr error
	loginUser *entities.User
	loginErr  error
}

func (s *stubUserService) Signup(ctx context.Context, in services.SignupInput) (*entities.User, error) {
	s.signupIn = in
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &entities.User{ID: "u1", Name: in.Name, Email: in.Email}, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	return s.loginUser, s.loginErr
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "success",
			body:       `{"name":"Ada","email":"ada@school.org","password":"p1","isTeacher":true}`,
			wantStatus: http.StatusOK,
			wantKey:    "userId",
			wantValue:  "u1",
		},
		{
			name:       "missing password",
			body:       `{"name":"Ada","email":"ada@school.org"}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Missing fields",
		},
		{
			name:       "duplicate email",
			body:       `{"name":"Ada","email":"ada@school.org","password":"p1"}`,
			serviceErr: apperrors.NewConflictError("Email already registered"),
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Email already registered",
		},
		{
			name:       "store failure",
			body:       `{"name":"Ada","email":"ada@school.org","password":"p1"}`,
			serviceErr: apperrors.NewInternalError("failed to create user", errors.New("no reachable servers")),
			wantStatus: http.StatusInternalServerError,
			wantKey:    "error",
			wantValue:  "Signup failed",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "invalid request payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubUserService{signupErr: tt.serviceErr}
			handler := handlers.NewAuthHandler(service)

			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.Signup(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantValue, decodeBody(t, w)[tt.wantKey])
		})
	}
}

func TestAuthHandler_Signup_PassesTeacherFlag(t *testing.T) {
	service := &stubUserService{}
	handler := handlers.NewAuthHandler(service)

	body := `{"name":"Ada","email":"ada@school.org","password":"p1","school":"North","isTeacher":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Signup(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, service.signupIn.IsTeacher)
	assert.Equal(t, "North", service.signupIn.School)
	assert.Equal(t, "Signup successful", decodeBody(t, w)["message"])
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success omits the hash", func(t *testing.T) {
		service := &stubUserService{loginUser: &entities.User{ID: "u1", Name: "Ada", IsTeacher: true, PasswordHash: "$2a$10$x"}}
		handler := handlers.NewAuthHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ada@school.org","password":"p1"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "$2a$10$x")
		body := decodeBody(t, w)
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, map[string]interface{}{"id": "u1", "name": "Ada", "isTeacher": true}, body["user"])
	})

	t.Run("unknown user is a bad request", func(t *testing.T) {
		service := &stubUserService{loginErr: apperrors.NewNotFoundError("User not found")}
		handler := handlers.NewAuthHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"x@school.org","password":"p1"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User not found", decodeBody(t, w)["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		service := &stubUserService{loginErr: apperrors.NewUnauthorizedError("Invalid password")}
		handler := handlers.NewAuthHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ada@school.org","password":"bad"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid password", decodeBody(t, w)["error"])
	})
}

func TestAuthHandler_Signup_TeacherFlagTruthiness(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`1`, true},
		{`"yes"`, true},
		{`false`, false},
		{`0`, false},
		{`""`, false},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			service := &stubUserService{}
			handler := handlers.NewAuthHandler(service)

			body := `{"name":"Ada","email":"ada@school.org","password":"p1","isTeacher":` + tt.value + `}`
			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
			w := httptest.NewRecorder()
			handler.Signup(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, service.signupIn.IsTeacher)
		})
	}
}
