package services

import (
	"context"
	"errors"
	"strings"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/providers"
	"github.com/classpulse/backend/internal/domain/repositories"
	apperrors "github.com/classpulse/backend/pkg/errors"
)

// SignupInput carries the fields of a signup request
type SignupInput struct {
	Name      string
	Email     string
	Password  string
	School    string
	IsTeacher bool
}

// UserService handles signup and login
type UserService struct {
	users  repositories.UserRepository
	hasher providers.PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, hasher providers.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Signup registers a user with a hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entities.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("Missing fields")
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.NewConflictError("Email already registered")
	case err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		School:       strings.TrimSpace(in.School),
		IsTeacher:    in.IsTeacher,
	}
	// The unique index still reports a concurrent signup as a conflict.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.NewValidationError("Missing fields")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, providers.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorizedError("Invalid password")
		}
		return nil, apperrors.NewInternalError("failed to verify password", err)
	}
	return user, nil
}
