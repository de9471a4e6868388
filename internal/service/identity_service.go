package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/repository"
)

// IdentityService handles sign-up and sign-in.
type IdentityService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type identityService struct {
	users repository.UserRepository
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users repository.UserRepository) IdentityService {
	return &identityService{users: users}
}

// NormalizeEmail produces the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password. The explicit duplicate
// pre-check produces a clean domain error on the common path; the unique
// index on email still backstops a race between two concurrent sign-ups,
// which the repository maps to the same ErrDuplicateEmail.
func (s *identityService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	email = NormalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against the stored hash. It never
// mutates the store.
func (s *identityService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
