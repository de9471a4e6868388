package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"userhub/internal/auth"
	"userhub/internal/cache"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileUpdate is a sparse field set; nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *model.Role
}

// ProfileService exposes user management operations.
type ProfileService interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, input ProfileUpdate) (*model.User, error)
	Remove(ctx context.Context, id uint) error
}

type profileService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(users repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{users: users, cache: cache}
}

func (s *profileService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *profileService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetByID reads through the cache. The cached copy is the JSON projection,
// so it never holds the password hash.
func (s *profileService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return user, nil
}

// Update applies a sparse update, re-hashing the password when present and
// normalizing a changed email. The collision pre-check excludes the target
// row so a user may re-submit their own address.
func (s *profileService) Update(ctx context.Context, id uint, input ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}

	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		existing, err := s.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != id {
			return nil, apperrors.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		fields["email"] = email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}
	if input.Role != nil {
		fields["role"] = string(*input.Role)
	}

	if len(fields) == 0 {
		return s.users.FindByID(ctx, id)
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *profileService) Remove(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
