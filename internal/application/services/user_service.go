package services

import (
	"context"
	"strings"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/providers"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// UserService handles user business logic
type UserService struct {
	repo repositories.UserRepository
	hash providers.HashProvider
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, hash providers.HashProvider) *UserService {
	return &UserService{repo: repo, hash: hash}
}

// Create registers a new user. The email must not already be in use and
// the password is hashed before it reaches the repository.
func (s *UserService) Create(ctx context.Context, props repositories.CreateUserProps) (*entities.User, error) {
	if strings.TrimSpace(props.Name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(props.Email) == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	if strings.TrimSpace(props.Password) == "" {
		return nil, apperrors.NewValidationError("password is required")
	}

	if err := s.repo.ConflictingEmail(ctx, props.Email); err != nil {
		return nil, err
	}

	hashed, err := s.hash.GenerateHash(props.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}
	props.Password = hashed

	user := s.repo.Create(props)
	return s.repo.Insert(ctx, user)
}

// GetByID retrieves a user by id
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUserProps carries the fields an update may change; nil fields
// keep their stored value
type UpdateUserProps struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update merges the given fields into the stored user. A new password is
// re-hashed; a new email must not already be in use.
func (s *UserService) Update(ctx context.Context, id string, props UpdateUserProps) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if props.Email != nil && *props.Email != user.Email {
		if err := s.repo.ConflictingEmail(ctx, *props.Email); err != nil {
			return nil, err
		}
		user.Email = *props.Email
	}
	if props.Name != nil {
		user.Name = *props.Name
	}
	if props.Password != nil {
		hashed, err := s.hash.GenerateHash(*props.Password)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		user.Password = hashed
	}

	return s.repo.Update(ctx, *user)
}

// Delete removes a user by id
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Search lists users with filtering, sorting and pagination
func (s *UserService) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.User], error) {
	return s.repo.Search(ctx, query)
}

// Authenticate verifies a user's credentials and returns the user on success
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.hash.CompareHash(password, user.Password) {
		return nil, apperrors.NewValidationError("invalid credentials")
	}
	return user, nil
}
