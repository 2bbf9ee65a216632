package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// UserRepository is the in-process implementation of
// repositories.UserRepository
type UserRepository struct {
	*Store[entities.User]
}

// NewUserRepository creates an empty in-process user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		Store: NewStore(Config[entities.User]{
			Name: "user",
			Matches: func(u entities.User, filter string) bool {
				f := strings.ToLower(filter)
				return strings.Contains(strings.ToLower(u.Name), f) ||
					strings.Contains(strings.ToLower(u.Email), f)
			},
			Comparators: map[string]func(a, b entities.User) int{
				"name": func(a, b entities.User) int {
					return strings.Compare(a.Name, b.Name)
				},
				"created_at": CompareCreatedAt[entities.User],
			},
			Touch: func(u entities.User, now time.Time) entities.User {
				u.UpdatedAt = now
				return u
			},
		}),
	}
}

// Create constructs a user without persisting it
func (r *UserRepository) Create(props repositories.CreateUserProps) entities.User {
	now := time.Now()
	return entities.User{
		ID:        uuid.NewString(),
		Name:      props.Name,
		Email:     props.Email,
		Password:  props.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.All() {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

// FindByName retrieves a user by name
func (r *UserRepository) FindByName(ctx context.Context, name string) (*entities.User, error) {
	for _, u := range r.All() {
		if u.Name == name {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with name %s not found", name))
}

// ConflictingEmail fails with Conflict when the email is already in use
func (r *UserRepository) ConflictingEmail(ctx context.Context, email string) error {
	for _, u := range r.All() {
		if u.Email == email {
			return apperrors.NewConflictError("email already in use")
		}
	}
	return nil
}
