package repositories

import (
	"context"

	"github.com/drivelane/rental-backend/internal/domain/entities"
)

// CreateUserProps is the creation input for users. Password arrives
// already hashed; hashing belongs to the application layer.
type CreateUserProps struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository defines the interface for user data operations.
// Search filters on name and email; sortable fields are name and created_at.
type UserRepository interface {
	Repository[entities.User, CreateUserProps]

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindByName retrieves a user by name
	FindByName(ctx context.Context, name string) (*entities.User, error)

	// ConflictingEmail fails with Conflict when the email is already in use
	ConflictingEmail(ctx context.Context, email string) error
}
