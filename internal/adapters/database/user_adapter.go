package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	"github.com/drivelane/rental-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

var userSearchSpec = searchSpec{
	table: "users",
	columns: []any{
		"id", "name", "email", "password", "created_at", "updated_at",
	},
	filterCols: []string{"name", "email"},
	sortable: map[string]string{
		"name":       "name",
		"created_at": "created_at",
	},
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create constructs a user without persisting it
func (a *UserAdapter) Create(props repositories.CreateUserProps) entities.User {
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

// Insert persists the user
func (a *UserAdapter) Insert(ctx context.Context, user entities.User) (*entities.User, error) {
	query, args, err := a.db.Insert("users").Rows(goqu.Record{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.Password,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to insert user", err)
	}
	return &user, nil
}

// FindByID retrieves a user by id
func (a *UserAdapter) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return a.findOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %s not found", id))
}

// Update overwrites all fields of the stored user and refreshes updated_at
func (a *UserAdapter) Update(ctx context.Context, user entities.User) (*entities.User, error) {
	user.UpdatedAt = time.Now()

	query, args, err := a.db.Update("users").Set(goqu.Record{
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.Password,
		"updated_at": user.UpdatedAt,
	}).Where(goqu.Ex{"id": user.ID}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", user.ID))
	}
	return &user, nil
}

// Delete removes the user permanently
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return nil
}

// Search runs the filter -> sort -> paginate pipeline over users
func (a *UserAdapter) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.User], error) {
	return runSearch(ctx, a.client.DB(), userSearchSpec, a.db, query, func(rows rowScanner) (entities.User, error) {
		return scanUser(rows)
	})
}

// FindByEmail retrieves a user by email
func (a *UserAdapter) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.findOne(ctx, goqu.Ex{"email": email}, fmt.Sprintf("user with email %s not found", email))
}

// FindByName retrieves a user by name
func (a *UserAdapter) FindByName(ctx context.Context, name string) (*entities.User, error) {
	return a.findOne(ctx, goqu.Ex{"name": name}, fmt.Sprintf("user with name %s not found", name))
}

// ConflictingEmail fails with Conflict when the email is already in use
func (a *UserAdapter) ConflictingEmail(ctx context.Context, email string) error {
	query, args, err := a.db.From("users").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return apperrors.NewInternalError("failed to check user email", err)
	}
	if count > 0 {
		return apperrors.NewConflictError("email already in use")
	}
	return nil
}

func (a *UserAdapter) findOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.User, error) {
	query, args, err := a.db.From("users").
		Select(userSearchSpec.columns...).
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return &user, nil
}

func scanUser(row rowScanner) (entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
