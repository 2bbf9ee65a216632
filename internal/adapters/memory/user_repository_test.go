package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/rental-backend/internal/adapters/memory"
	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

func insertUser(t *testing.T, repo *memory.UserRepository, name, email string) entities.User {
	t.Helper()
	user := repo.Create(repositories.CreateUserProps{
		Name:     name,
		Email:    email,
		Password: "hashed-secret",
	})
	_, err := repo.Insert(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := memory.NewUserRepository()
	insertUser(t, repo, "Paulo", "paulo@example.com")

	found, err := repo.FindByEmail(context.Background(), "paulo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Paulo", found.Name)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestUserRepository_ConflictingEmail(t *testing.T) {
	repo := memory.NewUserRepository()
	insertUser(t, repo, "Paulo", "paulo@example.com")

	err := repo.ConflictingEmail(context.Background(), "paulo@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "email already in use")

	assert.NoError(t, repo.ConflictingEmail(context.Background(), "maria@example.com"))
}

func TestUserRepository_SearchFiltersOnNameAndEmail(t *testing.T) {
	repo := memory.NewUserRepository()
	insertUser(t, repo, "Paulo Silva", "paulo@example.com")
	insertUser(t, repo, "Maria Costa", "maria@rental.dev")
	insertUser(t, repo, "Ana Paula", "ana@example.com")

	// Matches name on two users
	result, err := repo.Search(context.Background(), repositories.SearchQuery{Filter: "paul"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	// Matches email only
	result, err = repo.Search(context.Background(), repositories.SearchQuery{Filter: "rental.dev"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Maria Costa", result.Items[0].Name)
}

func TestUserRepository_UpdateNotFound(t *testing.T) {
	repo := memory.NewUserRepository()

	_, err := repo.Update(context.Background(), entities.User{ID: "ghost"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "user with id ghost not found")
}
