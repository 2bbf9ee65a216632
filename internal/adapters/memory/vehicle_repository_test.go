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

func insertVehicle(t *testing.T, repo *memory.VehicleRepository, name string) entities.Vehicle {
	t.Helper()
	vehicle := repo.Create(repositories.CreateVehicleProps{
		Name:               name,
		Color:              "black",
		Year:               2024,
		ValuePerDay:        120,
		NumberOfPassengers: 5,
	})
	_, err := repo.Insert(context.Background(), vehicle)
	require.NoError(t, err)
	return vehicle
}

func TestVehicleRepository_CreateAssignsIdentity(t *testing.T) {
	repo := memory.NewVehicleRepository()

	vehicle := repo.Create(repositories.CreateVehicleProps{
		Name:        "Ford Ka",
		Year:        2022,
		ValuePerDay: 80,
		Accessories: []entities.Accessory{{Description: "air conditioning"}},
	})

	assert.NotEmpty(t, vehicle.ID)
	assert.False(t, vehicle.CreatedAt.IsZero())
	assert.Equal(t, vehicle.CreatedAt, vehicle.UpdatedAt)
	assert.Len(t, vehicle.Accessories, 1)

	// Create alone does not persist
	assert.Zero(t, repo.Len())
}

func TestVehicleRepository_FindByID_NotFound(t *testing.T) {
	repo := memory.NewVehicleRepository()

	_, err := repo.FindByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "vehicle with id nope not found")
}

func TestVehicleRepository_FindByName(t *testing.T) {
	repo := memory.NewVehicleRepository()
	insertVehicle(t, repo, "Ford Ka")

	found, err := repo.FindByName(context.Background(), "Ford Ka")
	require.NoError(t, err)
	assert.Equal(t, "Ford Ka", found.Name)

	_, err = repo.FindByName(context.Background(), "Fiat Uno")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestVehicleRepository_ConflictingName(t *testing.T) {
	repo := memory.NewVehicleRepository()
	insertVehicle(t, repo, "Ford Ka")

	err := repo.ConflictingName(context.Background(), "Ford Ka")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	assert.NoError(t, repo.ConflictingName(context.Background(), "Fiat Uno"))
}

func TestVehicleRepository_FindAllByIDs_SkipsAbsent(t *testing.T) {
	repo := memory.NewVehicleRepository()
	v1 := insertVehicle(t, repo, "Ford Ka")
	v2 := insertVehicle(t, repo, "Fiat Uno")

	found, err := repo.FindAllByIDs(context.Background(), []string{v1.ID, "absent", v2.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, v1.ID, found[0].ID)
	assert.Equal(t, v2.ID, found[1].ID)
}

func TestVehicleRepository_SearchDefaultDirectionIsDescending(t *testing.T) {
	repo := memory.NewVehicleRepository()
	insertVehicle(t, repo, "b")
	insertVehicle(t, repo, "a")
	insertVehicle(t, repo, "c")

	// No direction given: vehicles sort descending
	result, err := repo.Search(context.Background(), repositories.SearchQuery{Sort: "name"})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "c", result.Items[0].Name)
	assert.Equal(t, "b", result.Items[1].Name)
	assert.Equal(t, "a", result.Items[2].Name)

	// Same for a direction that is not asc/desc
	result, err = repo.Search(context.Background(), repositories.SearchQuery{Sort: "name", SortDir: "sideways"})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "c", result.Items[0].Name)

	// An explicit ascending direction still wins
	result, err = repo.Search(context.Background(), repositories.SearchQuery{Sort: "name", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "a", result.Items[0].Name)
}

func TestVehicleRepository_SearchFiltersOnName(t *testing.T) {
	repo := memory.NewVehicleRepository()
	insertVehicle(t, repo, "Ford Ka")
	insertVehicle(t, repo, "Ford Fiesta")
	insertVehicle(t, repo, "Fiat Uno")

	result, err := repo.Search(context.Background(), repositories.SearchQuery{
		Filter:  "ford",
		Sort:    "name",
		SortDir: "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Ford Fiesta", result.Items[0].Name)
	assert.Equal(t, "Ford Ka", result.Items[1].Name)
}
