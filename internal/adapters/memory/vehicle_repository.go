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

// VehicleRepository is the in-process implementation of
// repositories.VehicleRepository
type VehicleRepository struct {
	*Store[entities.Vehicle]
}

// NewVehicleRepository creates an empty in-process vehicle repository
func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{
		Store: NewStore(Config[entities.Vehicle]{
			Name: "vehicle",
			Matches: func(v entities.Vehicle, filter string) bool {
				return strings.Contains(strings.ToLower(v.Name), strings.ToLower(filter))
			},
			Comparators: map[string]func(a, b entities.Vehicle) int{
				"name": func(a, b entities.Vehicle) int {
					return strings.Compare(a.Name, b.Name)
				},
				"created_at": CompareCreatedAt[entities.Vehicle],
			},
			// Vehicles sort descending when the caller gives no direction
			DefaultDir: repositories.SortDesc,
			Touch: func(v entities.Vehicle, now time.Time) entities.Vehicle {
				v.UpdatedAt = now
				return v
			},
		}),
	}
}

// Create constructs a vehicle without persisting it
func (r *VehicleRepository) Create(props repositories.CreateVehicleProps) entities.Vehicle {
	now := time.Now()
	return entities.Vehicle{
		ID:                 uuid.NewString(),
		Name:               props.Name,
		Color:              props.Color,
		Year:               props.Year,
		ValuePerDay:        props.ValuePerDay,
		NumberOfPassengers: props.NumberOfPassengers,
		Accessories:        props.Accessories,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// FindByName retrieves a vehicle by its exact name
func (r *VehicleRepository) FindByName(ctx context.Context, name string) (*entities.Vehicle, error) {
	for _, v := range r.All() {
		if v.Name == name {
			found := v
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("vehicle with name %s not found", name))
}

// FindAllByIDs retrieves the vehicles whose ids exist, skipping absent ones
func (r *VehicleRepository) FindAllByIDs(ctx context.Context, ids []string) ([]entities.Vehicle, error) {
	byID := make(map[string]entities.Vehicle)
	for _, v := range r.All() {
		byID[v.ID] = v
	}
	found := make([]entities.Vehicle, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			found = append(found, v)
		}
	}
	return found, nil
}

// ConflictingName fails with Conflict when the name is already in use
func (r *VehicleRepository) ConflictingName(ctx context.Context, name string) error {
	for _, v := range r.All() {
		if v.Name == name {
			return apperrors.NewConflictError("name already used on another vehicle")
		}
	}
	return nil
}
