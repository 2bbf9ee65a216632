package repositories

import (
	"context"

	"github.com/drivelane/rental-backend/internal/domain/entities"
)

// CreateVehicleProps is the creation input for vehicles
type CreateVehicleProps struct {
	Name               string               `json:"name"`
	Color              string               `json:"color"`
	Year               int                  `json:"year"`
	ValuePerDay        float64              `json:"value_per_day"`
	NumberOfPassengers int                  `json:"number_of_passengers"`
	Accessories        []entities.Accessory `json:"accessories"`
}

// VehicleRepository defines the interface for vehicle data operations.
// Search filters on name; sortable fields are name and created_at.
type VehicleRepository interface {
	Repository[entities.Vehicle, CreateVehicleProps]

	// FindByName retrieves a vehicle by its exact name
	FindByName(ctx context.Context, name string) (*entities.Vehicle, error)

	// FindAllByIDs retrieves the vehicles whose ids exist, skipping absent ones
	FindAllByIDs(ctx context.Context, ids []string) ([]entities.Vehicle, error)

	// ConflictingName fails with Conflict when the name is already in use
	ConflictingName(ctx context.Context, name string) error
}
