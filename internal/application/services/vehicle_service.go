package services

import (
	"context"
	"strings"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// VehicleService handles vehicle business logic
type VehicleService struct {
	repo repositories.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repo repositories.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

// Create registers a new vehicle. The name must not already be in use.
func (s *VehicleService) Create(ctx context.Context, props repositories.CreateVehicleProps) (*entities.Vehicle, error) {
	if strings.TrimSpace(props.Name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if props.Year <= 0 {
		return nil, apperrors.NewValidationError("year is required")
	}
	if props.ValuePerDay <= 0 {
		return nil, apperrors.NewValidationError("value_per_day must be positive")
	}

	if err := s.repo.ConflictingName(ctx, props.Name); err != nil {
		return nil, err
	}

	vehicle := s.repo.Create(props)
	return s.repo.Insert(ctx, vehicle)
}

// GetByID retrieves a vehicle by id
func (s *VehicleService) GetByID(ctx context.Context, id string) (*entities.Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateVehicleProps carries the fields an update may change; nil fields
// keep their stored value
type UpdateVehicleProps struct {
	Name               *string              `json:"name"`
	Color              *string              `json:"color"`
	Year               *int                 `json:"year"`
	ValuePerDay        *float64             `json:"value_per_day"`
	NumberOfPassengers *int                 `json:"number_of_passengers"`
	Accessories        []entities.Accessory `json:"accessories"`
}

// Update merges the given fields into the stored vehicle and persists it
func (s *VehicleService) Update(ctx context.Context, id string, props UpdateVehicleProps) (*entities.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if props.Name != nil && *props.Name != vehicle.Name {
		if err := s.repo.ConflictingName(ctx, *props.Name); err != nil {
			return nil, err
		}
		vehicle.Name = *props.Name
	}
	if props.Color != nil {
		vehicle.Color = *props.Color
	}
	if props.Year != nil {
		vehicle.Year = *props.Year
	}
	if props.ValuePerDay != nil {
		vehicle.ValuePerDay = *props.ValuePerDay
	}
	if props.NumberOfPassengers != nil {
		vehicle.NumberOfPassengers = *props.NumberOfPassengers
	}
	if props.Accessories != nil {
		vehicle.Accessories = props.Accessories
	}

	return s.repo.Update(ctx, *vehicle)
}

// Delete removes a vehicle by id
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Search lists vehicles with filtering, sorting and pagination
func (s *VehicleService) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.Vehicle], error) {
	return s.repo.Search(ctx, query)
}
