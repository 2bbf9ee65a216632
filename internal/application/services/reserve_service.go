package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/providers"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// ReserveService handles booking logic: a reserve is accepted only when
// its vehicle has no other reserve overlapping the requested window.
type ReserveService struct {
	repo        repositories.ReserveRepository
	vehicleRepo repositories.VehicleRepository
	userRepo    repositories.UserRepository
	eventBus    providers.EventBus
}

// NewReserveService creates a new reserve service. The event bus may be
// nil, in which case lifecycle events are not published.
func NewReserveService(
	repo repositories.ReserveRepository,
	vehicleRepo repositories.VehicleRepository,
	userRepo repositories.UserRepository,
	eventBus providers.EventBus,
) *ReserveService {
	return &ReserveService{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
	}
}

// Create books a vehicle for a user over [start_date, end_date)
func (s *ReserveService) Create(ctx context.Context, props repositories.CreateReserveProps) (*entities.Reserve, error) {
	if props.StartDate.IsZero() || props.EndDate.IsZero() || props.VehicleID == "" || props.UserID == "" {
		return nil, apperrors.NewValidationError("start_date, end_date, vehicle_id and user_id are required")
	}
	if !props.StartDate.Before(props.EndDate) {
		return nil, apperrors.NewValidationError("start_date must be before end_date")
	}
	if props.StartDate.Before(time.Now()) {
		return nil, apperrors.NewValidationError("start_date cannot be in the past")
	}

	if _, err := s.userRepo.FindByID(ctx, props.UserID); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.FindByID(ctx, props.VehicleID); err != nil {
		return nil, err
	}

	reserve := s.repo.Create(props)
	created, err := s.repo.InsertChecked(ctx, reserve)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ReserveEventCreated, created)
	return created, nil
}

// GetByID retrieves a reserve by id
func (s *ReserveService) GetByID(ctx context.Context, id string) (*entities.Reserve, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateReserveProps carries the fields an update may change; nil fields
// keep their stored value
type UpdateReserveProps struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	VehicleID *string    `json:"vehicle_id"`
	UserID    *string    `json:"user_id"`
}

// Update merges the given fields into the stored reserve. When the window
// or the vehicle changes the merged reserve is re-checked for conflicts,
// excluding the reserve itself so it never collides with its own window.
func (s *ReserveService) Update(ctx context.Context, id string, props UpdateReserveProps) (*entities.Reserve, error) {
	reserve, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	windowChanged := false
	if props.StartDate != nil && !props.StartDate.Equal(reserve.StartDate) {
		reserve.StartDate = *props.StartDate
		windowChanged = true
	}
	if props.EndDate != nil && !props.EndDate.Equal(reserve.EndDate) {
		reserve.EndDate = *props.EndDate
		windowChanged = true
	}
	if props.VehicleID != nil && *props.VehicleID != reserve.VehicleID {
		if _, err := s.vehicleRepo.FindByID(ctx, *props.VehicleID); err != nil {
			return nil, err
		}
		reserve.VehicleID = *props.VehicleID
		windowChanged = true
	}
	if props.UserID != nil && *props.UserID != reserve.UserID {
		if _, err := s.userRepo.FindByID(ctx, *props.UserID); err != nil {
			return nil, err
		}
		reserve.UserID = *props.UserID
	}

	if !reserve.StartDate.Before(reserve.EndDate) {
		return nil, apperrors.NewValidationError("start_date must be before end_date")
	}

	var updated *entities.Reserve
	if windowChanged {
		updated, err = s.repo.UpdateChecked(ctx, *reserve)
	} else {
		updated, err = s.repo.Update(ctx, *reserve)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ReserveEventUpdated, updated)
	return updated, nil
}

// Delete removes a reserve by id
func (s *ReserveService) Delete(ctx context.Context, id string) error {
	reserve, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.ReserveEventDeleted, reserve)
	return nil
}

// Search lists reserves with filtering, sorting and pagination
func (s *ReserveService) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[entities.Reserve], error) {
	return s.repo.Search(ctx, query)
}

// ListByUser retrieves all reserves made by a user
func (s *ReserveService) ListByUser(ctx context.Context, userID string) ([]entities.Reserve, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID)
}

// ListByVehicle retrieves all reserves of a vehicle
func (s *ReserveService) ListByVehicle(ctx context.Context, vehicleID string) ([]entities.Reserve, error) {
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.repo.FindByVehicle(ctx, vehicleID)
}

func (s *ReserveService) publish(ctx context.Context, eventType entities.ReserveEventType, reserve *entities.Reserve) {
	if s.eventBus == nil {
		return
	}

	event := &entities.ReserveEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ReserveID:  reserve.ID,
		VehicleID:  reserve.VehicleID,
		UserID:     reserve.UserID,
		OccurredAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, providers.ReserveChannel, event); err != nil {
		log.Warn().Err(err).Str("reserve_id", reserve.ID).Msg("failed to publish reserve event")
	}
}
