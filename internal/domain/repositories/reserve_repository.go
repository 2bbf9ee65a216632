package repositories

import (
	"context"
	"time"

	"github.com/drivelane/rental-backend/internal/domain/entities"
)

// CreateReserveProps is the creation input for reserves
type CreateReserveProps struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	VehicleID string    `json:"vehicle_id"`
	UserID    string    `json:"user_id"`
}

// ReserveRepository defines the interface for reservation data operations.
// Search filters on user_id and vehicle_id; sortable fields are
// start_date, end_date and created_at.
type ReserveRepository interface {
	Repository[entities.Reserve, CreateReserveProps]

	// FindByUser retrieves all reserves made by a user
	FindByUser(ctx context.Context, userID string) ([]entities.Reserve, error)

	// FindByVehicle retrieves all reserves of a vehicle
	FindByVehicle(ctx context.Context, vehicleID string) ([]entities.Reserve, error)

	// FindConflicting returns a reserve of the vehicle whose window overlaps
	// [start, end), or nil when none does. A reserve with id excludeID is
	// never reported; pass "" to consider every reserve. When several
	// overlap, which one is returned is unspecified.
	FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) (*entities.Reserve, error)

	// InsertChecked persists the reserve only if no existing reserve of the
	// same vehicle overlaps its window, running the conflict check and the
	// insert as one critical section. Fails with Conflict on overlap.
	InsertChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error)

	// UpdateChecked persists the updated reserve under the same critical
	// section, excluding the reserve's own id from the conflict check.
	UpdateChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error)
}
