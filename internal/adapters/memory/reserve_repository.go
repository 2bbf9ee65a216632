package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drivelane/rental-backend/internal/domain/entities"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// ReserveRepository is the in-process implementation of
// repositories.ReserveRepository
type ReserveRepository struct {
	*Store[entities.Reserve]

	// bookMu serializes conflict-check + write so that two concurrent
	// reservations for overlapping windows cannot both succeed
	bookMu sync.Mutex
}

// NewReserveRepository creates an empty in-process reserve repository
func NewReserveRepository() *ReserveRepository {
	return &ReserveRepository{
		Store: NewStore(Config[entities.Reserve]{
			Name: "reserve",
			Matches: func(res entities.Reserve, filter string) bool {
				f := strings.ToLower(filter)
				return strings.Contains(strings.ToLower(res.UserID), f) ||
					strings.Contains(strings.ToLower(res.VehicleID), f)
			},
			Comparators: map[string]func(a, b entities.Reserve) int{
				"start_date": func(a, b entities.Reserve) int {
					return a.StartDate.Compare(b.StartDate)
				},
				"end_date": func(a, b entities.Reserve) int {
					return a.EndDate.Compare(b.EndDate)
				},
				"created_at": CompareCreatedAt[entities.Reserve],
			},
			Touch: func(res entities.Reserve, now time.Time) entities.Reserve {
				res.UpdatedAt = now
				return res
			},
		}),
	}
}

// Create constructs a reserve without persisting it
func (r *ReserveRepository) Create(props repositories.CreateReserveProps) entities.Reserve {
	now := time.Now()
	return entities.Reserve{
		ID:        uuid.NewString(),
		StartDate: props.StartDate,
		EndDate:   props.EndDate,
		VehicleID: props.VehicleID,
		UserID:    props.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindByUser retrieves all reserves made by a user
func (r *ReserveRepository) FindByUser(ctx context.Context, userID string) ([]entities.Reserve, error) {
	reserves := []entities.Reserve{}
	for _, res := range r.All() {
		if res.UserID == userID {
			reserves = append(reserves, res)
		}
	}
	return reserves, nil
}

// FindByVehicle retrieves all reserves of a vehicle
func (r *ReserveRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]entities.Reserve, error) {
	reserves := []entities.Reserve{}
	for _, res := range r.All() {
		if res.VehicleID == vehicleID {
			reserves = append(reserves, res)
		}
	}
	return reserves, nil
}

// FindConflicting returns a reserve of the vehicle whose window overlaps
// [start, end), or nil when none does
func (r *ReserveRepository) FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) (*entities.Reserve, error) {
	for _, res := range r.All() {
		if res.VehicleID != vehicleID || res.ID == excludeID {
			continue
		}
		if res.Overlaps(start, end) {
			found := res
			return &found, nil
		}
	}
	return nil, nil
}

// InsertChecked persists the reserve only if its window is free,
// running check and insert as one critical section
func (r *ReserveRepository) InsertChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	r.bookMu.Lock()
	defer r.bookMu.Unlock()

	conflict, err := r.FindConflicting(ctx, reserve.VehicleID, reserve.StartDate, reserve.EndDate, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, apperrors.NewConflictError("vehicle is already reserved for the selected period")
	}
	return r.Insert(ctx, reserve)
}

// UpdateChecked persists the updated reserve under the same critical
// section, ignoring the reserve's own window in the conflict check
func (r *ReserveRepository) UpdateChecked(ctx context.Context, reserve entities.Reserve) (*entities.Reserve, error) {
	r.bookMu.Lock()
	defer r.bookMu.Unlock()

	conflict, err := r.FindConflicting(ctx, reserve.VehicleID, reserve.StartDate, reserve.EndDate, reserve.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, apperrors.NewConflictError("vehicle is already reserved for the selected period")
	}
	return r.Update(ctx, reserve)
}
