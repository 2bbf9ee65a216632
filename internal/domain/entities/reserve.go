package entities

import (
	"time"
)

// Reserve represents a booking of one vehicle by one user over the
// half-open window [StartDate, EndDate).
type Reserve struct {
	ID        string    `json:"id" db:"id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	VehicleID string    `json:"vehicle_id" db:"vehicle_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GetID implements the Identifiable interface
func (r Reserve) GetID() string { return r.ID }

// GetCreatedAt implements the Identifiable interface
func (r Reserve) GetCreatedAt() time.Time { return r.CreatedAt }

// Overlaps reports whether the window [start, end) collides with this
// reserve's window. The clause boundaries are deliberate: a reserve that
// starts exactly when another ends does not overlap it.
func (r Reserve) Overlaps(start, end time.Time) bool {
	startsInside := (start.After(r.StartDate) || start.Equal(r.StartDate)) && start.Before(r.EndDate)
	endsInside := end.After(r.StartDate) && (end.Before(r.EndDate) || end.Equal(r.EndDate))
	encloses := (start.Before(r.StartDate) || start.Equal(r.StartDate)) && (end.After(r.EndDate) || end.Equal(r.EndDate))
	return startsInside || endsInside || encloses
}
