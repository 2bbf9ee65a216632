package entities

import (
	"time"
)

// ReserveEventType identifies what happened to a reserve
type ReserveEventType string

const (
	ReserveEventCreated ReserveEventType = "reserve.created"
	ReserveEventUpdated ReserveEventType = "reserve.updated"
	ReserveEventDeleted ReserveEventType = "reserve.deleted"
)

// ReserveEvent is published on the event bus after a reserve write commits
type ReserveEvent struct {
	ID         string           `json:"id"`
	Type       ReserveEventType `json:"type"`
	ReserveID  string           `json:"reserve_id"`
	VehicleID  string           `json:"vehicle_id"`
	UserID     string           `json:"user_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}
