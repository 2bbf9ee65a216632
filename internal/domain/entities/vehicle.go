package entities

import (
	"time"
)

// Accessory is an optional extra fitted to a vehicle
type Accessory struct {
	Description string `json:"description"`
}

// Vehicle represents a rentable vehicle
type Vehicle struct {
	ID                 string      `json:"id" db:"id"`
	Name               string      `json:"name" db:"name"`
	Color              string      `json:"color" db:"color"`
	Year               int         `json:"year" db:"year"`
	ValuePerDay        float64     `json:"value_per_day" db:"value_per_day"`
	NumberOfPassengers int         `json:"number_of_passengers" db:"number_of_passengers"`
	Accessories        []Accessory `json:"accessories" db:"accessories"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// GetID implements the Identifiable interface
func (v Vehicle) GetID() string { return v.ID }

// GetCreatedAt implements the Identifiable interface
func (v Vehicle) GetCreatedAt() time.Time { return v.CreatedAt }
