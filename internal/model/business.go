package model

import (
	"github.com/google/uuid"
)

// Business is a tenant on the platform. Its address is optional; a
// business with no address on file simply cannot be ranked by distance.
type Business struct {
	Base
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description,omitempty"`
	Phone       string   `db:"phone" json:"phone,omitempty"`
	Category    string   `db:"category" json:"category,omitempty"`
	Address     *Address `db:"-" json:"address,omitempty"`
}

type Address struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Street     string    `db:"street" json:"street,omitempty"`
	City       string    `db:"city" json:"city,omitempty"`
	State      string    `db:"state" json:"state,omitempty"`
	PostalCode string    `db:"postal_code" json:"postal_code,omitempty"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
}

// BusinessWithDistance annotates a business with its great-circle
// distance from the caller. Computed fresh per query, never persisted.
// DistanceKm is nil when no user location was supplied.
type BusinessWithDistance struct {
	Business
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Professional performs services for one business.
type Professional struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Specialty  string    `db:"specialty" json:"specialty,omitempty"`
	Active     bool      `db:"is_active" json:"is_active"`
}
