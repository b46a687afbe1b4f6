package car

import (
	"time"

	"github.com/google/uuid"
)

// Car represents a row in the cars table: a flat attribute record keyed by a
// single identifier the store assigns.
type Car struct {
	ID               uuid.UUID
	Name             string
	Manufacturer     string
	Year             int
	Horsepower       *int
	TopSpeedKPH      *int
	ZeroToHundredSec *float64
	PriceUSD         *float64
	Description      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCar holds the fields a caller supplies on creation. The store assigns
// the identifier and timestamps.
type NewCar struct {
	Name             string
	Manufacturer     string
	Year             int
	Horsepower       *int
	TopSpeedKPH      *int
	ZeroToHundredSec *float64
	PriceUSD         *float64
	Description      *string
}

// UpdateFields holds the caller-updatable fields of a car record. Nil fields
// are left untouched.
type UpdateFields struct {
	Name             *string
	Manufacturer     *string
	Year             *int
	Horsepower       *int
	TopSpeedKPH      *int
	ZeroToHundredSec *float64
	PriceUSD         *float64
	Description      *string
}
