// Package car is the resource gateway over the externally hosted cars table.
// It delegates every operation to the store and translates outcomes: zero
// rows on a key lookup is ErrNotFound, any store failure is a wrapped error
// the API layer reports as a storage error.
package car

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no car exists under the given key.
var ErrNotFound = errors.New("car not found")

// Repository provides CRUD operations on the cars table.
type Repository interface {
	// List returns all cars, most recently created first.
	List(ctx context.Context) ([]Car, error)

	// Create inserts a new car; the store assigns id and timestamps.
	Create(ctx context.Context, nc NewCar) (*Car, error)

	// GetByID retrieves a single car by its key.
	GetByID(ctx context.Context, id uuid.UUID) (*Car, error)

	// Update applies the non-nil fields and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Car, error)

	// Delete removes the car under the given key.
	Delete(ctx context.Context, id uuid.UUID) error
}
