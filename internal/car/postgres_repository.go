package car

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	keyCol string
}

// NewRepository creates a Repository backed by the given connection pool.
// keyCol names the cars table's key column; the two deployed schemas use
// "id" and "car_id". Config validates the value before it reaches here.
func NewRepository(pool *pgxpool.Pool, keyCol string) Repository {
	return &PostgresRepository{pool: pool, keyCol: keyCol}
}

func (r *PostgresRepository) columns() string {
	return r.keyCol + `, name, manufacturer, year, horsepower, top_speed_kph,
		zero_to_hundred_sec, price_usd, description, created_at, updated_at`
}

// List retrieves all cars ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars ORDER BY created_at DESC`, r.columns())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	defer rows.Close()

	cars := []Car{}
	for rows.Next() {
		var c Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("scanning car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating car rows: %w", err)
	}

	return cars, nil
}

// Create inserts a new car record and returns it with store-assigned fields.
func (r *PostgresRepository) Create(ctx context.Context, nc NewCar) (*Car, error) {
	query := fmt.Sprintf(`
		INSERT INTO cars (name, manufacturer, year, horsepower, top_speed_kph,
			zero_to_hundred_sec, price_usd, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, r.columns())

	row := r.pool.QueryRow(ctx, query,
		nc.Name,
		nc.Manufacturer,
		nc.Year,
		nc.Horsepower,
		nc.TopSpeedKPH,
		nc.ZeroToHundredSec,
		nc.PriceUSD,
		nc.Description,
	)

	var c Car
	if err := scanCar(row, &c); err != nil {
		return nil, fmt.Errorf("inserting car: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a single car by its key.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	query := fmt.Sprintf(`SELECT %s FROM cars WHERE %s = $1`, r.columns(), r.keyCol)

	var c Car
	if err := scanCar(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting car: %w", err)
	}

	return &c, nil
}

// Update applies the non-nil fields to the car under the given key and
// returns the updated record.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Car, error) {
	var sets []string
	var args []any
	argIdx := 1

	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, v)
		argIdx++
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Manufacturer != nil {
		add("manufacturer", *fields.Manufacturer)
	}
	if fields.Year != nil {
		add("year", *fields.Year)
	}
	if fields.Horsepower != nil {
		add("horsepower", *fields.Horsepower)
	}
	if fields.TopSpeedKPH != nil {
		add("top_speed_kph", *fields.TopSpeedKPH)
	}
	if fields.ZeroToHundredSec != nil {
		add("zero_to_hundred_sec", *fields.ZeroToHundredSec)
	}
	if fields.PriceUSD != nil {
		add("price_usd", *fields.PriceUSD)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE cars
		SET %s
		WHERE %s = $%d
		RETURNING %s`, strings.Join(sets, ", "), r.keyCol, argIdx, r.columns())
	args = append(args, id)

	var c Car
	if err := scanCar(r.pool.QueryRow(ctx, query, args...), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating car: %w", err)
	}

	return &c, nil
}

// Delete removes the car under the given key. Deleting an absent key yields
// ErrNotFound, so repeated deletes stay observable and harmless.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM cars WHERE %s = $1`, r.keyCol)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting car: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scanCar scans a car row in the column order produced by columns().
func scanCar(row pgx.Row, c *Car) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Manufacturer,
		&c.Year,
		&c.Horsepower,
		&c.TopSpeedKPH,
		&c.ZeroToHundredSec,
		&c.PriceUSD,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
