package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pitstop-labs/pitstop/internal/api/response"
	"github.com/pitstop-labs/pitstop/internal/api/validation"
	"github.com/pitstop-labs/pitstop/internal/car"
)

// createCarRequest is the request body for POST /cars.
type createCarRequest struct {
	Name             string   `json:"name"`
	Manufacturer     string   `json:"manufacturer"`
	Year             int      `json:"year"`
	Horsepower       *int     `json:"horsepower,omitempty"`
	TopSpeedKPH      *int     `json:"topSpeedKph,omitempty"`
	ZeroToHundredSec *float64 `json:"zeroToHundredSec,omitempty"`
	PriceUSD         *float64 `json:"priceUsd,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

// updateCarRequest is the request body for PUT /cars/{id}. Absent fields are
// left unchanged.
type updateCarRequest struct {
	Name             *string  `json:"name,omitempty"`
	Manufacturer     *string  `json:"manufacturer,omitempty"`
	Year             *int     `json:"year,omitempty"`
	Horsepower       *int     `json:"horsepower,omitempty"`
	TopSpeedKPH      *int     `json:"topSpeedKph,omitempty"`
	ZeroToHundredSec *float64 `json:"zeroToHundredSec,omitempty"`
	PriceUSD         *float64 `json:"priceUsd,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

// carResponse is the API representation of a car record. The id key is
// always "id" regardless of the store's key column name.
type carResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Manufacturer     string   `json:"manufacturer"`
	Year             int      `json:"year"`
	Horsepower       *int     `json:"horsepower,omitempty"`
	TopSpeedKPH      *int     `json:"topSpeedKph,omitempty"`
	ZeroToHundredSec *float64 `json:"zeroToHundredSec,omitempty"`
	PriceUSD         *float64 `json:"priceUsd,omitempty"`
	Description      *string  `json:"description,omitempty"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// toCarResponse converts a car model to its API response representation.
func toCarResponse(c *car.Car) carResponse {
	return carResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Manufacturer:     c.Manufacturer,
		Year:             c.Year,
		Horsepower:       c.Horsepower,
		TopSpeedKPH:      c.TopSpeedKPH,
		ZeroToHundredSec: c.ZeroToHundredSec,
		PriceUSD:         c.PriceUSD,
		Description:      c.Description,
		CreatedAt:        c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        c.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// CarHandler handles car CRUD endpoints.
type CarHandler struct {
	repo car.Repository
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(repo car.Repository) *CarHandler {
	return &CarHandler{repo: repo}
}

// List handles GET /cars.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list cars", "error", err)
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "Failed to list cars")
		return
	}

	items := make([]carResponse, 0, len(cars))
	for i := range cars {
		items = append(items, toCarResponse(&cars[i]))
	}

	response.Success(w, http.StatusOK, "Cars listed", items)
}

// Create handles POST /cars. Validation runs before any store call, so an
// invalid payload leaves no partial side effect.
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidJSON, "Request body must be valid JSON")
		return
	}

	if fieldErr := validation.ValidateCreateCar(validation.CreateCarRequest{
		Name:             req.Name,
		Manufacturer:     req.Manufacturer,
		Year:             req.Year,
		Horsepower:       req.Horsepower,
		TopSpeedKPH:      req.TopSpeedKPH,
		ZeroToHundredSec: req.ZeroToHundredSec,
		PriceUSD:         req.PriceUSD,
		Description:      req.Description,
	}); fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	created, err := h.repo.Create(r.Context(), car.NewCar{
		Name:             req.Name,
		Manufacturer:     req.Manufacturer,
		Year:             req.Year,
		Horsepower:       req.Horsepower,
		TopSpeedKPH:      req.TopSpeedKPH,
		ZeroToHundredSec: req.ZeroToHundredSec,
		PriceUSD:         req.PriceUSD,
		Description:      req.Description,
	})
	if err != nil {
		slog.Error("failed to create car", "error", err)
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "Failed to create car")
		return
	}

	response.Success(w, http.StatusCreated, "Car created", toCarResponse(created))
}

// GetByID handles GET /cars/{id}.
func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, fieldErr := carID(r)
	if fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			response.Err(w, http.StatusNotFound, response.CodeNotFound, "Car not found")
			return
		}
		slog.Error("failed to get car", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "Failed to get car")
		return
	}

	response.Success(w, http.StatusOK, "Car loaded", toCarResponse(c))
}

// Update handles PUT /cars/{id}.
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, fieldErr := carID(r)
	if fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req updateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidJSON, "Request body must be valid JSON")
		return
	}

	if fieldErr := validation.ValidateUpdateCar(validation.UpdateCarRequest{
		Name:             req.Name,
		Manufacturer:     req.Manufacturer,
		Year:             req.Year,
		Horsepower:       req.Horsepower,
		TopSpeedKPH:      req.TopSpeedKPH,
		ZeroToHundredSec: req.ZeroToHundredSec,
		PriceUSD:         req.PriceUSD,
		Description:      req.Description,
	}); fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	updated, err := h.repo.Update(r.Context(), id, car.UpdateFields{
		Name:             req.Name,
		Manufacturer:     req.Manufacturer,
		Year:             req.Year,
		Horsepower:       req.Horsepower,
		TopSpeedKPH:      req.TopSpeedKPH,
		ZeroToHundredSec: req.ZeroToHundredSec,
		PriceUSD:         req.PriceUSD,
		Description:      req.Description,
	})
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			response.Err(w, http.StatusNotFound, response.CodeNotFound, "Car not found")
			return
		}
		slog.Error("failed to update car", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "Failed to update car")
		return
	}

	response.Success(w, http.StatusOK, "Car updated", toCarResponse(updated))
}

// Delete handles DELETE /cars/{id}. Deleting an absent key is 404 every
// time, so repeated deletes are safe.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, fieldErr := carID(r)
	if fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			response.Err(w, http.StatusNotFound, response.CodeNotFound, "Car not found")
			return
		}
		slog.Error("failed to delete car", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, response.CodeStorageError, "Failed to delete car")
		return
	}

	response.Success(w, http.StatusOK, "Car deleted", nil)
}

func carID(r *http.Request) (uuid.UUID, *validation.FieldError) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &validation.FieldError{Field: "id", Message: "id must be a valid UUID"}
	}
	return id, nil
}
