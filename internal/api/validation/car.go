package validation

import (
	"fmt"
	"strings"
	"time"
)

// The first production car dates to 1886; anything earlier is a typo.
const minYear = 1886

const (
	maxNameLen         = 120
	maxManufacturerLen = 120
	maxDescriptionLen  = 2000
	maxHorsepower      = 5000
	maxTopSpeedKPH     = 1000
)

// CreateCarRequest mirrors the fields needed for create validation. Name,
// manufacturer and year are the required core; the rest are optional
// descriptive attributes.
type CreateCarRequest struct {
	Name             string
	Manufacturer     string
	Year             int
	Horsepower       *int
	TopSpeedKPH      *int
	ZeroToHundredSec *float64
	PriceUSD         *float64
	Description      *string
}

// UpdateCarRequest mirrors the fields needed for update validation. All
// fields are optional; present fields obey the same constraints as creation.
type UpdateCarRequest struct {
	Name             *string
	Manufacturer     *string
	Year             *int
	Horsepower       *int
	TopSpeedKPH      *int
	ZeroToHundredSec *float64
	PriceUSD         *float64
	Description      *string
}

// ValidateCreateCar checks a car creation payload. Returns nil when valid,
// otherwise the first violated constraint.
func ValidateCreateCar(req CreateCarRequest) *FieldError {
	if strings.TrimSpace(req.Name) == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if err := checkName(req.Name); err != nil {
		return err
	}

	if strings.TrimSpace(req.Manufacturer) == "" {
		return &FieldError{Field: "manufacturer", Message: "manufacturer is required"}
	}
	if err := checkManufacturer(req.Manufacturer); err != nil {
		return err
	}

	if req.Year == 0 {
		return &FieldError{Field: "year", Message: "year is required"}
	}
	if err := checkYear(req.Year); err != nil {
		return err
	}

	return checkDescriptive(req.Horsepower, req.TopSpeedKPH, req.ZeroToHundredSec, req.PriceUSD, req.Description)
}

// ValidateUpdateCar checks a partial car update payload. Returns nil when
// valid, otherwise the first violated constraint.
func ValidateUpdateCar(req UpdateCarRequest) *FieldError {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return &FieldError{Field: "name", Message: "name must not be empty"}
		}
		if err := checkName(*req.Name); err != nil {
			return err
		}
	}

	if req.Manufacturer != nil {
		if strings.TrimSpace(*req.Manufacturer) == "" {
			return &FieldError{Field: "manufacturer", Message: "manufacturer must not be empty"}
		}
		if err := checkManufacturer(*req.Manufacturer); err != nil {
			return err
		}
	}

	if req.Year != nil {
		if err := checkYear(*req.Year); err != nil {
			return err
		}
	}

	return checkDescriptive(req.Horsepower, req.TopSpeedKPH, req.ZeroToHundredSec, req.PriceUSD, req.Description)
}

func checkName(name string) *FieldError {
	if len(name) > maxNameLen {
		return &FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxNameLen)}
	}
	return nil
}

func checkManufacturer(m string) *FieldError {
	if len(m) > maxManufacturerLen {
		return &FieldError{Field: "manufacturer", Message: fmt.Sprintf("manufacturer must be at most %d characters", maxManufacturerLen)}
	}
	return nil
}

func checkYear(year int) *FieldError {
	maxTolerated := time.Now().Year() + 1
	if year < minYear || year > maxTolerated {
		return &FieldError{Field: "year", Message: fmt.Sprintf("year must be between %d and %d", minYear, maxTolerated)}
	}
	return nil
}

func checkDescriptive(hp, topSpeed *int, zeroToHundred, price *float64, description *string) *FieldError {
	if hp != nil && (*hp < 0 || *hp > maxHorsepower) {
		return &FieldError{Field: "horsepower", Message: fmt.Sprintf("horsepower must be between 0 and %d", maxHorsepower)}
	}
	if topSpeed != nil && (*topSpeed < 0 || *topSpeed > maxTopSpeedKPH) {
		return &FieldError{Field: "topSpeedKph", Message: fmt.Sprintf("topSpeedKph must be between 0 and %d", maxTopSpeedKPH)}
	}
	if zeroToHundred != nil && *zeroToHundred <= 0 {
		return &FieldError{Field: "zeroToHundredSec", Message: "zeroToHundredSec must be greater than 0"}
	}
	if price != nil && *price < 0 {
		return &FieldError{Field: "priceUsd", Message: "priceUsd must not be negative"}
	}
	if description != nil && len(*description) > maxDescriptionLen {
		return &FieldError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)}
	}
	return nil
}
