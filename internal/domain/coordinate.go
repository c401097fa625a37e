package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Coordinate represents a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// NewCoordinate validates lat and lon and returns the coordinate.
// Latitude is checked before longitude, so a pair with both out of range
// reports ErrInvalidLatitude.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate checks the coordinate against the WGS-84 ranges.
func (c Coordinate) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate coordinate: %w", err)
	}

	// Struct field order is Lat then Lon, and validator reports in that order,
	// but look the fields up explicitly so latitude always wins.
	for _, name := range []string{"Lat", "Lon"} {
		for _, fe := range fieldErrs {
			if fe.Field() != name {
				continue
			}
			if name == "Lat" {
				return fmt.Errorf("%w %v: valid latitude range is -90 to 90", ErrInvalidLatitude, c.Lat)
			}
			return fmt.Errorf("%w %v: valid longitude range is -180 to 180", ErrInvalidLongitude, c.Lon)
		}
	}
	return fmt.Errorf("validate coordinate: %w", err)
}
