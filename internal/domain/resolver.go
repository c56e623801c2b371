package domain

import (
	"context"
	"errors"
)

// ErrPlaceNotFound is returned by an ElevationResolver when no location
// matches the query.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceElevation is a resolved location with its elevation.
type PlaceElevation struct {
	PlaceName        string  `json:"place_name"`
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ElevationMeters  float64 `json:"elevation_meters"`
}

// ElevationResolver turns a place name into coordinates and an elevation.
// The classification engine never performs I/O itself; resolution is a
// collaborator capability supplied by an adapter.
type ElevationResolver interface {
	ResolvePlace(ctx context.Context, name string) (PlaceElevation, error)
}
