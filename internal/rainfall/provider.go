package rainfall

import (
	"context"
	"errors"
)

// ErrLocationNotFound is returned when geocoding produces zero
// candidates for a place name.
var ErrLocationNotFound = errors.New("could not find location")

// Geocoder resolves a free-text place name to coordinates.
// Implementations take the first candidate match only; same-named
// places are not disambiguated.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (GeoLocation, error)
}

// PrecipitationSource reports the precipitation sum for a single
// calendar day (YYYY-MM-DD), interpreted in the location's local
// time zone.
type PrecipitationSource interface {
	DailySum(ctx context.Context, lat, lon float64, date string) (float64, error)
}
