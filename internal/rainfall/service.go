package rainfall

import (
	"context"
	"fmt"
	"time"
)

// Service composes geocoding and precipitation lookup into a single
// rainfall query. Each invocation is independent: the service holds no
// state between calls and performs no retries.
type Service struct {
	geocoder Geocoder
	source   PrecipitationSource
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, source PrecipitationSource) *Service {
	return &Service{
		geocoder: geocoder,
		source:   source,
	}
}

// GetRainfall resolves the query location, reduces the query date-time
// to a calendar date, and returns that day's precipitation sum. The
// call is all-or-nothing: a failure at any stage aborts the whole
// operation with stage-identifying context.
func (s *Service) GetRainfall(ctx context.Context, q Query) (Amount, error) {
	loc, err := s.geocoder.Resolve(ctx, q.Location)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to geocode location: %w", err)
	}

	day, err := calendarDate(q.Date)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid query date: %w", err)
	}

	sum, err := s.source.DailySum(ctx, loc.Latitude, loc.Longitude, day)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to fetch weather data: %w", err)
	}

	return Amount{Amount: sum}, nil
}

// calendarDate reduces an ISO-8601 date-time to YYYY-MM-DD. Only the
// calendar day is sent upstream; the weather API interprets it in the
// location's local time zone (timezone=auto).
func calendarDate(s string) (string, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// A bare calendar date is accepted as-is.
		if _, dayErr := time.Parse("2006-01-02", s); dayErr == nil {
			return s, nil
		}
		return "", err
	}
	return ts.Format("2006-01-02"), nil
}
