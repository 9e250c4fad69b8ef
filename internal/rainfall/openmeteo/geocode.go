package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/kmnair/farmlog/internal/rainfall"
)

// DefaultGeocodingBaseURL is the public Open-Meteo geocoding endpoint.
const DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"

// GeocodingClient implements rainfall.Geocoder against the Open-Meteo
// geocoding API. It requests exactly one candidate per query and does
// not evaluate relevance or population among same-named places.
type GeocodingClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewGeocodingClient creates a geocoding client. An empty baseURL
// selects the public endpoint.
func NewGeocodingClient(client *http.Client, baseURL string) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingBaseURL
	}
	return &GeocodingClient{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-geocoding"),
	}
}

// Resolve returns the first geocoding match for name. It fails with
// rainfall.ErrLocationNotFound when the API reports zero candidates.
func (c *GeocodingClient) Resolve(ctx context.Context, name string) (rainfall.GeoLocation, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	u := fmt.Sprintf("%s/v1/search?%s", c.baseURL, values.Encode())

	resp, err := doRequest(ctx, c.client, c.circuit, u)
	if err != nil {
		return rainfall.GeoLocation{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return rainfall.GeoLocation{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		return rainfall.GeoLocation{}, fmt.Errorf("%w: %s", rainfall.ErrLocationNotFound, name)
	}

	first := payload.Results[0]
	return rainfall.GeoLocation{
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		Name:      first.Name,
	}, nil
}
