package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
)

// DefaultWeatherBaseURL is the public Open-Meteo forecast endpoint.
const DefaultWeatherBaseURL = "https://api.open-meteo.com"

// ForecastClient implements rainfall.PrecipitationSource against the
// Open-Meteo forecast API.
type ForecastClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewForecastClient creates a forecast client. An empty baseURL
// selects the public endpoint.
func NewForecastClient(client *http.Client, baseURL string) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-forecast"),
	}
}

// DailySum returns the precipitation sum in millimeters for the given
// calendar date (YYYY-MM-DD) at the given coordinates. A missing daily
// series, an empty series, or a null value for the day means no
// measurable precipitation was reported and yields 0; only transport
// failures and non-success statuses are errors.
func (c *ForecastClient) DailySum(ctx context.Context, lat, lon float64, date string) (float64, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("daily", "precipitation_sum")
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("timezone", "auto")

	u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, values.Encode())

	resp, err := doRequest(ctx, c.client, c.circuit, u)
	if err != nil {
		return 0, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			PrecipitationSum []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode weather response: %w", err)
	}

	if len(payload.Daily.PrecipitationSum) == 0 || payload.Daily.PrecipitationSum[0] == nil {
		return 0, nil
	}
	return *payload.Daily.PrecipitationSum[0], nil
}
