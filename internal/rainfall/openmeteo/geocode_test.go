package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmnair/farmlog/internal/rainfall"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestGeocodingClient_Resolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Kochi", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"results":[{"latitude":9.93,"longitude":76.26,"name":"Kochi"},{"latitude":33.56,"longitude":133.53,"name":"Kochi"}]}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL)

	loc, err := c.Resolve(context.Background(), "Kochi")
	require.NoError(t, err)

	// First candidate only, even when more are returned.
	assert.Equal(t, rainfall.GeoLocation{Latitude: 9.93, Longitude: 76.26, Name: "Kochi"}, loc)
}

func TestGeocodingClient_Resolve_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL)

	_, err := c.Resolve(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, rainfall.ErrLocationNotFound)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestGeocodingClient_Resolve_MissingResultsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL)

	_, err := c.Resolve(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, rainfall.ErrLocationNotFound)
}

func TestGeocodingClient_Resolve_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL)

	_, err := c.Resolve(context.Background(), "Kochi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, rainfall.ErrLocationNotFound)
	assert.Contains(t, err.Error(), "geocoding request failed")
}
