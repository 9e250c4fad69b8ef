package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all service settings, populated from environment
// variables.
type AppConfig struct {
	Port string

	// MongoURI empty means the service runs on in-memory stores.
	MongoURI    string
	MongoDBName string

	// UpstreamTimeout bounds each outbound call to the geocoding and
	// weather APIs. An explicit value, not the transport default.
	UpstreamTimeout time.Duration

	// Base URLs for the Open-Meteo endpoints; overridable for tests.
	GeocodingBaseURL string
	WeatherBaseURL   string

	// Gemini analysis. An empty key disables the analysis endpoint.
	GeminiAPIKey string
	GeminiModel  string

	// FarmLocation enables the daily rainfall auto-log job when set.
	FarmLocation string
	AutoLogHour  int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.MongoURI = os.Getenv("MONGODB_URI")
	cfg.MongoDBName = getenvDefault("MONGODB_DB_NAME", "farmlog")

	timeoutStr := getenvDefault("UPSTREAM_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %q", timeoutStr)
	}
	cfg.UpstreamTimeout = timeout

	cfg.GeocodingBaseURL = os.Getenv("GEOCODING_BASE_URL")
	cfg.WeatherBaseURL = os.Getenv("WEATHER_BASE_URL")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getenvDefault("GEMINI_MODEL", "gemini-2.0-flash")

	cfg.FarmLocation = os.Getenv("FARM_LOCATION")
	cfg.AutoLogHour = getenvInt("AUTO_LOG_HOUR", 6)
	if cfg.AutoLogHour < 0 || cfg.AutoLogHour > 23 {
		return nil, fmt.Errorf("invalid AUTO_LOG_HOUR: %d", cfg.AutoLogHour)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
