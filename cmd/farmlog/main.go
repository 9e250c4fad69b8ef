package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kmnair/farmlog/internal/analysis"
	httpapi "github.com/kmnair/farmlog/internal/api/http"
	"github.com/kmnair/farmlog/internal/config"
	"github.com/kmnair/farmlog/internal/observability"
	"github.com/kmnair/farmlog/internal/rainfall"
	"github.com/kmnair/farmlog/internal/rainfall/openmeteo"
	"github.com/kmnair/farmlog/internal/records"
	"github.com/kmnair/farmlog/internal/scheduler"
	"github.com/kmnair/farmlog/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound pipeline calls, with the
	// configured explicit timeout.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	// Record stores: MongoDB when configured, in-memory otherwise.
	var (
		harvestStore  records.HarvestStore
		rainfallStore records.RainfallStore
		intervalStore records.IntervalStore
	)
	if cfg.MongoURI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := store.Connect(connectCtx, cfg.MongoURI)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Printf("error disconnecting mongodb: %v", err)
			}
		}()

		db := client.Database(cfg.MongoDBName)
		harvestStore = store.NewMongoHarvestStore(db)
		rainfallStore = store.NewMongoRainfallStore(db)
		intervalStore = store.NewMongoIntervalStore(db)
	} else {
		log.Println("INFO: MONGODB_URI not set; using in-memory stores")
		harvestStore = store.NewMemoryHarvestStore()
		rainfallStore = store.NewMemoryRainfallStore()
		intervalStore = store.NewMemoryIntervalStore()
	}

	// Rainfall retrieval pipeline over the Open-Meteo clients.
	geocoder := openmeteo.NewGeocodingClient(httpClient, cfg.GeocodingBaseURL)
	forecast := openmeteo.NewForecastClient(httpClient, cfg.WeatherBaseURL)
	pipeline := rainfall.NewService(geocoder, forecast)

	// AI analysis, when a Gemini key is configured.
	var analysisSvc *analysis.Service
	if cfg.GeminiAPIKey != "" {
		model, err := analysis.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to create gemini model: %v", err)
		}
		analysisSvc = analysis.NewService(model)
	} else {
		log.Println("INFO: GEMINI_API_KEY not set; analysis endpoint disabled")
	}

	metrics := observability.NewMetrics()

	// Daily rainfall auto-log for the configured farm location.
	sched := scheduler.New(cfg.FarmLocation, cfg.AutoLogHour, pipeline, rainfallStore, clockwork.NewRealClock())
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "farmlog",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "farmlog",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Harvest:   harvestStore,
		Rainfall:  rainfallStore,
		Intervals: intervalStore,
		Pipeline:  pipeline,
		Analysis:  analysisSvc,
		Metrics:   metrics,
	})

	// Start server with graceful shutdown
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
