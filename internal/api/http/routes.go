package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kmnair/farmlog/internal/analysis"
	"github.com/kmnair/farmlog/internal/observability"
	"github.com/kmnair/farmlog/internal/rainfall"
	"github.com/kmnair/farmlog/internal/records"
)

var validate = validator.New()

// Deps bundles everything the HTTP handlers need.
type Deps struct {
	Harvest   records.HarvestStore
	Rainfall  records.RainfallStore
	Intervals records.IntervalStore
	Pipeline  *rainfall.Service
	Analysis  *analysis.Service // nil disables the analysis endpoint
	Metrics   *observability.Metrics
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := &handlers{deps: deps}

	v1 := app.Group("/api/v1")

	v1.Get("/harvest", h.listHarvest)
	v1.Post("/harvest", h.createHarvest)

	v1.Get("/rainfall", h.listRainfall)
	v1.Post("/rainfall", h.createRainfall)
	v1.Get("/rainfall/fetch", h.fetchRainfall)

	v1.Get("/intervals", h.listIntervals)
	v1.Post("/intervals", h.createInterval)

	v1.Post("/analysis", h.analyze)
}

type handlers struct {
	deps Deps
}

// harvestRequest mirrors the harvest form submission. Numeric fields
// are pointers so that a present zero passes validation while an
// absent field fails it.
type harvestRequest struct {
	ID           string            `json:"id" validate:"required"`
	Date         string            `json:"date" validate:"required"`
	CoconutCount *int              `json:"coconutCount" validate:"required"`
	TotalWeight  *float64          `json:"totalWeight" validate:"required"`
	SalesPrice   *float64          `json:"salesPrice" validate:"required"`
	LaborCosts   records.LaborCost `json:"laborCosts"`
	Expenses     records.Expense   `json:"expenses"`
}

func (h *handlers) listHarvest(c *fiber.Ctx) error {
	recs, err := h.deps.Harvest.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch harvest records")
	}
	return c.JSON(recs)
}

func (h *handlers) createHarvest(c *fiber.Ctx) error {
	var req harvestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec := records.HarvestRecord{
		ID:           req.ID,
		Date:         date,
		CoconutCount: *req.CoconutCount,
		TotalWeight:  *req.TotalWeight,
		SalesPrice:   *req.SalesPrice,
		LaborCosts:   req.LaborCosts,
		Expenses:     req.Expenses,
	}

	stored, err := h.deps.Harvest.Create(c.Context(), rec)
	if err != nil {
		if errors.Is(err, records.ErrDuplicateID) {
			return fiber.NewError(fiber.StatusConflict, "Duplicate ID provided for harvest record.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add harvest record")
	}

	h.deps.Metrics.RecordsCreated.WithLabelValues("harvest").Inc()
	return c.Status(fiber.StatusCreated).JSON(stored)
}

type rainfallRequest struct {
	ID       string   `json:"id" validate:"required"`
	Date     string   `json:"date" validate:"required"`
	Amount   *float64 `json:"amount" validate:"required"`
	Location string   `json:"location"`
}

func (h *handlers) listRainfall(c *fiber.Ctx) error {
	recs, err := h.deps.Rainfall.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch rainfall data")
	}
	return c.JSON(recs)
}

func (h *handlers) createRainfall(c *fiber.Ctx) error {
	var req rainfallRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec := records.RainfallRecord{
		ID:       req.ID,
		Date:     date,
		Amount:   *req.Amount,
		Location: req.Location,
	}

	stored, err := h.deps.Rainfall.Create(c.Context(), rec)
	if err != nil {
		if errors.Is(err, records.ErrDuplicateID) {
			return fiber.NewError(fiber.StatusConflict, "Duplicate ID provided for rainfall data.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add rainfall data")
	}

	h.deps.Metrics.RecordsCreated.WithLabelValues("rainfall").Inc()
	return c.Status(fiber.StatusCreated).JSON(stored)
}

// fetchQuery holds query parameters for the rainfall retrieval
// pipeline endpoint.
type fetchQuery struct {
	Location string `validate:"required"`
	Date     string `validate:"required"`
}

func (h *handlers) fetchRainfall(c *fiber.Ctx) error {
	q := fetchQuery{
		Location: c.Query("location"),
		Date:     c.Query("date"),
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "location and date query parameters are required")
	}
	date, err := parseDate(q.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	amount, err := h.deps.Pipeline.GetRainfall(c.Context(), rainfall.Query{
		Location: q.Location,
		Date:     q.Date,
	})
	if err != nil {
		if errors.Is(err, rainfall.ErrLocationNotFound) {
			h.deps.Metrics.RainfallFetches.WithLabelValues("not_found").Inc()
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		h.deps.Metrics.RainfallFetches.WithLabelValues("upstream_error").Inc()
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	h.deps.Metrics.RainfallFetches.WithLabelValues("ok").Inc()

	// save=true logs the fetched amount as a rainfall record. The id
	// is generated here: this path acts as the store's client.
	if c.QueryBool("save") {
		rec := records.RainfallRecord{
			ID:       uuid.NewString(),
			Date:     date,
			Amount:   amount.Amount,
			Location: q.Location,
		}
		if _, err := h.deps.Rainfall.Create(c.Context(), rec); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to add rainfall data")
		}
		h.deps.Metrics.RecordsCreated.WithLabelValues("rainfall").Inc()
	}

	return c.JSON(amount)
}

type intervalRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (h *handlers) listIntervals(c *fiber.Ctx) error {
	recs, err := h.deps.Intervals.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch custom intervals")
	}
	return c.JSON(recs)
}

func (h *handlers) createInterval(c *fiber.Ctx) error {
	var req intervalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	rec := records.CustomInterval{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	}

	stored, err := h.deps.Intervals.Create(c.Context(), rec)
	if err != nil {
		if errors.Is(err, records.ErrDuplicateID) {
			return fiber.NewError(fiber.StatusConflict, "Duplicate ID provided for custom interval.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add custom interval")
	}

	h.deps.Metrics.RecordsCreated.WithLabelValues("interval").Inc()
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *handlers) analyze(c *fiber.Ctx) error {
	if h.deps.Analysis == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "analysis is not configured")
	}

	harvest, err := h.deps.Harvest.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch harvest records")
	}
	rain, err := h.deps.Rainfall.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch rainfall data")
	}
	intervals, err := h.deps.Intervals.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch custom intervals")
	}

	result, err := h.deps.Analysis.Analyze(c.Context(), harvest, rain, intervals)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.deps.Metrics.AnalysisCalls.WithLabelValues("error").Inc()
		return fiber.NewError(fiber.StatusBadGateway, "Failed to analyze harvest data")
	}

	h.deps.Metrics.AnalysisCalls.WithLabelValues("ok").Inc()
	return c.JSON(result)
}

// parseDate accepts an RFC3339 date-time or a bare calendar date.
func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	return time.Time{}, errors.New("invalid date format; use RFC3339 or YYYY-MM-DD")
}
