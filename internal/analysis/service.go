package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kmnair/farmlog/internal/records"
)

// ErrInsufficientData is returned when analysis is requested before
// both harvest and rainfall data have been logged.
var ErrInsufficientData = errors.New("insufficient data: add harvest and rainfall records before requesting analysis")

// Result is the three-part summary produced by the model.
type Result struct {
	Recommendations    string `json:"recommendations"`
	SeasonalVariations string `json:"seasonalVariations"`
	HistoricalTrends   string `json:"historicalTrends"`
}

// Model turns the formatted data blocks into a Result. The production
// implementation is GeminiModel; tests substitute a fake.
type Model interface {
	Analyze(ctx context.Context, harvestData, rainfallData, customIntervals string) (Result, error)
}

// Service formats logged farm data and requests an analysis from the
// model. It holds no state between calls.
type Service struct {
	model Model
}

// NewService creates a new Service.
func NewService(model Model) *Service {
	return &Service{model: model}
}

// Analyze asks the model for harvest recommendations, seasonal
// variations, and historical trends over the logged data. It refuses
// when either harvest or rainfall data is empty.
func (s *Service) Analyze(ctx context.Context, harvest []records.HarvestRecord, rain []records.RainfallRecord, intervals []records.CustomInterval) (Result, error) {
	if len(harvest) == 0 || len(rain) == 0 {
		return Result{}, ErrInsufficientData
	}

	return s.model.Analyze(ctx,
		formatHarvest(harvest),
		formatRainfall(rain),
		formatIntervals(intervals),
	)
}

func formatHarvest(recs []records.HarvestRecord) string {
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		parts = append(parts, fmt.Sprintf("Date: %s, Coconuts: %d, Weight: %gkg, Price: $%g",
			r.Date.Format(time.RFC3339), r.CoconutCount, r.TotalWeight, r.SalesPrice))
	}
	return strings.Join(parts, "; ")
}

func formatRainfall(recs []records.RainfallRecord) string {
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		parts = append(parts, fmt.Sprintf("Date: %s, Amount: %gmm",
			r.Date.Format(time.RFC3339), r.Amount))
	}
	return strings.Join(parts, "; ")
}

func formatIntervals(recs []records.CustomInterval) string {
	if len(recs) == 0 {
		return "No custom intervals defined."
	}
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Description))
	}
	return strings.Join(parts, "; ")
}
