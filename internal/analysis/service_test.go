package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmnair/farmlog/internal/records"
)

type fakeModel struct {
	result Result
	err    error

	gotHarvest   string
	gotRainfall  string
	gotIntervals string
}

func (f *fakeModel) Analyze(ctx context.Context, harvestData, rainfallData, customIntervals string) (Result, error) {
	f.gotHarvest = harvestData
	f.gotRainfall = rainfallData
	f.gotIntervals = customIntervals
	return f.result, f.err
}

func sampleHarvest() []records.HarvestRecord {
	return []records.HarvestRecord{
		{
			ID:           "h1",
			Date:         time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC),
			CoconutCount: 120,
			TotalWeight:  340.5,
			SalesPrice:   0.45,
		},
		{
			ID:           "h2",
			Date:         time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC),
			CoconutCount: 80,
			TotalWeight:  210,
			SalesPrice:   0.5,
		},
	}
}

func sampleRainfall() []records.RainfallRecord {
	return []records.RainfallRecord{
		{ID: "r1", Date: time.Date(2023, 10, 20, 0, 0, 0, 0, time.UTC), Amount: 12.4},
	}
}

func TestAnalyze_FormatsDataForModel(t *testing.T) {
	model := &fakeModel{result: Result{Recommendations: "harvest in November"}}
	svc := NewService(model)

	intervals := []records.CustomInterval{
		{ID: "i1", Name: "Monsoon", Description: "June to September"},
		{ID: "i2", Name: "Dry spell", Description: "Late January"},
	}

	result, err := svc.Analyze(context.Background(), sampleHarvest(), sampleRainfall(), intervals)
	require.NoError(t, err)
	assert.Equal(t, "harvest in November", result.Recommendations)

	assert.Equal(t,
		"Date: 2023-10-26T00:00:00Z, Coconuts: 120, Weight: 340.5kg, Price: $0.45; "+
			"Date: 2023-09-12T00:00:00Z, Coconuts: 80, Weight: 210kg, Price: $0.5",
		model.gotHarvest)
	assert.Equal(t, "Date: 2023-10-20T00:00:00Z, Amount: 12.4mm", model.gotRainfall)
	assert.Equal(t, "Monsoon: June to September; Dry spell: Late January", model.gotIntervals)
}

func TestAnalyze_NoIntervalsPlaceholder(t *testing.T) {
	model := &fakeModel{}
	svc := NewService(model)

	_, err := svc.Analyze(context.Background(), sampleHarvest(), sampleRainfall(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No custom intervals defined.", model.gotIntervals)
}

func TestAnalyze_InsufficientData(t *testing.T) {
	model := &fakeModel{}
	svc := NewService(model)

	_, err := svc.Analyze(context.Background(), nil, sampleRainfall(), nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = svc.Analyze(context.Background(), sampleHarvest(), nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	// The model must not be called at all.
	assert.Empty(t, model.gotHarvest)
}
