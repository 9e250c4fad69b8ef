package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmnair/farmlog/internal/rainfall"
	"github.com/kmnair/farmlog/internal/store"
)

type fakeFetcher struct {
	amount   rainfall.Amount
	err      error
	gotQuery rainfall.Query
}

func (f *fakeFetcher) GetRainfall(ctx context.Context, q rainfall.Query) (rainfall.Amount, error) {
	f.gotQuery = q
	if f.err != nil {
		return rainfall.Amount{}, f.err
	}
	return f.amount, nil
}

func TestLogYesterday_StoresRecord(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC))
	fetcher := &fakeFetcher{amount: rainfall.Amount{Amount: 12.4}}
	rainStore := store.NewMemoryRainfallStore()

	s := New("Kochi", 6, fetcher, rainStore, clock)

	require.NoError(t, s.LogYesterday(context.Background()))

	assert.Equal(t, "Kochi", fetcher.gotQuery.Location)
	assert.Equal(t, "2023-10-26T00:00:00Z", fetcher.gotQuery.Date)

	recs, err := rainStore.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 12.4, recs[0].Amount)
	assert.Equal(t, "Kochi", recs[0].Location)
	assert.Equal(t, time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC), recs[0].Date)
	assert.NotEmpty(t, recs[0].ID)
}

func TestLogYesterday_FetchFailureStoresNothing(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC))
	fetcher := &fakeFetcher{err: errors.New("failed to geocode location: could not find location: Kochi")}
	rainStore := store.NewMemoryRainfallStore()

	s := New("Kochi", 6, fetcher, rainStore, clock)

	require.Error(t, s.LogYesterday(context.Background()))

	recs, err := rainStore.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStart_NoLocationIsDisabled(t *testing.T) {
	s := New("", 6, &fakeFetcher{}, store.NewMemoryRainfallStore(), clockwork.NewRealClock())
	require.NoError(t, s.Start())
	s.Stop()
}
