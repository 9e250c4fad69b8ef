package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/kmnair/farmlog/internal/rainfall"
	"github.com/kmnair/farmlog/internal/records"
)

// Fetcher is the slice of the rainfall pipeline the scheduler needs.
type Fetcher interface {
	GetRainfall(ctx context.Context, q rainfall.Query) (rainfall.Amount, error)
}

// Scheduler logs the previous day's rainfall for the configured farm
// location once per day. Each run is independent; a failed run is
// logged and skipped, never retried.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	store     records.RainfallStore
	location  string
	hour      int
	clock     clockwork.Clock
}

// New creates a new Scheduler. An empty location disables it.
func New(location string, hour int, fetcher Fetcher, store records.RainfallStore, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		fetcher:   fetcher,
		store:     store,
		location:  location,
		hour:      hour,
		clock:     clock,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.location == "" {
		log.Println("scheduler: no farm location configured; rainfall auto-log disabled")
		return nil
	}

	at := fmt.Sprintf("%02d:00", s.hour)
	_, err := s.scheduler.Every(1).Day().At(at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.LogYesterday(ctx); err != nil {
			log.Printf("scheduler: rainfall auto-log failed for %s: %v", s.location, err)
			return
		}
		log.Printf("scheduler: logged yesterday's rainfall for %s", s.location)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// LogYesterday fetches the previous day's rainfall for the farm
// location through the pipeline and stores it as a rainfall record
// with a generated id, through the same create path the API uses.
func (s *Scheduler) LogYesterday(ctx context.Context) error {
	day := s.clock.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	amount, err := s.fetcher.GetRainfall(ctx, rainfall.Query{
		Location: s.location,
		Date:     day.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	rec := records.RainfallRecord{
		ID:       uuid.NewString(),
		Date:     day,
		Amount:   amount.Amount,
		Location: s.location,
	}
	if _, err := s.store.Create(ctx, rec); err != nil {
		return fmt.Errorf("store rainfall record: %w", err)
	}
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
