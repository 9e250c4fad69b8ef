package records

import (
	"context"
	"errors"
)

// ErrDuplicateID is returned when a create collides with an existing
// record id. The uniqueness check is the storage layer's own key
// constraint; concurrent creates on the same id race and one loses.
var ErrDuplicateID = errors.New("duplicate record id")

// HarvestStore persists harvest records keyed by their caller-supplied
// id. List returns records newest date first. No update or delete is
// exposed.
type HarvestStore interface {
	List(ctx context.Context) ([]HarvestRecord, error)
	Create(ctx context.Context, rec HarvestRecord) (HarvestRecord, error)
}

// RainfallStore persists rainfall records keyed by their
// caller-supplied id. List returns records newest date first.
type RainfallStore interface {
	List(ctx context.Context) ([]RainfallRecord, error)
	Create(ctx context.Context, rec RainfallRecord) (RainfallRecord, error)
}

// IntervalStore persists custom intervals keyed by their
// caller-supplied id. Intervals carry no date; List returns them in
// insertion order.
type IntervalStore interface {
	List(ctx context.Context) ([]CustomInterval, error)
	Create(ctx context.Context, rec CustomInterval) (CustomInterval, error)
}
