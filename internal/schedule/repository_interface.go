package schedule

import (
	"context"
	"time"
)

type Repository interface {
	Materialize(ctx context.Context, occ *Occurrence) error
	GetByKey(ctx context.Context, key string) (*Occurrence, error)
	ListByWindow(ctx context.Context, from, to time.Time) ([]Occurrence, error)
}
