package schedule

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Materialize persists an occurrence and its seat counter row. Both inserts
// are idempotent on the occurrence key, so re-resolving a window never
// duplicates rows or resets counters.
func (r *repository) Materialize(ctx context.Context, occ *Occurrence) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	occQuery := `
		INSERT INTO occurrences (occurrence_key, template_id, occurrence_date, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (occurrence_key) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, occQuery,
		occ.Key, occ.TemplateID, occ.Date, occ.StartTime, occ.EndTime, occ.Capacity); err != nil {
		return err
	}

	seatsQuery := `
		INSERT INTO occurrence_seats (occurrence_key, seats_taken)
		VALUES ($1, 0)
		ON CONFLICT (occurrence_key) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, seatsQuery, occ.Key); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Occurrence, error) {
	query := `
		SELECT occurrence_key, template_id, occurrence_date, start_time, end_time, capacity
		FROM occurrences
		WHERE occurrence_key = $1
	`

	var occ Occurrence
	err := r.db.GetContext(ctx, &occ, query, key)
	if err != nil {
		return nil, err
	}

	return &occ, nil
}

func (r *repository) ListByWindow(ctx context.Context, from, to time.Time) ([]Occurrence, error) {
	query := `
		SELECT occurrence_key, template_id, occurrence_date, start_time, end_time, capacity
		FROM occurrences
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time ASC
	`

	var occurrences []Occurrence
	err := r.db.SelectContext(ctx, &occurrences, query, from, to)
	if err != nil {
		return nil, err
	}

	return occurrences, nil
}
