package ledger

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/tozzo28/bulking/internal/logger"
	"github.com/tozzo28/bulking/internal/metrics"
)

// SQL is the durable ledger. Atomicity of the check-then-increment comes
// from the conditional single-row UPDATE: the row lock makes the guard and
// the increment one indivisible step for concurrent callers.
type SQL struct {
	db *sqlx.DB
}

func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db}
}

func (l *SQL) Reserve(ctx context.Context, key string, capacity int) error {
	query := `
		UPDATE occurrence_seats
		SET seats_taken = seats_taken + 1
		WHERE occurrence_key = $1 AND seats_taken < $2
	`

	result, err := l.db.ExecContext(ctx, query, key, capacity)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 1 {
		return nil
	}

	tracked, err := l.tracked(ctx, key)
	if err != nil {
		return err
	}
	if !tracked {
		return ErrNotFound
	}

	metrics.RecordSeatConflict()
	return ErrFull
}

func (l *SQL) Release(ctx context.Context, key string) error {
	query := `
		UPDATE occurrence_seats
		SET seats_taken = seats_taken - 1
		WHERE occurrence_key = $1 AND seats_taken > 0
	`

	result, err := l.db.ExecContext(ctx, query, key)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 1 {
		return nil
	}

	logger.Error("seat release would violate ledger invariant", "occurrence_key", key)
	return ErrInvariantViolation
}

func (l *SQL) SeatsTaken(ctx context.Context, key string) (int, error) {
	query := `SELECT seats_taken FROM occurrence_seats WHERE occurrence_key = $1`

	var taken int
	err := l.db.GetContext(ctx, &taken, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return taken, nil
}

// Reconcile rewrites the counter from the count of active bookings. Used
// by the recovery path when a cancellation recorded its state transition
// but crashed before the seat release.
func (l *SQL) Reconcile(ctx context.Context, key string) (int, error) {
	query := `
		UPDATE occurrence_seats os
		SET seats_taken = (
			SELECT COUNT(*) FROM bookings b
			WHERE b.occurrence_key = os.occurrence_key AND b.status = 'active'
		)
		WHERE os.occurrence_key = $1
		RETURNING seats_taken
	`

	var taken int
	err := l.db.GetContext(ctx, &taken, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	metrics.RecordReconciliation()
	logger.Info("seat ledger reconciled", "occurrence_key", key, "seats_taken", taken)
	return taken, nil
}

func (l *SQL) tracked(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM occurrence_seats WHERE occurrence_key = $1)`

	var exists bool
	err := l.db.GetContext(ctx, &exists, query, key)
	if err != nil {
		return false, err
	}
	return exists, nil
}
