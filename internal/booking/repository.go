package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNoTransition means the conditional status update matched no active
// booking: the row is missing or already left the Active state.
var ErrNoTransition = errors.New("booking not found or not active")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateActive(ctx context.Context, memberID int, occurrenceKey string) (*Booking, error) {
	query := `
		INSERT INTO bookings (member_id, occurrence_key, status)
		VALUES ($1, $2, 'active')
		RETURNING id, member_id, occurrence_key, status, booked_at, cancelled_at, cancellation_reason
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, memberID, occurrenceKey)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, member_id, occurrence_key, status, booked_at, cancelled_at, cancellation_reason
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id int, reason string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW(), cancellation_reason = $2
		WHERE id = $1 AND status = 'active'
		RETURNING id, member_id, occurrence_key, status, booked_at, cancelled_at, cancellation_reason
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) MarkAttended(ctx context.Context, id int) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'attended'
		WHERE id = $1 AND status = 'active'
		RETURNING id, member_id, occurrence_key, status, booked_at, cancelled_at, cancellation_reason
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoTransition
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) CountActiveForOccurrence(ctx context.Context, occurrenceKey string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE occurrence_key = $1 AND status = 'active'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, occurrenceKey)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) MemberHasActiveBooking(ctx context.Context, memberID int, occurrenceKey string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND occurrence_key = $2 AND status = 'active'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, memberID, occurrenceKey)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.occurrence_key,
			b.status,
			b.booked_at,
			b.cancelled_at,
			b.cancellation_reason,
			ct.name AS class_name,
			ct.instructor,
			ct.location,
			o.start_time,
			o.end_time
		FROM bookings b
		JOIN occurrences o ON b.occurrence_key = o.occurrence_key
		JOIN class_templates ct ON o.template_id = ct.id
		WHERE b.member_id = $1
		ORDER BY o.start_time DESC, b.booked_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, memberID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByOccurrence(ctx context.Context, occurrenceKey string) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.member_id,
			b.occurrence_key,
			b.status,
			b.booked_at,
			b.cancelled_at,
			b.cancellation_reason,
			ct.name AS class_name,
			ct.instructor,
			ct.location,
			o.start_time,
			o.end_time
		FROM bookings b
		JOIN occurrences o ON b.occurrence_key = o.occurrence_key
		JOIN class_templates ct ON o.template_id = ct.id
		WHERE b.occurrence_key = $1
		ORDER BY b.booked_at ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, occurrenceKey)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
