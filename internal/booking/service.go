package booking

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/tozzo28/bulking/internal/ledger"
	"github.com/tozzo28/bulking/internal/logger"
	"github.com/tozzo28/bulking/internal/metrics"
	"github.com/tozzo28/bulking/internal/schedule"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrNotOwner           = errors.New("can only cancel own bookings")
	ErrAlreadyBooked      = errors.New("member already has an active booking for this occurrence")
	ErrClassFull          = errors.New("occurrence is full")
	ErrOccurrenceNotFound = errors.New("occurrence not found")
	ErrOccurrenceInPast   = errors.New("occurrence start time has passed")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrAlreadyAttended    = errors.New("booking already marked attended")
	ErrReasonRequired     = errors.New("a cancellation reason from the allowed set is required")
)

type Service interface {
	Book(ctx context.Context, memberID int, occurrenceKey string) (*Booking, *schedule.Occurrence, error)
	Cancel(ctx context.Context, memberID, bookingID int, reason string) (*Booking, error)
	MarkAttended(ctx context.Context, bookingID int) (*Booking, error)
	ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
	ListByOccurrence(ctx context.Context, occurrenceKey string) ([]BookingWithDetails, error)
	Reconcile(ctx context.Context, occurrenceKey string) (int, error)
}

type service struct {
	repo     Repository
	schedule schedule.Service
	seats    ledger.Ledger
}

func NewService(repo Repository, scheduleService schedule.Service, seats ledger.Ledger) Service {
	return &service{
		repo:     repo,
		schedule: scheduleService,
		seats:    seats,
	}
}

// Book reserves a seat and records the Active booking. The seat reservation
// is the atomic accept/reject decision; if recording the booking fails
// afterwards the seat is rolled back, so the pair takes effect together or
// not at all.
func (s *service) Book(ctx context.Context, memberID int, occurrenceKey string) (*Booking, *schedule.Occurrence, error) {
	occ, err := s.schedule.GetOccurrence(ctx, occurrenceKey)
	if err != nil {
		if errors.Is(err, schedule.ErrOccurrenceNotFound) {
			return nil, nil, ErrOccurrenceNotFound
		}
		return nil, nil, err
	}

	if occ.StartTime.Before(time.Now()) {
		return nil, nil, ErrOccurrenceInPast
	}

	hasBooking, err := s.repo.MemberHasActiveBooking(ctx, memberID, occurrenceKey)
	if err != nil {
		return nil, nil, err
	}
	if hasBooking {
		return nil, nil, ErrAlreadyBooked
	}

	if err := s.seats.Reserve(ctx, occurrenceKey, occ.Capacity); err != nil {
		switch {
		case errors.Is(err, ledger.ErrFull):
			metrics.RecordBooking("rejected_full")
			return nil, nil, ErrClassFull
		case errors.Is(err, ledger.ErrNotFound):
			return nil, nil, ErrOccurrenceNotFound
		default:
			return nil, nil, err
		}
	}

	b, err := s.repo.CreateActive(ctx, memberID, occurrenceKey)
	if err != nil {
		if relErr := s.seats.Release(ctx, occurrenceKey); relErr != nil {
			logger.Error("failed to roll back seat after booking insert failure",
				"occurrence_key", occurrenceKey, "error", relErr)
			if _, recErr := s.seats.Reconcile(ctx, occurrenceKey); recErr != nil {
				logger.Error("seat reconciliation failed", "occurrence_key", occurrenceKey, "error", recErr)
			}
		}
		// The partial unique index on (member_id, occurrence_key) closes
		// the duplicate-booking race the EXISTS probe cannot.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, nil, ErrAlreadyBooked
		}
		return nil, nil, err
	}

	metrics.RecordBooking("confirmed")
	logger.Info("booking created",
		"booking_id", b.ID, "member_id", memberID, "occurrence_key", occurrenceKey)
	return b, occ, nil
}

// Cancel records the state transition first and releases the seat after, so
// a crash in between is recoverable by recomputing the counter from the
// active booking set.
func (s *service) Cancel(ctx context.Context, memberID, bookingID int, reason string) (*Booking, error) {
	if !ValidReason(reason) {
		return nil, ErrReasonRequired
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if memberID != 0 && b.MemberID != memberID {
		return nil, ErrNotOwner
	}

	switch b.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusAttended:
		return nil, ErrAlreadyAttended
	}

	cancelled, err := s.repo.MarkCancelled(ctx, bookingID, reason)
	if err != nil {
		if errors.Is(err, ErrNoTransition) {
			// Lost a race against another transition; re-read to classify.
			return nil, s.classifyLostTransition(ctx, bookingID)
		}
		return nil, err
	}

	if err := s.seats.Release(ctx, cancelled.OccurrenceKey); err != nil {
		logger.Error("seat release failed after cancellation",
			"booking_id", bookingID, "occurrence_key", cancelled.OccurrenceKey, "error", err)
		if _, recErr := s.seats.Reconcile(ctx, cancelled.OccurrenceKey); recErr != nil {
			logger.Error("seat reconciliation failed",
				"occurrence_key", cancelled.OccurrenceKey, "error", recErr)
		}
	}

	metrics.RecordCancellation(reason)
	logger.Info("booking cancelled",
		"booking_id", bookingID, "occurrence_key", cancelled.OccurrenceKey, "reason", reason)
	return cancelled, nil
}

// MarkAttended is a terminal success transition. The seat stays counted:
// attendance is not a release event.
func (s *service) MarkAttended(ctx context.Context, bookingID int) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	switch b.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusAttended:
		return nil, ErrAlreadyAttended
	}

	attended, err := s.repo.MarkAttended(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNoTransition) {
			return nil, s.classifyLostTransition(ctx, bookingID)
		}
		return nil, err
	}

	metrics.RecordAttendance()
	return attended, nil
}

func (s *service) classifyLostTransition(ctx context.Context, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrNotFound
	}
	switch b.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusAttended:
		return ErrAlreadyAttended
	}
	return ErrNotFound
}

func (s *service) ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) ListByOccurrence(ctx context.Context, occurrenceKey string) ([]BookingWithDetails, error) {
	return s.repo.ListByOccurrence(ctx, occurrenceKey)
}

// Reconcile recomputes the seat counter for an occurrence from the active
// booking set. Exposed to operators as the recovery path for crashes
// between a recorded cancellation and its seat release.
func (s *service) Reconcile(ctx context.Context, occurrenceKey string) (int, error) {
	return s.seats.Reconcile(ctx, occurrenceKey)
}
