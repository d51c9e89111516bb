package booking

import "context"

type Repository interface {
	CreateActive(ctx context.Context, memberID int, occurrenceKey string) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	MarkCancelled(ctx context.Context, id int, reason string) (*Booking, error)
	MarkAttended(ctx context.Context, id int) (*Booking, error)
	CountActiveForOccurrence(ctx context.Context, occurrenceKey string) (int, error)
	MemberHasActiveBooking(ctx context.Context, memberID int, occurrenceKey string) (bool, error)
	ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
	ListByOccurrence(ctx context.Context, occurrenceKey string) ([]BookingWithDetails, error)
}
