package booking

import "time"

// Booking lifecycle. Active is the only non-terminal state: it moves to
// Attended (seat stays counted for history) or Cancelled (seat released).
const (
	StatusActive    = "active"
	StatusAttended  = "attended"
	StatusCancelled = "cancelled"
)

// Cancellation reasons form a closed set; capture is mandatory for audit.
const (
	ReasonScheduleConflict = "schedule_conflict"
	ReasonFeelingSick      = "feeling_sick"
	ReasonTransportation   = "transportation"
	ReasonOther            = "other"
)

var cancellationReasons = map[string]bool{
	ReasonScheduleConflict: true,
	ReasonFeelingSick:      true,
	ReasonTransportation:   true,
	ReasonOther:            true,
}

func ValidReason(reason string) bool {
	return cancellationReasons[reason]
}

type Booking struct {
	ID                 int        `db:"id" json:"id"`
	MemberID           int        `db:"member_id" json:"member_id"`
	OccurrenceKey      string     `db:"occurrence_key" json:"occurrence_key"`
	Status             string     `db:"status" json:"status"`
	BookedAt           time.Time  `db:"booked_at" json:"booked_at"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
}

type BookingWithDetails struct {
	Booking
	ClassName  string    `db:"class_name" json:"class_name"`
	Instructor string    `db:"instructor" json:"instructor"`
	Location   string    `db:"location" json:"location"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}
