package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bulking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulking_bookings_total",
			Help: "Total number of booking attempts",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulking_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
		[]string{"reason"},
	)

	AttendancesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bulking_booking_attendances_total",
			Help: "Total number of bookings marked attended",
		},
	)

	SeatConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bulking_seat_conflicts_total",
			Help: "Reservations rejected because the occurrence was full",
		},
	)

	OccurrencesMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bulking_occurrences_materialized_total",
			Help: "Session occurrences materialized from class templates",
		},
	)

	LedgerReconciliations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bulking_ledger_reconciliations_total",
			Help: "Seat counter reconciliations from the active booking set",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulking_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation(reason string) {
	CancellationsTotal.WithLabelValues(reason).Inc()
}

func RecordAttendance() {
	AttendancesTotal.Inc()
}

func RecordSeatConflict() {
	SeatConflictsTotal.Inc()
}

func RecordMaterialization() {
	OccurrencesMaterialized.Inc()
}

func RecordReconciliation() {
	LedgerReconciliations.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
