package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed"))
	RecordBooking("confirmed")
	after := testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed"))

	assert.Equal(t, before+1, after)
}

func TestRecordCancellation_PerReason(t *testing.T) {
	before := testutil.ToFloat64(CancellationsTotal.WithLabelValues("feeling_sick"))
	RecordCancellation("feeling_sick")
	RecordCancellation("feeling_sick")
	after := testutil.ToFloat64(CancellationsTotal.WithLabelValues("feeling_sick"))

	assert.Equal(t, before+2, after)
	assert.Equal(t, float64(0), testutil.ToFloat64(CancellationsTotal.WithLabelValues("never_used")))
}

func TestRecordSeatConflict(t *testing.T) {
	before := testutil.ToFloat64(SeatConflictsTotal)
	RecordSeatConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(SeatConflictsTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/classes", "200"))
	RecordHTTPRequest("GET", "/classes", "200", 0.042)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/classes", "200"))

	assert.Equal(t, before+1, after)
}
