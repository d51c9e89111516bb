package schedule

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tozzo28/bulking/internal/class"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringTemplate() *class.Template {
	return &class.Template{
		ID:        3,
		Name:      "Yoga Matinal",
		Capacity:  20,
		Recurrent: true,
		WeekDays:  pq.Int64Array{1, 3, 5}, // Mon, Wed, Fri
		StartsAt:  "08:00",
		EndsAt:    "09:00",
	}
}

func TestResolve_RecurringOneWeek(t *testing.T) {
	tpl := recurringTemplate()

	// Monday Jan 5 through Sunday Jan 11, 2026.
	occurrences := Resolve(tpl, date(2026, time.January, 5), date(2026, time.January, 11))

	require.Len(t, occurrences, 3)
	assert.Equal(t, "3:2026-01-05", occurrences[0].Key)
	assert.Equal(t, "3:2026-01-07", occurrences[1].Key)
	assert.Equal(t, "3:2026-01-09", occurrences[2].Key)

	for i, occ := range occurrences {
		assert.Equal(t, 8, occ.StartTime.Hour())
		assert.Equal(t, 9, occ.EndTime.Hour())
		assert.Equal(t, 20, occ.Capacity)
		if i > 0 {
			assert.True(t, occurrences[i-1].StartTime.Before(occ.StartTime), "ascending start order")
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	tpl := recurringTemplate()
	from, to := date(2026, time.January, 5), date(2026, time.January, 18)

	first := Resolve(tpl, from, to)
	second := Resolve(tpl, from, to)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
	}
}

func TestResolve_CrossesMidnight(t *testing.T) {
	tpl := &class.Template{
		ID:        7,
		Capacity:  18,
		Recurrent: true,
		WeekDays:  pq.Int64Array{5}, // Friday
		StartsAt:  "23:00",
		EndsAt:    "00:30",
	}

	occurrences := Resolve(tpl, date(2026, time.January, 5), date(2026, time.January, 11))

	require.Len(t, occurrences, 1)
	occ := occurrences[0]
	assert.Equal(t, date(2026, time.January, 9).Add(23*time.Hour), occ.StartTime)
	// Ends on the following calendar date, not truncated.
	assert.Equal(t, date(2026, time.January, 10).Add(30*time.Minute), occ.EndTime)
	assert.True(t, occ.EndTime.After(occ.StartTime))
}

func TestResolve_OneOff(t *testing.T) {
	start := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	tpl := &class.Template{ID: 9, Capacity: 30, StartTime: &start, EndTime: &end}

	inWindow := Resolve(tpl, date(2026, time.March, 1), date(2026, time.March, 31))
	require.Len(t, inWindow, 1)
	assert.Equal(t, "9:2026-03-14", inWindow[0].Key)
	assert.Equal(t, start, inWindow[0].StartTime)

	outOfWindow := Resolve(tpl, date(2026, time.April, 1), date(2026, time.April, 30))
	assert.Empty(t, outOfWindow)
}

func TestResolve_EmptyAndInvertedWindows(t *testing.T) {
	tpl := recurringTemplate()

	// Window with no matching weekdays: Sat + Sun only.
	assert.Empty(t, Resolve(tpl, date(2026, time.January, 10), date(2026, time.January, 11)))

	// Inverted window yields nothing.
	assert.Empty(t, Resolve(tpl, date(2026, time.January, 11), date(2026, time.January, 5)))
}

func TestResolveOn(t *testing.T) {
	tpl := recurringTemplate()

	occ, err := ResolveOn(tpl, date(2026, time.January, 7)) // Wednesday
	require.NoError(t, err)
	assert.Equal(t, "3:2026-01-07", occ.Key)

	_, err = ResolveOn(tpl, date(2026, time.January, 6)) // Tuesday
	assert.ErrorIs(t, err, ErrOccurrenceNotFound)
}

func TestKeyRoundTrip(t *testing.T) {
	key := Key(42, date(2026, time.February, 3))
	assert.Equal(t, "42:2026-02-03", key)

	templateID, d, err := ParseKey(key)
	require.NoError(t, err)
	assert.Equal(t, 42, templateID)
	assert.Equal(t, date(2026, time.February, 3), d)
}

func TestParseKey_Malformed(t *testing.T) {
	for _, key := range []string{"", "42", "abc:2026-02-03", "42:03-02-2026", "-1:2026-02-03", "0:2026-02-03"} {
		_, _, err := ParseKey(key)
		assert.ErrorIs(t, err, ErrBadOccurrenceKey, "key %q", key)
	}
}
