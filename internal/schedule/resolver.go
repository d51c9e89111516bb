package schedule

import (
	"time"

	"github.com/tozzo28/bulking/internal/class"
)

// Resolve expands a class template over [from, to] into concrete occurrences,
// one per matching calendar date, in ascending start order. The window is
// inclusive on both ends and interpreted in UTC dates. Resolving the same
// window twice yields occurrences with identical keys.
func Resolve(t *class.Template, from, to time.Time) []Occurrence {
	fromDate := truncateToDate(from)
	toDate := truncateToDate(to)

	if toDate.Before(fromDate) {
		return nil
	}

	if !t.Recurrent {
		if t.StartTime == nil || t.EndTime == nil {
			return nil
		}
		date := truncateToDate(*t.StartTime)
		if date.Before(fromDate) || date.After(toDate) {
			return nil
		}
		return []Occurrence{{
			Key:        Key(t.ID, date),
			TemplateID: t.ID,
			Date:       date,
			StartTime:  t.StartTime.UTC(),
			EndTime:    t.EndTime.UTC(),
			Capacity:   t.Capacity,
		}}
	}

	var occurrences []Occurrence
	for date := fromDate; !date.After(toDate); date = date.AddDate(0, 0, 1) {
		if !t.HasWeekDay(date.Weekday()) {
			continue
		}
		occ, err := occurrenceOn(t, date)
		if err != nil {
			continue
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences
}

// ResolveOn builds the single occurrence of a template on the given date.
// Returns ErrOccurrenceNotFound when the template does not run on that date.
func ResolveOn(t *class.Template, date time.Time) (Occurrence, error) {
	date = truncateToDate(date)

	if !t.Recurrent {
		if t.StartTime == nil || t.EndTime == nil || !truncateToDate(*t.StartTime).Equal(date) {
			return Occurrence{}, ErrOccurrenceNotFound
		}
		return Occurrence{
			Key:        Key(t.ID, date),
			TemplateID: t.ID,
			Date:       date,
			StartTime:  t.StartTime.UTC(),
			EndTime:    t.EndTime.UTC(),
			Capacity:   t.Capacity,
		}, nil
	}

	if !t.HasWeekDay(date.Weekday()) {
		return Occurrence{}, ErrOccurrenceNotFound
	}

	return occurrenceOn(t, date)
}

func occurrenceOn(t *class.Template, date time.Time) (Occurrence, error) {
	start, err := atTimeOfDay(date, t.StartsAt)
	if err != nil {
		return Occurrence{}, ErrOccurrenceNotFound
	}
	end, err := atTimeOfDay(date, t.EndsAt)
	if err != nil {
		return Occurrence{}, ErrOccurrenceNotFound
	}

	// An end time of day earlier than the start means the session runs
	// past midnight into the next calendar date.
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return Occurrence{
		Key:        Key(t.ID, date),
		TemplateID: t.ID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Capacity:   t.Capacity,
	}, nil
}

func atTimeOfDay(date time.Time, timeOfDay string) (time.Time, error) {
	tod, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0, time.UTC), nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
