package availability

import (
	"errors"
	"time"

	"github.com/tozzo28/bulking/internal/class"
	"github.com/tozzo28/bulking/internal/schedule"
)

var ErrInvalidFilter = errors.New("invalid availability filter")

// Day buckets supported by the listing filter.
const (
	DayToday    = "today"
	DayTomorrow = "tomorrow"
	DayWeekend  = "weekend"
)

// Filter narrows the listing; empty fields match everything and all
// predicates are AND-combined.
type Filter struct {
	Text       string
	Day        string
	Category   string
	Difficulty string
	From       time.Time
	To         time.Time
}

func (f *Filter) Validate() error {
	switch f.Day {
	case "", DayToday, DayTomorrow, DayWeekend:
	default:
		return ErrInvalidFilter
	}
	if f.Category != "" && !class.ValidCategory(f.Category) {
		return ErrInvalidFilter
	}
	if f.Difficulty != "" && !class.ValidDifficulty(f.Difficulty) {
		return ErrInvalidFilter
	}
	if f.To.Before(f.From) {
		return ErrInvalidFilter
	}
	return nil
}

// ClassAvailability is one bookable occurrence with its seat counts and
// the template fields the listing surface displays.
type ClassAvailability struct {
	Occurrence  schedule.Occurrence `json:"occurrence"`
	ClassName   string              `json:"class_name"`
	Description string              `json:"description"`
	Instructor  string              `json:"instructor"`
	Category    string              `json:"category"`
	Difficulty  string              `json:"difficulty"`
	Location    string              `json:"location"`
	SeatsTaken  int                 `json:"seats_taken"`
	Capacity    int                 `json:"capacity"`
	IsFull      bool                `json:"is_full"`
}
