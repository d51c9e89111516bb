package availability

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tozzo28/bulking/internal/class"
	"github.com/tozzo28/bulking/internal/ledger"
	"github.com/tozzo28/bulking/internal/schedule"
)

// Service is the read-only listing view: schedule resolution composed with
// current seat counts. It never mutates state.
type Service interface {
	List(ctx context.Context, filter Filter) ([]ClassAvailability, error)
}

type service struct {
	classRepo class.Repository
	seats     ledger.Ledger
	cache     *SeatsCache
	now       func() time.Time
}

// NewService builds the availability view. cache may be nil, in which case
// every seat count is read straight from the ledger.
func NewService(classRepo class.Repository, seats ledger.Ledger, cache *SeatsCache) Service {
	return &service{
		classRepo: classRepo,
		seats:     seats,
		cache:     cache,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]ClassAvailability, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	templates, err := s.classRepo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	var result []ClassAvailability
	for i := range templates {
		t := &templates[i]
		if !s.matchesTemplate(t, filter) {
			continue
		}

		for _, occ := range schedule.Resolve(t, filter.From, filter.To) {
			if !s.matchesDay(occ, filter.Day) {
				continue
			}

			seatsTaken, err := s.seatsTaken(ctx, occ.Key)
			if err != nil {
				return nil, err
			}

			result = append(result, ClassAvailability{
				Occurrence:  occ,
				ClassName:   t.Name,
				Description: t.Description,
				Instructor:  t.Instructor,
				Category:    t.Category,
				Difficulty:  t.Difficulty,
				Location:    t.Location,
				SeatsTaken:  seatsTaken,
				Capacity:    occ.Capacity,
				IsFull:      seatsTaken >= occ.Capacity,
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Occurrence.StartTime.Before(result[j].Occurrence.StartTime)
	})

	return result, nil
}

func (s *service) matchesTemplate(t *class.Template, filter Filter) bool {
	if filter.Category != "" && t.Category != filter.Category {
		return false
	}
	if filter.Difficulty != "" && t.Difficulty != filter.Difficulty {
		return false
	}
	if filter.Text != "" {
		needle := strings.ToLower(filter.Text)
		if !strings.Contains(strings.ToLower(t.Name), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Instructor), needle) {
			return false
		}
	}
	return true
}

func (s *service) matchesDay(occ schedule.Occurrence, day string) bool {
	switch day {
	case DayToday:
		return sameDate(occ.StartTime, s.now())
	case DayTomorrow:
		return sameDate(occ.StartTime, s.now().AddDate(0, 0, 1))
	case DayWeekend:
		wd := occ.StartTime.UTC().Weekday()
		return wd == time.Saturday || wd == time.Sunday
	default:
		return true
	}
}

func (s *service) seatsTaken(ctx context.Context, occurrenceKey string) (int, error) {
	if s.cache != nil {
		if taken, ok := s.cache.Get(ctx, occurrenceKey); ok {
			return taken, nil
		}
	}

	taken, err := s.seats.SeatsTaken(ctx, occurrenceKey)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, occurrenceKey, taken)
	}
	return taken, nil
}

func sameDate(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
