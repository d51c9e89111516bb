package class

import (
	"time"

	"github.com/lib/pq"
)

// Categories and difficulty levels offered by the studio catalog.
const (
	CategoryMusculacao = "musculação"
	CategoryCardio     = "cardio"
	CategoryYoga       = "yoga"
	CategoryPilates    = "pilates"
	CategoryDanca      = "dança"
	CategoryFuncional  = "funcional"
	CategoryCrossfit   = "crossfit"
	CategorySpinning   = "spinning"
	CategoryLutas      = "lutas"

	DifficultyIniciante     = "iniciante"
	DifficultyIntermediario = "intermediário"
	DifficultyAvancado      = "avançado"
)

var Categories = []string{
	CategoryMusculacao,
	CategoryCardio,
	CategoryYoga,
	CategoryPilates,
	CategoryDanca,
	CategoryFuncional,
	CategoryCrossfit,
	CategorySpinning,
	CategoryLutas,
}

var Difficulties = []string{
	DifficultyIniciante,
	DifficultyIntermediario,
	DifficultyAvancado,
}

// Template is a published class definition. A one-off class carries
// StartTime/EndTime instants; a recurrent one carries WeekDays (0=Sunday)
// plus daily start/end times of day in "15:04" form.
type Template struct {
	ID          int           `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	Instructor  string        `db:"instructor" json:"instructor"`
	Category    string        `db:"category" json:"category"`
	Difficulty  string        `db:"difficulty" json:"difficulty"`
	Location    string        `db:"location" json:"location"`
	Capacity    int           `db:"capacity" json:"capacity"`
	Recurrent   bool          `db:"recurrent" json:"recurrent"`
	WeekDays    pq.Int64Array `db:"week_days" json:"week_days"`
	StartsAt    string        `db:"starts_at" json:"starts_at,omitempty"`
	EndsAt      string        `db:"ends_at" json:"ends_at,omitempty"`
	StartTime   *time.Time    `db:"start_time" json:"start_time,omitempty"`
	EndTime     *time.Time    `db:"end_time" json:"end_time,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// HasWeekDay reports whether the template recurs on the given weekday (0=Sunday).
func (t *Template) HasWeekDay(day time.Weekday) bool {
	for _, d := range t.WeekDays {
		if int(d) == int(day) {
			return true
		}
	}
	return false
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidDifficulty(difficulty string) bool {
	for _, d := range Difficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

type CreateTemplateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Difficulty  string  `json:"difficulty" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Recurrent   bool    `json:"recurrent"`
	WeekDays    []int   `json:"week_days"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}
