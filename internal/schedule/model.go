package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrOccurrenceNotFound = errors.New("occurrence not found")
	ErrBadOccurrenceKey   = errors.New("malformed occurrence key")
)

// Occurrence is one concrete dated instance of a class template.
// Capacity is copied from the template at materialization time; the key
// (template id + ISO date) is the stable identity used by the seat ledger.
type Occurrence struct {
	Key        string    `db:"occurrence_key" json:"occurrence_key"`
	TemplateID int       `db:"template_id" json:"template_id"`
	Date       time.Time `db:"occurrence_date" json:"occurrence_date"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	Capacity   int       `db:"capacity" json:"capacity"`
}

const keyDateLayout = "2006-01-02"

// Key builds the occurrence key for a template and date, e.g. "3:2026-01-05".
func Key(templateID int, date time.Time) string {
	return fmt.Sprintf("%d:%s", templateID, date.UTC().Format(keyDateLayout))
}

// ParseKey splits an occurrence key back into template id and date.
func ParseKey(key string) (int, time.Time, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, ErrBadOccurrenceKey
	}

	templateID, err := strconv.Atoi(parts[0])
	if err != nil || templateID <= 0 {
		return 0, time.Time{}, ErrBadOccurrenceKey
	}

	date, err := time.ParseInLocation(keyDateLayout, parts[1], time.UTC)
	if err != nil {
		return 0, time.Time{}, ErrBadOccurrenceKey
	}

	return templateID, date, nil
}
