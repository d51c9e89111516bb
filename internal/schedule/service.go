package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tozzo28/bulking/internal/class"
	"github.com/tozzo28/bulking/internal/metrics"
)

type Service interface {
	// GetOccurrence returns the occurrence for a key, materializing it
	// lazily from its template on first reference.
	GetOccurrence(ctx context.Context, key string) (*Occurrence, error)
	// MaterializeWindow pre-materializes all occurrences of a template
	// in [from, to] and returns how many keys were touched.
	MaterializeWindow(ctx context.Context, templateID int, from, to time.Time) (int, error)
	// ListWindow returns the already-materialized occurrences starting in
	// [from, to], ascending by start time.
	ListWindow(ctx context.Context, from, to time.Time) ([]Occurrence, error)
}

type service struct {
	repo      Repository
	classRepo class.Repository
}

func NewService(repo Repository, classRepo class.Repository) Service {
	return &service{repo: repo, classRepo: classRepo}
}

func (s *service) GetOccurrence(ctx context.Context, key string) (*Occurrence, error) {
	occ, err := s.repo.GetByKey(ctx, key)
	if err == nil {
		return occ, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	templateID, date, err := ParseKey(key)
	if err != nil {
		return nil, ErrOccurrenceNotFound
	}

	template, err := s.classRepo.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, ErrOccurrenceNotFound
	}

	resolved, err := ResolveOn(template, date)
	if err != nil {
		return nil, ErrOccurrenceNotFound
	}

	if err := s.repo.Materialize(ctx, &resolved); err != nil {
		return nil, err
	}
	metrics.RecordMaterialization()

	return &resolved, nil
}

func (s *service) MaterializeWindow(ctx context.Context, templateID int, from, to time.Time) (int, error) {
	template, err := s.classRepo.GetTemplateByID(ctx, templateID)
	if err != nil {
		return 0, class.ErrTemplateNotFound
	}

	occurrences := Resolve(template, from, to)
	for i := range occurrences {
		if err := s.repo.Materialize(ctx, &occurrences[i]); err != nil {
			return i, err
		}
		metrics.RecordMaterialization()
	}

	return len(occurrences), nil
}

func (s *service) ListWindow(ctx context.Context, from, to time.Time) ([]Occurrence, error) {
	return s.repo.ListByWindow(ctx, from, to)
}
