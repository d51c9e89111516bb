package class

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrTemplateNotFound = errors.New("class template not found")
	ErrTemplateInvalid  = errors.New("invalid class template")
)

type Service interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error)
	GetTemplateByID(ctx context.Context, id int) (*Template, error)
	ListTemplates(ctx context.Context) ([]Template, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	if !ValidCategory(req.Category) || !ValidDifficulty(req.Difficulty) {
		return nil, ErrTemplateInvalid
	}

	t := &Template{
		Name:        req.Name,
		Description: req.Description,
		Instructor:  req.Instructor,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Recurrent:   req.Recurrent,
	}

	if req.Recurrent {
		if len(req.WeekDays) == 0 {
			return nil, ErrTemplateInvalid
		}
		days := make(pq.Int64Array, 0, len(req.WeekDays))
		for _, d := range req.WeekDays {
			if d < 0 || d > 6 {
				return nil, ErrTemplateInvalid
			}
			days = append(days, int64(d))
		}
		// End before start is allowed: the session crosses midnight.
		if _, err := time.Parse("15:04", req.StartsAt); err != nil {
			return nil, ErrTemplateInvalid
		}
		if _, err := time.Parse("15:04", req.EndsAt); err != nil {
			return nil, ErrTemplateInvalid
		}
		t.WeekDays = days
		t.StartsAt = req.StartsAt
		t.EndsAt = req.EndsAt
	} else {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, ErrTemplateInvalid
		}
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrTemplateInvalid
		}
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrTemplateInvalid
		}
		if !endTime.After(startTime) {
			return nil, ErrTemplateInvalid
		}
		t.StartTime = &startTime
		t.EndTime = &endTime
	}

	return s.repo.CreateTemplate(ctx, t)
}

func (s *service) GetTemplateByID(ctx context.Context, id int) (*Template, error) {
	t, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.repo.ListTemplates(ctx)
}
