package class

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateTemplate(ctx context.Context, t *Template) (*Template, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Template), args.Error(1)
}

func (m *MockRepo) GetTemplateByID(ctx context.Context, id int) (*Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Template), args.Error(1)
}

func (m *MockRepo) ListTemplates(ctx context.Context) ([]Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Template), args.Error(1)
}

func recurringRequest() CreateTemplateRequest {
	return CreateTemplateRequest{
		Name:       "Yoga Matinal",
		Instructor: "Carla Mendes",
		Category:   CategoryYoga,
		Difficulty: DifficultyIniciante,
		Location:   "Sala 2",
		Capacity:   20,
		Recurrent:  true,
		WeekDays:   []int{1, 3, 5},
		StartsAt:   "08:00",
		EndsAt:     "09:00",
	}
}

func TestCreateTemplate_Recurring(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("CreateTemplate", mock.Anything, mock.MatchedBy(func(tpl *Template) bool {
		return tpl.Recurrent && len(tpl.WeekDays) == 3 && tpl.StartsAt == "08:00"
	})).Return(&Template{ID: 1, Name: "Yoga Matinal"}, nil)

	created, err := svc.CreateTemplate(context.Background(), recurringRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	repo.AssertExpectations(t)
}

func TestCreateTemplate_MidnightCrossingAllowed(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	req := recurringRequest()
	req.Name = "Muay Thai Noturno"
	req.StartsAt = "23:00"
	req.EndsAt = "00:30"

	repo.On("CreateTemplate", mock.Anything, mock.Anything).
		Return(&Template{ID: 2, Name: req.Name}, nil)

	_, err := svc.CreateTemplate(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateTemplate_Invalid(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	start := "2026-03-14T10:00:00Z"
	endBeforeStart := "2026-03-14T09:00:00Z"

	cases := map[string]func(*CreateTemplateRequest){
		"unknown category":       func(r *CreateTemplateRequest) { r.Category = "natação" },
		"unknown difficulty":     func(r *CreateTemplateRequest) { r.Difficulty = "expert" },
		"recurring without days": func(r *CreateTemplateRequest) { r.WeekDays = nil },
		"weekday out of range":   func(r *CreateTemplateRequest) { r.WeekDays = []int{7} },
		"bad starts_at":          func(r *CreateTemplateRequest) { r.StartsAt = "8am" },
		"bad ends_at":            func(r *CreateTemplateRequest) { r.EndsAt = "25:00" },
		"one-off without times": func(r *CreateTemplateRequest) {
			r.Recurrent = false
			r.StartTime = nil
			r.EndTime = nil
		},
		"one-off end before start": func(r *CreateTemplateRequest) {
			r.Recurrent = false
			r.StartTime = &start
			r.EndTime = &endBeforeStart
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := recurringRequest()
			mutate(&req)
			_, err := svc.CreateTemplate(context.Background(), req)
			assert.ErrorIs(t, err, ErrTemplateInvalid)
		})
	}

	repo.AssertNotCalled(t, "CreateTemplate", mock.Anything, mock.Anything)
}

func TestGetTemplateByID_NotFound(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("GetTemplateByID", mock.Anything, 99).Return(nil, errors.New("sql: no rows in result set"))

	_, err := svc.GetTemplateByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestHasWeekDay(t *testing.T) {
	tpl := &Template{WeekDays: []int64{1, 3, 5}}

	assert.True(t, tpl.HasWeekDay(1))
	assert.True(t, tpl.HasWeekDay(5))
	assert.False(t, tpl.HasWeekDay(0))
	assert.False(t, tpl.HasWeekDay(6))
}
