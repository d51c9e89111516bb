package class

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTemplate(ctx context.Context, t *Template) (*Template, error) {
	query := `
		INSERT INTO class_templates
			(name, description, instructor, category, difficulty, location, capacity,
			 recurrent, week_days, starts_at, ends_at, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, name, description, instructor, category, difficulty, location,
			capacity, recurrent, week_days, starts_at, ends_at, start_time, end_time, created_at
	`

	var created Template
	err := r.db.GetContext(ctx, &created, query,
		t.Name, t.Description, t.Instructor, t.Category, t.Difficulty, t.Location,
		t.Capacity, t.Recurrent, t.WeekDays, t.StartsAt, t.EndsAt, t.StartTime, t.EndTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetTemplateByID(ctx context.Context, id int) (*Template, error) {
	query := `
		SELECT id, name, description, instructor, category, difficulty, location,
			capacity, recurrent, week_days, starts_at, ends_at, start_time, end_time, created_at
		FROM class_templates
		WHERE id = $1
	`

	var t Template
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListTemplates(ctx context.Context) ([]Template, error) {
	query := `
		SELECT id, name, description, instructor, category, difficulty, location,
			capacity, recurrent, week_days, starts_at, ends_at, start_time, end_time, created_at
		FROM class_templates
		ORDER BY name ASC
	`

	var templates []Template
	err := r.db.SelectContext(ctx, &templates, query)
	if err != nil {
		return nil, err
	}

	return templates, nil
}
