package class

import "context"

type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) (*Template, error)
	GetTemplateByID(ctx context.Context, id int) (*Template, error)
	ListTemplates(ctx context.Context) ([]Template, error)
}
