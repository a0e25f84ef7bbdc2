package repository

import (
	"context"

	"widget-srv/internal/model"
)

type WidgetRepository interface {
	Create(ctx context.Context, opts CreateOptions) (*model.Widget, error)
	GetByID(ctx context.Context, id string) (*model.Widget, error)
	List(ctx context.Context, opts ListOptions) ([]model.Widget, error)
	Update(ctx context.Context, opts UpdateOptions) (*model.Widget, error)
	UpdateKeyHash(ctx context.Context, opts UpdateKeyHashOptions) error
	Delete(ctx context.Context, id string) error
}

type PostgresRepository interface {
	WidgetRepository
}
