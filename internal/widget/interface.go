package widget

import (
	"context"

	"widget-srv/internal/model"
)

type UseCase interface {
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)
	Get(ctx context.Context, sc model.Scope, input GetInput) (model.Widget, error)
	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (model.Widget, error)
	Delete(ctx context.Context, sc model.Scope, input DeleteInput) error
	RotateAPIKey(ctx context.Context, sc model.Scope, input RotateKeyInput) (RotateKeyOutput, error)
	// VerifyKey checks a widget API key for embed bootstrap. It does not
	// require a user scope.
	VerifyKey(ctx context.Context, input VerifyKeyInput) (model.Widget, error)
}
