package usecase

import (
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
	"widget-srv/pkg/log"
)

type implUseCase struct {
	repo repository.PostgresRepository
	l    log.Logger
}

// New creates a new widget UseCase implementation.
func New(repo repository.PostgresRepository, l log.Logger) widget.UseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
