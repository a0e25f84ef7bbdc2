package repository

import (
	"context"

	"widget-srv/internal/model"
)

type ExportRepository interface {
	CreateExport(ctx context.Context, opts CreateExportOptions) (*model.EarningsExport, error)
	GetExportByID(ctx context.Context, id string) (*model.EarningsExport, error)
	FindByParamsHash(ctx context.Context, opts FindByParamsHashOptions) (*model.EarningsExport, error)
	UpdateCompleted(ctx context.Context, opts UpdateCompletedOptions) error
	UpdateFailed(ctx context.Context, opts UpdateFailedOptions) error
	ListExports(ctx context.Context, opts ListExportsOptions) ([]*model.EarningsExport, error)
}

type PostgresRepository interface {
	ExportRepository
}

// CacheRepository caches computed earnings reports.
type CacheRepository interface {
	GetReport(ctx context.Context, opts CacheKeyOptions) ([]byte, error)
	SaveReport(ctx context.Context, opts SaveReportOptions) error
}
