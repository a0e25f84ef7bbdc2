package earnings

import (
	"context"

	"widget-srv/internal/model"
)

type UseCase interface {
	GetEarnings(ctx context.Context, sc model.Scope, input GetEarningsInput) (GetEarningsOutput, error)
	RequestExport(ctx context.Context, sc model.Scope, input RequestExportInput) (RequestExportOutput, error)
	GetExport(ctx context.Context, sc model.Scope, input GetExportInput) (ExportOutput, error)
	ListExports(ctx context.Context, sc model.Scope, input ListExportsInput) ([]ExportOutput, error)
	DownloadExport(ctx context.Context, sc model.Scope, input DownloadExportInput) (DownloadOutput, error)
}
