package earnings

import "errors"

var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrSiteNotAllowed    = errors.New("site is not in the claimed set")
	ErrReportFailed      = errors.New("earnings report failed")
	ErrExportNotFound    = errors.New("export not found")
	ErrExportNotReady    = errors.New("export is not completed")
	ErrExportFailed      = errors.New("export request failed")
	ErrDownloadURLFailed = errors.New("failed to generate download URL")
)
