package http

import (
	"errors"

	"widget-srv/internal/earnings"
	"widget-srv/pkg/admanager"
	pkgErrors "widget-srv/pkg/errors"
	"widget-srv/pkg/googleauth"
)

var (
	errInvalidDateRange  = pkgErrors.NewHTTPError(400, "Invalid date range")
	errInvalidDimension  = pkgErrors.NewHTTPError(400, "Invalid dimension")
	errSiteNotAllowed    = pkgErrors.NewHTTPError(403, "Site is not in your claimed set")
	errAuthFailed        = pkgErrors.NewHTTPError(401, "Reporting credentials were rejected")
	errReportFailed      = pkgErrors.NewHTTPError(500, "Earnings report failed")
	errExportNotFound    = pkgErrors.NewHTTPError(404, "Export not found")
	errExportNotReady    = pkgErrors.NewHTTPError(400, "Export is not completed yet")
	errExportFailed      = pkgErrors.NewHTTPError(500, "Export request failed")
	errDownloadURLFailed = pkgErrors.NewHTTPError(500, "Failed to generate download URL")
)

func (h *handler) mapError(err error) error {
	var protocolErr *admanager.ProtocolError
	var downloadErr *admanager.DownloadError

	switch {
	case errors.Is(err, earnings.ErrInvalidDateRange), errors.Is(err, admanager.ErrInvalidDateRange):
		return errInvalidDateRange
	case errors.Is(err, earnings.ErrInvalidDimension):
		return errInvalidDimension
	case errors.Is(err, earnings.ErrSiteNotAllowed):
		return errSiteNotAllowed
	case errors.Is(err, googleauth.ErrExchangeFailed), errors.Is(err, googleauth.ErrBadCredentials):
		return errAuthFailed
	case errors.Is(err, earnings.ErrExportNotFound):
		return errExportNotFound
	case errors.Is(err, earnings.ErrExportNotReady):
		return errExportNotReady
	case errors.Is(err, earnings.ErrExportFailed):
		return errExportFailed
	case errors.Is(err, earnings.ErrDownloadURLFailed):
		return errDownloadURLFailed
	case errors.Is(err, earnings.ErrReportFailed),
		errors.Is(err, admanager.ErrJobFailed),
		errors.Is(err, admanager.ErrPollTimeout),
		errors.As(err, &protocolErr),
		errors.As(err, &downloadErr):
		return errReportFailed
	default:
		panic(err)
	}
}
