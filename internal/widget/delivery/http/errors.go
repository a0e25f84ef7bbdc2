package http

import (
	"errors"

	"widget-srv/internal/widget"
	pkgErrors "widget-srv/pkg/errors"
)

var (
	errWidgetNotFound  = pkgErrors.NewHTTPError(404, "Widget not found")
	errNameRequired    = pkgErrors.NewHTTPError(400, "Name is required")
	errDomainRequired  = pkgErrors.NewHTTPError(400, "At least one allowed domain is required")
	errInvalidDomain   = pkgErrors.NewHTTPError(400, "Invalid domain")
	errInvalidShare    = pkgErrors.NewHTTPError(400, "Revenue share must be between 0 and 100")
	errInvalidStatus   = pkgErrors.NewHTTPError(400, "Invalid widget status")
	errKeyMismatch     = pkgErrors.NewHTTPError(401, "API key does not match")
	errOperationFailed = pkgErrors.NewHTTPError(500, "Widget operation failed")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, widget.ErrWidgetNotFound):
		return errWidgetNotFound
	case errors.Is(err, widget.ErrNameRequired):
		return errNameRequired
	case errors.Is(err, widget.ErrDomainRequired):
		return errDomainRequired
	case errors.Is(err, widget.ErrInvalidDomain):
		return errInvalidDomain
	case errors.Is(err, widget.ErrInvalidShare):
		return errInvalidShare
	case errors.Is(err, widget.ErrInvalidStatus):
		return errInvalidStatus
	case errors.Is(err, widget.ErrKeyMismatch):
		return errKeyMismatch
	case errors.Is(err, widget.ErrOperationFailed):
		return errOperationFailed
	default:
		panic(err)
	}
}
