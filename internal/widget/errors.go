package widget

import "errors"

var (
	ErrWidgetNotFound  = errors.New("widget not found")
	ErrNameRequired    = errors.New("name is required")
	ErrDomainRequired  = errors.New("at least one allowed domain is required")
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrInvalidShare    = errors.New("revenue share must be between 0 and 100")
	ErrInvalidStatus   = errors.New("invalid widget status")
	ErrKeyMismatch     = errors.New("api key does not match")
	ErrOperationFailed = errors.New("widget operation failed")
)
