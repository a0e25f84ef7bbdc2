package repository

import "errors"

var (
	ErrWidgetNotFound     = errors.New("repository: widget not found")
	ErrWidgetCreateFailed = errors.New("repository: failed to create widget")
	ErrWidgetUpdateFailed = errors.New("repository: failed to update widget")
)
