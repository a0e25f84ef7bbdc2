package widget

import (
	"encoding/json"

	"widget-srv/internal/model"
)

const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
)

type CreateInput struct {
	Name            string
	SiteURL         string
	AllowedDomains  []string
	RevenueSharePct *float64
	Theme           json.RawMessage
}

type UpdateInput struct {
	WidgetID        string
	Name            *string
	SiteURL         *string
	AllowedDomains  []string
	RevenueSharePct *float64
	Theme           json.RawMessage
	Status          *string
}

type GetInput struct {
	WidgetID string
}

type DeleteInput struct {
	WidgetID string
}

type ListInput struct {
	Status string
}

type RotateKeyInput struct {
	WidgetID string
}

type VerifyKeyInput struct {
	WidgetID string
	APIKey   string
}

// CreateOutput carries the plaintext API key. It is shown exactly once;
// only its hash is stored.
type CreateOutput struct {
	Widget model.Widget
	APIKey string
}

type ListOutput struct {
	Widgets []model.Widget
}

type RotateKeyOutput struct {
	APIKey string
}
