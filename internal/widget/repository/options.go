package repository

import "encoding/json"

type CreateOptions struct {
	ID              string
	UserID          string
	Name            string
	SiteURL         string
	AllowedDomains  []string
	RevenueSharePct *float64
	APIKeyHash      string
	Theme           json.RawMessage
}

type ListOptions struct {
	UserID string
	Status string
}

type UpdateOptions struct {
	WidgetID        string
	Name            *string
	SiteURL         *string
	AllowedDomains  []string
	RevenueSharePct *float64
	Theme           json.RawMessage
	Status          *string
}

type UpdateKeyHashOptions struct {
	WidgetID   string
	APIKeyHash string
}
