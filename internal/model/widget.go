package model

import (
	"encoding/json"
	"time"
)

// Widget represents an embeddable chat widget configured for a customer site.
// AllowedDomains lists the hostnames the widget may be embedded on; the same
// list drives revenue attribution for the owning user.
type Widget struct {
	ID     string
	UserID string

	Name    string
	SiteURL string

	// Embedding & revenue
	AllowedDomains  []string
	RevenueSharePct *float64 // nil means the platform default applies
	APIKeyHash      string

	// Appearance
	Theme json.RawMessage

	Status string // ACTIVE | DISABLED

	CreatedAt time.Time
	UpdatedAt time.Time
}
