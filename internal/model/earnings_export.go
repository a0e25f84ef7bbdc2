package model

import "time"

// EarningsExport represents an async CSV export of an earnings report.
type EarningsExport struct {
	ID     string
	UserID string

	// Request parameters
	StartDate  string
	EndDate    string
	Site       string
	ParamsHash string

	// Status
	Status       string // PROCESSING | COMPLETED | FAILED
	ErrorMessage string

	// Output
	ObjectName    string
	FileSizeBytes int64
	RowCount      int

	// Timestamps
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
