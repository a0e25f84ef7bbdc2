package earnings

const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"

	DimensionSite   = "site"
	DimensionAdUnit = "ad_unit"

	// DefaultSharePct is assumed when a widget has no configured share.
	DefaultSharePct = 50.0
)

type GetEarningsInput struct {
	StartDate string
	EndDate   string
	// Site restricts the report to one claimed hostname.
	Site string
	// Dimension selects the entity breakdown, DimensionSite by default.
	Dimension string
}

type RequestExportInput struct {
	StartDate string
	EndDate   string
	Site      string
}

type GetExportInput struct {
	ExportID string
}

type DownloadExportInput struct {
	ExportID string
}

type ListExportsInput struct {
	Status string
	Limit  int
	Offset int
}

// DateStats is one timeline bucket.
type DateStats struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Revenue     float64 `json:"revenue"`
}

// EntityStats is one site or ad unit bucket.
type EntityStats struct {
	Name        string  `json:"name"`
	Impressions int64   `json:"impressions"`
	Revenue     float64 `json:"revenue"`
	SharePct    float64 `json:"share_pct,omitempty"`
}

type GetEarningsOutput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Timeline []DateStats   `json:"timeline"`
	Sites    []EntityStats `json:"sites"`
	AdUnits  []EntityStats `json:"ad_units,omitempty"`

	TotalImpressions int64   `json:"total_impressions"`
	TotalRevenue     float64 `json:"total_revenue"`

	// SharePercentage is the revenue-weighted share across claimed sites.
	SharePercentage float64 `json:"share_percentage"`
	// UserRevenue is the attributed payout, rounded to two decimals for
	// display.
	UserRevenue float64 `json:"user_revenue"`

	Cached bool `json:"cached"`
}

type RequestExportOutput struct {
	ExportID string `json:"export_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type ExportOutput struct {
	ID            string  `json:"id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Site          string  `json:"site,omitempty"`
	Status        string  `json:"status"`
	ErrorMessage  string  `json:"error_message,omitempty"`
	FileSizeBytes int64   `json:"file_size_bytes,omitempty"`
	RowCount      int     `json:"row_count,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type DownloadOutput struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
}
