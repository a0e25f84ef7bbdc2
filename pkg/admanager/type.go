package admanager

import (
	"context"
	"net/http"
	"time"

	"widget-srv/pkg/googleauth"
	"widget-srv/pkg/log"
)

// Config carries the settings a report client needs.
type Config struct {
	// NetworkCode is the Ad Manager network this client reports on.
	NetworkCode string
	// Auth issues bearer tokens for the reporting API.
	Auth googleauth.IProvider
	// Endpoint overrides DefaultEndpoint, used by tests.
	Endpoint string
	// LineItemID restricts reports to a single line item when set.
	LineItemID string
	// MaxPollAttempts overrides DefaultMaxPollAttempts when > 0.
	MaxPollAttempts int
	// PollInterval overrides DefaultPollInterval when > 0.
	PollInterval time.Duration
	// HTTPClient overrides the RPC client, used by tests.
	HTTPClient *http.Client
	// DownloadClient overrides the artifact download client, used by tests.
	DownloadClient *http.Client
}

// ReportRequest describes one report job.
type ReportRequest struct {
	// StartDate and EndDate accept YYYY-MM-DD or ISO timestamps,
	// normalized to the date part.
	StartDate string
	EndDate   string
	// EntityDimension is the second report dimension, DimensionSite
	// when empty.
	EntityDimension string
	// EntityMatch, when set, keeps only rows whose entity column
	// satisfies it. Callers that normalize entity names pass their
	// normalizer here so the match survives raw-name variants.
	EntityMatch func(entity string) bool
}

// AggregateOptions control how the artifact is folded.
type AggregateOptions struct {
	// Dimension names the bucket the entity column feeds,
	// DimensionSite when empty.
	Dimension string
	// EntityFilter keeps only rows whose entity column matches,
	// bounding output size. Empty keeps everything.
	EntityFilter string
	// EntityMatch keeps only rows whose entity column satisfies it,
	// nil keeps everything. Filtered rows are excluded from every
	// bucket, the totals and the row count.
	EntityMatch func(entity string) bool
}

// Stats accumulates one grouping bucket.
type Stats struct {
	Impressions int64   `json:"impressions"`
	Revenue     float64 `json:"revenue"`
}

// Report is the aggregated result of one report job.
type Report struct {
	ByDate   map[string]*Stats `json:"by_date"`
	BySite   map[string]*Stats `json:"by_site"`
	ByAdUnit map[string]*Stats `json:"by_ad_unit"`

	TotalImpressions int64   `json:"total_impressions"`
	TotalRevenue     float64 `json:"total_revenue"`
	RowCount         int     `json:"row_count"`
}

type implClient struct {
	l           log.Logger
	cfg         Config
	endpoint    string
	maxAttempts int
	interval    time.Duration
	httpClient  *http.Client
	downloader  *http.Client

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}
