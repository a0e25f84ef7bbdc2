package admanager

import "time"

const (
	// DefaultEndpoint is the Ad Manager ReportService endpoint.
	DefaultEndpoint = "https://ads.google.com/apis/ads/publisher/v202405/ReportService"
	// APIVersionNamespace is the SOAP namespace of the API version in use.
	APIVersionNamespace = "https://www.google.com/apis/ads/publisher/v202405"
	// ApplicationName identifies this service to the reporting API.
	ApplicationName = "widget-srv"
	// OAuthScope is the scope requested for report API tokens.
	OAuthScope = "https://www.googleapis.com/auth/dfp"
)

// Remote operations. The operation name doubles as the SOAPAction header.
const (
	OpRunReportJob   = "runReportJob"
	OpGetJobStatus   = "getReportJobStatus"
	OpGetDownloadURL = "getReportDownloadUrlWithOptions"
)

// Report job states as reported by the service.
const (
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
	JobStatusInProgress = "IN_PROGRESS"
)

// Entity dimensions supported by report requests.
const (
	DimensionSite   = "SITE_NAME"
	DimensionAdUnit = "AD_UNIT_NAME"
)

const (
	// DefaultMaxPollAttempts bounds the status poll loop.
	DefaultMaxPollAttempts = 45
	// DefaultPollInterval is the fixed wait between status polls.
	DefaultPollInterval = 2 * time.Second
	// DefaultRequestTimeout is the timeout for RPC calls.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultDownloadTimeout caps the whole artifact download and parse.
	DefaultDownloadTimeout = 5 * time.Minute
	// errorBodyExcerptLen bounds error bodies attached to failures.
	errorBodyExcerptLen = 500
	// microsPerUnit converts micro currency units to currency units.
	microsPerUnit = 1e6
)
