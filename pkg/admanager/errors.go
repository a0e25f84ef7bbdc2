package admanager

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrJobFailed        = errors.New("report job failed")
	ErrPollTimeout      = errors.New("report job polling timed out")
)

// ProtocolError reports an RPC exchange the service rejected or
// answered with an unusable body.
type ProtocolError struct {
	Op         string
	StatusCode int
	Message    string
	// Body holds at most the first 500 characters of the response.
	Body string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("admanager: %s: %s (status %d): %s", e.Op, e.Message, e.StatusCode, e.Body)
}

// DownloadError reports a failure fetching or reading the report
// artifact.
type DownloadError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("admanager: download: %s (status %d): %s", e.Message, e.StatusCode, e.Body)
}

func excerpt(b []byte) string {
	if len(b) > errorBodyExcerptLen {
		return string(b[:errorBodyExcerptLen])
	}
	return string(b)
}
