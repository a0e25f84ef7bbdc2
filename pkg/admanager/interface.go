package admanager

import (
	"context"
	"net/http"

	"widget-srv/pkg/log"
)

type IAdManager interface {
	// RunReport submits a report job and returns its ID.
	RunReport(ctx context.Context, req ReportRequest) (string, error)
	// AwaitCompletion polls the job until it completes, fails, or the
	// attempt budget runs out.
	AwaitCompletion(ctx context.Context, jobID string) error
	// FetchAndAggregate downloads the finished job's artifact and folds
	// it into per-date and per-entity totals.
	FetchAndAggregate(ctx context.Context, jobID string, opts AggregateOptions) (*Report, error)
	// Report runs the full pipeline: submit, await, fetch.
	Report(ctx context.Context, req ReportRequest) (*Report, error)
}

func New(l log.Logger, cfg Config) IAdManager {
	c := &implClient{
		l:           l,
		cfg:         cfg,
		endpoint:    cfg.Endpoint,
		maxAttempts: cfg.MaxPollAttempts,
		interval:    cfg.PollInterval,
		httpClient:  cfg.HTTPClient,
		downloader:  cfg.DownloadClient,
		sleep:       sleepCtx,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = DefaultMaxPollAttempts
	}
	if c.interval <= 0 {
		c.interval = DefaultPollInterval
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	if c.downloader == nil {
		c.downloader = &http.Client{Timeout: DefaultDownloadTimeout}
	}
	return c
}
