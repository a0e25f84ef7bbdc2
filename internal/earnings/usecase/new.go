package usecase

import (
	"time"

	"widget-srv/internal/earnings"
	"widget-srv/internal/earnings/repository"
	"widget-srv/internal/widget"
	"widget-srv/pkg/admanager"
	"widget-srv/pkg/kafka"
	"widget-srv/pkg/log"
	"widget-srv/pkg/minio"
)

const (
	defaultExportBucket  = "widget-exports"
	defaultCacheTTL      = 10 * time.Minute
	defaultExportTimeout = 10 * time.Minute
)

// Config holds configuration for earnings reporting.
type Config struct {
	ExportBucket  string
	CacheTTL      time.Duration
	ExportTimeout time.Duration
}

type implUseCase struct {
	repo      repository.PostgresRepository
	cache     repository.CacheRepository
	widgetUC  widget.UseCase
	adManager admanager.IAdManager
	minio     minio.MinIO
	producer  kafka.IProducer
	l         log.Logger
	config    Config
}

// New creates a new earnings UseCase implementation.
func New(
	repo repository.PostgresRepository,
	cache repository.CacheRepository,
	widgetUC widget.UseCase,
	adManager admanager.IAdManager,
	minioClient minio.MinIO,
	producer kafka.IProducer,
	l log.Logger,
	cfg Config,
) earnings.UseCase {
	if cfg.ExportBucket == "" {
		cfg.ExportBucket = defaultExportBucket
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = defaultExportTimeout
	}

	return &implUseCase{
		repo:      repo,
		cache:     cache,
		widgetUC:  widgetUC,
		adManager: adManager,
		minio:     minioClient,
		producer:  producer,
		l:         l,
		config:    cfg,
	}
}
