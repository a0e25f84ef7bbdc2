package repository

import "time"

type CreateExportOptions struct {
	ID         string
	UserID     string
	StartDate  string
	EndDate    string
	Site       string
	ParamsHash string
}

type FindByParamsHashOptions struct {
	ParamsHash string
	Status     string
}

type UpdateCompletedOptions struct {
	ExportID      string
	ObjectName    string
	FileSizeBytes int64
	RowCount      int
	CompletedAt   time.Time
}

type UpdateFailedOptions struct {
	ExportID     string
	ErrorMessage string
}

type ListExportsOptions struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

type CacheKeyOptions struct {
	UserID    string
	StartDate string
	EndDate   string
	Site      string
	Dimension string
}

type SaveReportOptions struct {
	Key  CacheKeyOptions
	Data []byte
	TTL  time.Duration
}
