package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"widget-srv/internal/earnings"
	"widget-srv/internal/earnings/repository"
	"widget-srv/internal/model"
	"widget-srv/pkg/minio"
)

const (
	eventExportCompleted = "earnings.export.completed"
	eventExportFailed    = "earnings.export.failed"

	// completedReuseWindow is how long a finished export satisfies an
	// identical request without regenerating.
	completedReuseWindow = time.Hour

	downloadURLExpiry = 30 * time.Minute
)

// RequestExport creates a new CSV export or returns an existing one for
// the same parameters.
// Flow: validate → hash params → check dedup → create record → kick off background generation.
func (uc *implUseCase) RequestExport(ctx context.Context, sc model.Scope, input earnings.RequestExportInput) (earnings.RequestExportOutput, error) {
	start, end, err := normalizeDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return earnings.RequestExportOutput{}, earnings.ErrInvalidDateRange
	}
	site := normalizeHost(input.Site)

	paramsHash := exportParamsHash(sc.UserID, start, end, site)

	existing, err := uc.repo.FindByParamsHash(ctx, repository.FindByParamsHashOptions{
		ParamsHash: paramsHash,
		Status:     earnings.StatusProcessing,
	})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.RequestExport: Failed to check existing export: %v", err)
		return earnings.RequestExportOutput{}, earnings.ErrExportFailed
	}
	if existing != nil {
		return earnings.RequestExportOutput{
			ExportID: existing.ID,
			Status:   existing.Status,
			Message:  "Export is already being generated",
		}, nil
	}

	completed, err := uc.repo.FindByParamsHash(ctx, repository.FindByParamsHashOptions{
		ParamsHash: paramsHash,
		Status:     earnings.StatusCompleted,
	})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.RequestExport: Failed to check completed export: %v", err)
		return earnings.RequestExportOutput{}, earnings.ErrExportFailed
	}
	if completed != nil && time.Since(completed.CreatedAt) < completedReuseWindow {
		return earnings.RequestExportOutput{
			ExportID: completed.ID,
			Status:   completed.Status,
			Message:  "Export already completed",
		}, nil
	}

	export, err := uc.repo.CreateExport(ctx, repository.CreateExportOptions{
		ID:         uuid.New().String(),
		UserID:     sc.UserID,
		StartDate:  start,
		EndDate:    end,
		Site:       site,
		ParamsHash: paramsHash,
	})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.RequestExport: Failed to create export: %v", err)
		return earnings.RequestExportOutput{}, earnings.ErrExportFailed
	}

	go uc.generateExportInBackground(sc, export.ID, start, end, site)

	return earnings.RequestExportOutput{
		ExportID: export.ID,
		Status:   earnings.StatusProcessing,
		Message:  "Export generation started",
	}, nil
}

// generateExportInBackground runs the pipeline, renders the CSV, and
// uploads it. Runs detached from the request context.
func (uc *implUseCase) generateExportInBackground(sc model.Scope, exportID, start, end, site string) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.config.ExportTimeout)
	defer cancel()

	out, err := uc.computeEarnings(ctx, sc, start, end, earnings.DimensionSite, site)
	if err != nil {
		uc.failExport(ctx, sc, exportID, err)
		return
	}

	data, err := renderExportCSV(out)
	if err != nil {
		uc.failExport(ctx, sc, exportID, err)
		return
	}

	objectName := fmt.Sprintf("exports/%s/%s.csv", sc.UserID, exportID)

	if err := uc.minio.EnsureBucket(ctx, uc.config.ExportBucket); err != nil {
		uc.failExport(ctx, sc, exportID, err)
		return
	}
	info, err := uc.minio.UploadFile(ctx, &minio.UploadRequest{
		BucketName:   uc.config.ExportBucket,
		ObjectName:   objectName,
		OriginalName: fmt.Sprintf("earnings_%s_%s.csv", start, end),
		Reader:       bytes.NewReader(data),
		Size:         int64(len(data)),
		ContentType:  "text/csv",
	})
	if err != nil {
		uc.failExport(ctx, sc, exportID, err)
		return
	}

	if err := uc.repo.UpdateCompleted(ctx, repository.UpdateCompletedOptions{
		ExportID:      exportID,
		ObjectName:    objectName,
		FileSizeBytes: info.Size,
		RowCount:      len(out.Timeline),
		CompletedAt:   time.Now(),
	}); err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.generateExportInBackground: Failed to mark export completed: %v", err)
		return
	}

	uc.publishExportEvent(ctx, exportEvent{
		Event:      eventExportCompleted,
		ExportID:   exportID,
		UserID:     sc.UserID,
		Status:     earnings.StatusCompleted,
		ObjectName: objectName,
	})
}

func (uc *implUseCase) failExport(ctx context.Context, sc model.Scope, exportID string, cause error) {
	uc.l.Errorf(ctx, "earnings.usecase.generateExportInBackground: Export %s failed: %v", exportID, cause)

	if err := uc.repo.UpdateFailed(ctx, repository.UpdateFailedOptions{
		ExportID:     exportID,
		ErrorMessage: cause.Error(),
	}); err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.failExport: Failed to mark export failed: %v", err)
	}

	uc.publishExportEvent(ctx, exportEvent{
		Event:    eventExportFailed,
		ExportID: exportID,
		UserID:   sc.UserID,
		Status:   earnings.StatusFailed,
		Error:    cause.Error(),
	})
}

type exportEvent struct {
	Event      string `json:"event"`
	ExportID   string `json:"export_id"`
	UserID     string `json:"user_id"`
	Status     string `json:"status"`
	ObjectName string `json:"object_name,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// publishExportEvent emits a lifecycle event. Publishing is best effort;
// the export record is the source of truth.
func (uc *implUseCase) publishExportEvent(ctx context.Context, event exportEvent) {
	event.Timestamp = time.Now().Unix()

	payload, err := json.Marshal(event)
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.publishExportEvent: Failed to marshal event: %v", err)
		return
	}
	if err := uc.producer.Publish([]byte(event.ExportID), payload); err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.publishExportEvent: Failed to publish event: %v", err)
	}
}

// renderExportCSV writes the per-date timeline followed by a totals row.
func renderExportCSV(out earnings.GetEarningsOutput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "impressions", "revenue"}); err != nil {
		return nil, err
	}
	for _, row := range out.Timeline {
		record := []string{
			row.Date,
			strconv.FormatInt(row.Impressions, 10),
			strconv.FormatFloat(row.Revenue, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{
		"total",
		strconv.FormatInt(out.TotalImpressions, 10),
		strconv.FormatFloat(out.UserRevenue, 'f', 2, 64),
	}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetExport returns the current status and metadata of an export. Only
// the owner can see it.
func (uc *implUseCase) GetExport(ctx context.Context, sc model.Scope, input earnings.GetExportInput) (earnings.ExportOutput, error) {
	export, err := uc.repo.GetExportByID(ctx, input.ExportID)
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.GetExport: Failed to get export: %v", err)
		return earnings.ExportOutput{}, earnings.ErrExportNotFound
	}
	if export.UserID != sc.UserID {
		return earnings.ExportOutput{}, earnings.ErrExportNotFound
	}

	return buildExportOutput(export), nil
}

// ListExports lists the caller's exports, newest first.
func (uc *implUseCase) ListExports(ctx context.Context, sc model.Scope, input earnings.ListExportsInput) ([]earnings.ExportOutput, error) {
	exports, err := uc.repo.ListExports(ctx, repository.ListExportsOptions{
		UserID: sc.UserID,
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.ListExports: Failed to list exports: %v", err)
		return nil, earnings.ErrExportFailed
	}

	out := make([]earnings.ExportOutput, 0, len(exports))
	for _, export := range exports {
		out = append(out, buildExportOutput(export))
	}
	return out, nil
}

// DownloadExport generates a presigned download URL for a completed
// export.
func (uc *implUseCase) DownloadExport(ctx context.Context, sc model.Scope, input earnings.DownloadExportInput) (earnings.DownloadOutput, error) {
	export, err := uc.repo.GetExportByID(ctx, input.ExportID)
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.DownloadExport: Failed to get export: %v", err)
		return earnings.DownloadOutput{}, earnings.ErrExportNotFound
	}
	if export.UserID != sc.UserID {
		return earnings.DownloadOutput{}, earnings.ErrExportNotFound
	}
	if export.Status != earnings.StatusCompleted {
		return earnings.DownloadOutput{}, earnings.ErrExportNotReady
	}

	presigned, err := uc.minio.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: uc.config.ExportBucket,
		ObjectName: export.ObjectName,
		Expiry:     downloadURLExpiry,
	})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.DownloadExport: Failed to generate presigned URL: %v", err)
		return earnings.DownloadOutput{}, earnings.ErrDownloadURLFailed
	}

	return earnings.DownloadOutput{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt.Format(time.RFC3339),
		FileName:    fmt.Sprintf("earnings_%s_%s.csv", export.StartDate, export.EndDate),
		FileSize:    export.FileSizeBytes,
	}, nil
}

func buildExportOutput(export *model.EarningsExport) earnings.ExportOutput {
	out := earnings.ExportOutput{
		ID:            export.ID,
		StartDate:     export.StartDate,
		EndDate:       export.EndDate,
		Site:          export.Site,
		Status:        export.Status,
		ErrorMessage:  export.ErrorMessage,
		FileSizeBytes: export.FileSizeBytes,
		RowCount:      export.RowCount,
		CreatedAt:     export.CreatedAt.Format(time.RFC3339),
	}
	if export.CompletedAt != nil {
		completed := export.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &completed
	}
	return out
}
