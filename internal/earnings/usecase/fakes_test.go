package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"widget-srv/internal/earnings/repository"
	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/pkg/admanager"
	"widget-srv/pkg/minio"
)

// fakeExportRepo is an in-memory export store. Safe for use from the
// background generation goroutine.
type fakeExportRepo struct {
	mu        sync.Mutex
	byID      map[string]*model.EarningsExport
	created   []repository.CreateExportOptions
	completed []repository.UpdateCompletedOptions
	failed    []repository.UpdateFailedOptions
	findErr   error
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{byID: make(map[string]*model.EarningsExport)}
}

func (r *fakeExportRepo) put(export *model.EarningsExport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[export.ID] = export
}

func (r *fakeExportRepo) CreateExport(_ context.Context, opts repository.CreateExportOptions) (*model.EarningsExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, opts)
	export := &model.EarningsExport{
		ID:         opts.ID,
		UserID:     opts.UserID,
		StartDate:  opts.StartDate,
		EndDate:    opts.EndDate,
		Site:       opts.Site,
		ParamsHash: opts.ParamsHash,
		Status:     "PROCESSING",
		CreatedAt:  time.Now(),
	}
	r.byID[export.ID] = export
	return export, nil
}

func (r *fakeExportRepo) GetExportByID(_ context.Context, id string) (*model.EarningsExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	export, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrExportNotFound
	}
	return export, nil
}

func (r *fakeExportRepo) FindByParamsHash(_ context.Context, opts repository.FindByParamsHashOptions) (*model.EarningsExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, export := range r.byID {
		if export.ParamsHash == opts.ParamsHash && export.Status == opts.Status {
			return export, nil
		}
	}
	return nil, nil
}

func (r *fakeExportRepo) UpdateCompleted(_ context.Context, opts repository.UpdateCompletedOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, opts)
	if export, ok := r.byID[opts.ExportID]; ok {
		export.Status = "COMPLETED"
		export.ObjectName = opts.ObjectName
		export.FileSizeBytes = opts.FileSizeBytes
		export.RowCount = opts.RowCount
		completedAt := opts.CompletedAt
		export.CompletedAt = &completedAt
	}
	return nil
}

func (r *fakeExportRepo) UpdateFailed(_ context.Context, opts repository.UpdateFailedOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, opts)
	if export, ok := r.byID[opts.ExportID]; ok {
		export.Status = "FAILED"
		export.ErrorMessage = opts.ErrorMessage
	}
	return nil
}

func (r *fakeExportRepo) ListExports(_ context.Context, opts repository.ListExportsOptions) ([]*model.EarningsExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.EarningsExport
	for _, export := range r.byID {
		if export.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && export.Status != opts.Status {
			continue
		}
		out = append(out, export)
	}
	return out, nil
}

// fakeCache is an in-memory CacheRepository.
type fakeCache struct {
	mu    sync.Mutex
	data  map[repository.CacheKeyOptions][]byte
	saves int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[repository.CacheKeyOptions][]byte)}
}

func (c *fakeCache) GetReport(_ context.Context, opts repository.CacheKeyOptions) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[opts]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return data, nil
}

func (c *fakeCache) SaveReport(_ context.Context, opts repository.SaveReportOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[opts.Key] = opts.Data
	c.saves++
	return nil
}

// fakeWidgetUC serves a fixed widget list; nothing else is used by the
// earnings flow.
type fakeWidgetUC struct {
	widgets []model.Widget
	listErr error
}

func (f *fakeWidgetUC) List(_ context.Context, _ model.Scope, _ widget.ListInput) (widget.ListOutput, error) {
	if f.listErr != nil {
		return widget.ListOutput{}, f.listErr
	}
	return widget.ListOutput{Widgets: f.widgets}, nil
}

func (f *fakeWidgetUC) Create(_ context.Context, _ model.Scope, _ widget.CreateInput) (widget.CreateOutput, error) {
	return widget.CreateOutput{}, nil
}

func (f *fakeWidgetUC) Get(_ context.Context, _ model.Scope, _ widget.GetInput) (model.Widget, error) {
	return model.Widget{}, nil
}

func (f *fakeWidgetUC) Update(_ context.Context, _ model.Scope, _ widget.UpdateInput) (model.Widget, error) {
	return model.Widget{}, nil
}

func (f *fakeWidgetUC) Delete(_ context.Context, _ model.Scope, _ widget.DeleteInput) error {
	return nil
}

func (f *fakeWidgetUC) RotateAPIKey(_ context.Context, _ model.Scope, _ widget.RotateKeyInput) (widget.RotateKeyOutput, error) {
	return widget.RotateKeyOutput{}, nil
}

func (f *fakeWidgetUC) VerifyKey(_ context.Context, _ widget.VerifyKeyInput) (model.Widget, error) {
	return model.Widget{}, nil
}

// fakeAdManager returns a canned report and records requests.
type fakeAdManager struct {
	mu       sync.Mutex
	report   *admanager.Report
	err      error
	requests []admanager.ReportRequest
}

func (f *fakeAdManager) Report(_ context.Context, req admanager.ReportRequest) (*admanager.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeAdManager) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAdManager) lastRequest() admanager.ReportRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeAdManager) RunReport(_ context.Context, _ admanager.ReportRequest) (string, error) {
	return "", nil
}

func (f *fakeAdManager) AwaitCompletion(_ context.Context, _ string) error {
	return nil
}

func (f *fakeAdManager) FetchAndAggregate(_ context.Context, _ string, _ admanager.AggregateOptions) (*admanager.Report, error) {
	return f.report, f.err
}

// fakeMinio records uploads in memory.
type fakeMinio struct {
	mu        sync.Mutex
	uploads   []minio.UploadRequest
	objects   map[string][]byte
	uploadErr error
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{objects: make(map[string][]byte)}
}

func (f *fakeMinio) Connect(_ context.Context) error                        { return nil }
func (f *fakeMinio) ConnectWithRetry(_ context.Context, _ int) error        { return nil }
func (f *fakeMinio) HealthCheck(_ context.Context) error                    { return nil }
func (f *fakeMinio) Close() error                                           { return nil }
func (f *fakeMinio) EnsureBucket(_ context.Context, _ string) error         { return nil }
func (f *fakeMinio) DeleteFile(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeMinio) FileExists(_ context.Context, _ string, objectName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[objectName]
	return ok, nil
}

func (f *fakeMinio) UploadFile(_ context.Context, req *minio.UploadRequest) (*minio.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, *req)
	f.objects[req.ObjectName] = data
	return &minio.FileInfo{
		BucketName: req.BucketName,
		ObjectName: req.ObjectName,
		Size:       int64(len(data)),
	}, nil
}

func (f *fakeMinio) GetPresignedDownloadURL(_ context.Context, req *minio.PresignedURLRequest) (*minio.PresignedURLResponse, error) {
	return &minio.PresignedURLResponse{
		URL:       "https://storage.local/" + req.BucketName + "/" + req.ObjectName,
		ExpiresAt: time.Now().Add(req.Expiry),
		Method:    "GET",
	}, nil
}

// fakeProducer records published events.
type fakeProducer struct {
	mu     sync.Mutex
	events [][]byte
}

func (f *fakeProducer) Publish(_, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, value)
	return nil
}

func (f *fakeProducer) HealthCheck() error { return nil }
func (f *fakeProducer) Close() error       { return nil }
