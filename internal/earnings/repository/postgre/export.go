package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"widget-srv/internal/earnings/repository"
	"widget-srv/internal/model"
)

const exportColumns = `id, user_id, start_date, end_date, site, params_hash, status,
		error_message, object_name, file_size_bytes, row_count, completed_at, created_at, updated_at`

// CreateExport - Insert a new export record in PROCESSING state.
func (r *implRepository) CreateExport(ctx context.Context, opts repository.CreateExportOptions) (*model.EarningsExport, error) {
	now := time.Now()

	query := `
		INSERT INTO widget.earnings_exports
			(id, user_id, start_date, end_date, site, params_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + exportColumns

	row := r.db.QueryRowContext(ctx, query,
		opts.ID, opts.UserID, opts.StartDate, opts.EndDate, opts.Site, opts.ParamsHash,
		"PROCESSING", now, now,
	)

	export, err := scanExport(row)
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.CreateExport: Failed to insert export: %v", err)
		return nil, repository.ErrExportCreateFailed
	}
	return export, nil
}

// GetExportByID - Get export by primary key.
func (r *implRepository) GetExportByID(ctx context.Context, id string) (*model.EarningsExport, error) {
	query := `SELECT ` + exportColumns + ` FROM widget.earnings_exports WHERE id = $1`

	export, err := scanExport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrExportNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.GetExportByID: Failed to get export: %v", err)
		return nil, err
	}
	return export, nil
}

// FindByParamsHash - Find the newest export matching params_hash and
// optional status. Not found is not an error here.
func (r *implRepository) FindByParamsHash(ctx context.Context, opts repository.FindByParamsHashOptions) (*model.EarningsExport, error) {
	query := `SELECT ` + exportColumns + ` FROM widget.earnings_exports WHERE params_hash = $1`
	args := []interface{}{opts.ParamsHash}

	if opts.Status != "" {
		query += " AND status = $2"
		args = append(args, opts.Status)
	}
	query += " ORDER BY created_at DESC LIMIT 1"

	export, err := scanExport(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.FindByParamsHash: Failed to find export: %v", err)
		return nil, err
	}
	return export, nil
}

// UpdateCompleted - Mark export as COMPLETED with output metadata.
func (r *implRepository) UpdateCompleted(ctx context.Context, opts repository.UpdateCompletedOptions) error {
	query := `
		UPDATE widget.earnings_exports
		SET status = 'COMPLETED', object_name = $2, file_size_bytes = $3, row_count = $4,
			completed_at = $5, updated_at = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		opts.ExportID, opts.ObjectName, opts.FileSizeBytes, opts.RowCount, opts.CompletedAt, time.Now(),
	)
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.UpdateCompleted: Failed to update export: %v", err)
		return repository.ErrExportUpdateFailed
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrExportNotFound
	}
	return nil
}

// UpdateFailed - Mark export as FAILED with error message.
func (r *implRepository) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	query := `
		UPDATE widget.earnings_exports
		SET status = 'FAILED', error_message = $2, updated_at = $3
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, opts.ExportID, opts.ErrorMessage, time.Now())
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.UpdateFailed: Failed to update export: %v", err)
		return repository.ErrExportUpdateFailed
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrExportNotFound
	}
	return nil
}

// ListExports - List exports for a user with optional status filter and
// pagination.
func (r *implRepository) ListExports(ctx context.Context, opts repository.ListExportsOptions) ([]*model.EarningsExport, error) {
	query := `SELECT ` + exportColumns + ` FROM widget.earnings_exports WHERE user_id = $1`
	args := []interface{}{opts.UserID}
	argIdx := 2

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, opts.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.ListExports: Failed to list exports: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exports []*model.EarningsExport
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			r.l.Errorf(ctx, "earnings.repository.postgre.ListExports: Failed to scan export: %v", err)
			return nil, err
		}
		exports = append(exports, export)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "earnings.repository.postgre.ListExports: Rows error: %v", err)
		return nil, err
	}

	return exports, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExport(row rowScanner) (*model.EarningsExport, error) {
	var export model.EarningsExport
	var site, errorMessage, objectName sql.NullString
	var fileSize sql.NullInt64
	var rowCount sql.NullInt32
	var completedAt sql.NullTime

	err := row.Scan(
		&export.ID, &export.UserID, &export.StartDate, &export.EndDate,
		&site, &export.ParamsHash, &export.Status,
		&errorMessage, &objectName, &fileSize, &rowCount,
		&completedAt, &export.CreatedAt, &export.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	export.Site = site.String
	export.ErrorMessage = errorMessage.String
	export.ObjectName = objectName.String
	export.FileSizeBytes = fileSize.Int64
	export.RowCount = int(rowCount.Int32)
	if completedAt.Valid {
		export.CompletedAt = &completedAt.Time
	}

	return &export, nil
}
