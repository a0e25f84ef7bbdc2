package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"widget-srv/internal/model"
	"widget-srv/internal/widget/repository"
)

const widgetColumns = `id, user_id, name, site_url, allowed_domains, revenue_share_pct,
		api_key_hash, theme, status, created_at, updated_at`

// Create - Insert a new widget record.
func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (*model.Widget, error) {
	now := time.Now()

	query := `
		INSERT INTO widget.widgets
			(id, user_id, name, site_url, allowed_domains, revenue_share_pct, api_key_hash, theme, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + widgetColumns

	row := r.db.QueryRowContext(ctx, query,
		opts.ID, opts.UserID, opts.Name, opts.SiteURL,
		pq.Array(opts.AllowedDomains), opts.RevenueSharePct, opts.APIKeyHash,
		nullableJSON(opts.Theme), "ACTIVE", now, now,
	)

	widget, err := scanWidget(row)
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Create: Failed to insert widget: %v", err)
		return nil, repository.ErrWidgetCreateFailed
	}
	return widget, nil
}

// GetByID - Get widget by primary key.
func (r *implRepository) GetByID(ctx context.Context, id string) (*model.Widget, error) {
	query := `SELECT ` + widgetColumns + ` FROM widget.widgets WHERE id = $1`

	widget, err := scanWidget(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrWidgetNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.GetByID: Failed to get widget: %v", err)
		return nil, err
	}
	return widget, nil
}

// List - List widgets for a user with optional status filter.
func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Widget, error) {
	query := `SELECT ` + widgetColumns + ` FROM widget.widgets WHERE user_id = $1`
	args := []interface{}{opts.UserID}

	if opts.Status != "" {
		query += " AND status = $2"
		args = append(args, opts.Status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.List: Failed to list widgets: %v", err)
		return nil, err
	}
	defer rows.Close()

	var widgets []model.Widget
	for rows.Next() {
		widget, err := scanWidget(rows)
		if err != nil {
			r.l.Errorf(ctx, "widget.repository.postgre.List: Failed to scan widget: %v", err)
			return nil, err
		}
		widgets = append(widgets, *widget)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.List: Rows error: %v", err)
		return nil, err
	}

	return widgets, nil
}

// Update - Apply the provided fields and return the updated row.
func (r *implRepository) Update(ctx context.Context, opts repository.UpdateOptions) (*model.Widget, error) {
	query := `UPDATE widget.widgets SET updated_at = $1`
	args := []interface{}{time.Now()}
	argIdx := 2

	appendSet := func(column string, value interface{}) {
		query += fmt.Sprintf(", %s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if opts.Name != nil {
		appendSet("name", *opts.Name)
	}
	if opts.SiteURL != nil {
		appendSet("site_url", *opts.SiteURL)
	}
	if opts.AllowedDomains != nil {
		appendSet("allowed_domains", pq.Array(opts.AllowedDomains))
	}
	if opts.RevenueSharePct != nil {
		appendSet("revenue_share_pct", *opts.RevenueSharePct)
	}
	if opts.Theme != nil {
		appendSet("theme", nullableJSON(opts.Theme))
	}
	if opts.Status != nil {
		appendSet("status", *opts.Status)
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argIdx) + widgetColumns
	args = append(args, opts.WidgetID)

	widget, err := scanWidget(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrWidgetNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Update: Failed to update widget: %v", err)
		return nil, repository.ErrWidgetUpdateFailed
	}
	return widget, nil
}

// UpdateKeyHash - Replace the stored API key hash.
func (r *implRepository) UpdateKeyHash(ctx context.Context, opts repository.UpdateKeyHashOptions) error {
	query := `UPDATE widget.widgets SET api_key_hash = $2, updated_at = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, opts.WidgetID, opts.APIKeyHash, time.Now())
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.UpdateKeyHash: Failed to update key hash: %v", err)
		return repository.ErrWidgetUpdateFailed
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrWidgetNotFound
	}
	return nil
}

// Delete - Remove a widget record.
func (r *implRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM widget.widgets WHERE id = $1`, id)
	if err != nil {
		r.l.Errorf(ctx, "widget.repository.postgre.Delete: Failed to delete widget: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrWidgetNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWidget(row rowScanner) (*model.Widget, error) {
	var widget model.Widget
	var domains pq.StringArray
	var share sql.NullFloat64
	var theme []byte

	err := row.Scan(
		&widget.ID, &widget.UserID, &widget.Name, &widget.SiteURL,
		&domains, &share, &widget.APIKeyHash, &theme,
		&widget.Status, &widget.CreatedAt, &widget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	widget.AllowedDomains = domains
	if share.Valid {
		widget.RevenueSharePct = &share.Float64
	}
	widget.Theme = theme

	return &widget, nil
}

// nullableJSON keeps empty themes as SQL NULL rather than empty bytes.
func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
