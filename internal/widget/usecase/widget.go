package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
)

// Create validates the input, issues an API key, and stores the widget.
// The plaintext key is returned once and never persisted.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input widget.CreateInput) (widget.CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return widget.CreateOutput{}, widget.ErrNameRequired
	}
	domains, err := cleanDomains(input.AllowedDomains)
	if err != nil {
		return widget.CreateOutput{}, err
	}
	if err := validateShare(input.RevenueSharePct); err != nil {
		return widget.CreateOutput{}, err
	}

	apiKey, keyHash, err := generateAPIKey()
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.Create: Failed to generate api key: %v", err)
		return widget.CreateOutput{}, widget.ErrOperationFailed
	}

	created, err := uc.repo.Create(ctx, repository.CreateOptions{
		ID:              uuid.New().String(),
		UserID:          sc.UserID,
		Name:            strings.TrimSpace(input.Name),
		SiteURL:         strings.TrimSpace(input.SiteURL),
		AllowedDomains:  domains,
		RevenueSharePct: input.RevenueSharePct,
		APIKeyHash:      keyHash,
		Theme:           input.Theme,
	})
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.Create: Failed to create widget: %v", err)
		return widget.CreateOutput{}, widget.ErrOperationFailed
	}

	return widget.CreateOutput{
		Widget: *created,
		APIKey: apiKey,
	}, nil
}

// Get returns one of the caller's widgets.
func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, input widget.GetInput) (model.Widget, error) {
	w, err := uc.getOwned(ctx, sc, input.WidgetID)
	if err != nil {
		return model.Widget{}, err
	}
	return *w, nil
}

// List returns the caller's widgets, optionally filtered by status.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input widget.ListInput) (widget.ListOutput, error) {
	if input.Status != "" && input.Status != widget.StatusActive && input.Status != widget.StatusDisabled {
		return widget.ListOutput{}, widget.ErrInvalidStatus
	}

	widgets, err := uc.repo.List(ctx, repository.ListOptions{
		UserID: sc.UserID,
		Status: input.Status,
	})
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.List: Failed to list widgets: %v", err)
		return widget.ListOutput{}, widget.ErrOperationFailed
	}

	return widget.ListOutput{Widgets: widgets}, nil
}

// Update applies the provided fields to one of the caller's widgets.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input widget.UpdateInput) (model.Widget, error) {
	if _, err := uc.getOwned(ctx, sc, input.WidgetID); err != nil {
		return model.Widget{}, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return model.Widget{}, widget.ErrNameRequired
	}
	if err := validateShare(input.RevenueSharePct); err != nil {
		return model.Widget{}, err
	}
	if input.Status != nil && *input.Status != widget.StatusActive && *input.Status != widget.StatusDisabled {
		return model.Widget{}, widget.ErrInvalidStatus
	}

	domains := input.AllowedDomains
	if domains != nil {
		cleaned, err := cleanDomains(domains)
		if err != nil {
			return model.Widget{}, err
		}
		domains = cleaned
	}

	updated, err := uc.repo.Update(ctx, repository.UpdateOptions{
		WidgetID:        input.WidgetID,
		Name:            input.Name,
		SiteURL:         input.SiteURL,
		AllowedDomains:  domains,
		RevenueSharePct: input.RevenueSharePct,
		Theme:           input.Theme,
		Status:          input.Status,
	})
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.Update: Failed to update widget: %v", err)
		return model.Widget{}, widget.ErrOperationFailed
	}

	return *updated, nil
}

// Delete removes one of the caller's widgets.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, input widget.DeleteInput) error {
	if _, err := uc.getOwned(ctx, sc, input.WidgetID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, input.WidgetID); err != nil {
		uc.l.Errorf(ctx, "widget.usecase.Delete: Failed to delete widget: %v", err)
		return widget.ErrOperationFailed
	}
	return nil
}

// getOwned fetches a widget and hides it from non-owners.
func (uc *implUseCase) getOwned(ctx context.Context, sc model.Scope, widgetID string) (*model.Widget, error) {
	w, err := uc.repo.GetByID(ctx, widgetID)
	if err == repository.ErrWidgetNotFound {
		return nil, widget.ErrWidgetNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.getOwned: Failed to get widget: %v", err)
		return nil, widget.ErrOperationFailed
	}
	if w.UserID != sc.UserID {
		return nil, widget.ErrWidgetNotFound
	}
	return w, nil
}

// cleanDomains trims and lowercases the claimed domains, rejecting
// empties and requiring at least one.
func cleanDomains(domains []string) ([]string, error) {
	cleaned := make([]string, 0, len(domains))
	seen := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			return nil, widget.ErrInvalidDomain
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		cleaned = append(cleaned, d)
	}
	if len(cleaned) == 0 {
		return nil, widget.ErrDomainRequired
	}
	return cleaned, nil
}

func validateShare(share *float64) error {
	if share == nil {
		return nil
	}
	if *share < 0 || *share > 100 {
		return widget.ErrInvalidShare
	}
	return nil
}
