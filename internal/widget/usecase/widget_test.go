package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
	"widget-srv/pkg/log"
)

// fakeWidgetRepo is an in-memory PostgresRepository.
type fakeWidgetRepo struct {
	byID map[string]*model.Widget
}

func newFakeWidgetRepo() *fakeWidgetRepo {
	return &fakeWidgetRepo{byID: make(map[string]*model.Widget)}
}

func (r *fakeWidgetRepo) Create(_ context.Context, opts repository.CreateOptions) (*model.Widget, error) {
	w := &model.Widget{
		ID:              opts.ID,
		UserID:          opts.UserID,
		Name:            opts.Name,
		SiteURL:         opts.SiteURL,
		AllowedDomains:  opts.AllowedDomains,
		RevenueSharePct: opts.RevenueSharePct,
		APIKeyHash:      opts.APIKeyHash,
		Theme:           opts.Theme,
		Status:          widget.StatusActive,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	r.byID[w.ID] = w
	return w, nil
}

func (r *fakeWidgetRepo) GetByID(_ context.Context, id string) (*model.Widget, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrWidgetNotFound
	}
	return w, nil
}

func (r *fakeWidgetRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Widget, error) {
	var out []model.Widget
	for _, w := range r.byID {
		if w.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && w.Status != opts.Status {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWidgetRepo) Update(_ context.Context, opts repository.UpdateOptions) (*model.Widget, error) {
	w, ok := r.byID[opts.WidgetID]
	if !ok {
		return nil, repository.ErrWidgetNotFound
	}
	if opts.Name != nil {
		w.Name = *opts.Name
	}
	if opts.SiteURL != nil {
		w.SiteURL = *opts.SiteURL
	}
	if opts.AllowedDomains != nil {
		w.AllowedDomains = opts.AllowedDomains
	}
	if opts.RevenueSharePct != nil {
		w.RevenueSharePct = opts.RevenueSharePct
	}
	if opts.Theme != nil {
		w.Theme = opts.Theme
	}
	if opts.Status != nil {
		w.Status = *opts.Status
	}
	w.UpdatedAt = time.Now()
	return w, nil
}

func (r *fakeWidgetRepo) UpdateKeyHash(_ context.Context, opts repository.UpdateKeyHashOptions) error {
	w, ok := r.byID[opts.WidgetID]
	if !ok {
		return repository.ErrWidgetNotFound
	}
	w.APIKeyHash = opts.APIKeyHash
	return nil
}

func (r *fakeWidgetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrWidgetNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestUseCase() (widget.UseCase, *fakeWidgetRepo) {
	repo := newFakeWidgetRepo()
	return New(repo, log.NewNop()), repo
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("creates a widget and returns the key once", func(t *testing.T) {
		uc, repo := newTestUseCase()

		out, err := uc.Create(ctx, sc, widget.CreateInput{
			Name:           "  Support Chat  ",
			SiteURL:        "https://example.com",
			AllowedDomains: []string{"Example.com", "example.com", " blog.example.com "},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Widget.Name != "Support Chat" {
			t.Errorf("Name = %q, want trimmed", out.Widget.Name)
		}
		if len(out.Widget.AllowedDomains) != 2 {
			t.Errorf("domains should be deduped: %v", out.Widget.AllowedDomains)
		}
		if !strings.HasPrefix(out.APIKey, "wk_") {
			t.Errorf("APIKey = %q, want wk_ prefix", out.APIKey)
		}

		stored := repo.byID[out.Widget.ID]
		if stored.APIKeyHash == out.APIKey {
			t.Error("plaintext key must not be stored")
		}
		if stored.APIKeyHash == "" {
			t.Error("key hash must be stored")
		}
		if stored.Status != widget.StatusActive {
			t.Errorf("Status = %s, want ACTIVE", stored.Status)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc, _ := newTestUseCase()

		_, err := uc.Create(ctx, sc, widget.CreateInput{Name: "  ", AllowedDomains: []string{"a.com"}})
		if !errors.Is(err, widget.ErrNameRequired) {
			t.Errorf("blank name: got %v", err)
		}

		_, err = uc.Create(ctx, sc, widget.CreateInput{Name: "w"})
		if !errors.Is(err, widget.ErrDomainRequired) {
			t.Errorf("no domains: got %v", err)
		}

		_, err = uc.Create(ctx, sc, widget.CreateInput{Name: "w", AllowedDomains: []string{"a.com", "  "}})
		if !errors.Is(err, widget.ErrInvalidDomain) {
			t.Errorf("blank domain: got %v", err)
		}

		bad := 120.0
		_, err = uc.Create(ctx, sc, widget.CreateInput{Name: "w", AllowedDomains: []string{"a.com"}, RevenueSharePct: &bad})
		if !errors.Is(err, widget.ErrInvalidShare) {
			t.Errorf("share out of range: got %v", err)
		}
	})
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()
	owner := model.Scope{UserID: "owner"}
	intruder := model.Scope{UserID: "intruder"}

	uc, _ := newTestUseCase()
	created, err := uc.Create(ctx, owner, widget.CreateInput{Name: "w", AllowedDomains: []string{"a.com"}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created.Widget.ID

	t.Run("owner can get", func(t *testing.T) {
		if _, err := uc.Get(ctx, owner, widget.GetInput{WidgetID: id}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("other users see not found", func(t *testing.T) {
		if _, err := uc.Get(ctx, intruder, widget.GetInput{WidgetID: id}); !errors.Is(err, widget.ErrWidgetNotFound) {
			t.Errorf("get: got %v", err)
		}
		if _, err := uc.Update(ctx, intruder, widget.UpdateInput{WidgetID: id}); !errors.Is(err, widget.ErrWidgetNotFound) {
			t.Errorf("update: got %v", err)
		}
		if err := uc.Delete(ctx, intruder, widget.DeleteInput{WidgetID: id}); !errors.Is(err, widget.ErrWidgetNotFound) {
			t.Errorf("delete: got %v", err)
		}
		if _, err := uc.RotateAPIKey(ctx, intruder, widget.RotateKeyInput{WidgetID: id}); !errors.Is(err, widget.ErrWidgetNotFound) {
			t.Errorf("rotate: got %v", err)
		}
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		out, err := uc.List(ctx, intruder, widget.ListInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Widgets) != 0 {
			t.Errorf("intruder should see no widgets, got %d", len(out.Widgets))
		}
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		if _, err := uc.List(ctx, owner, widget.ListInput{Status: "PAUSED"}); !errors.Is(err, widget.ErrInvalidStatus) {
			t.Errorf("got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	uc, _ := newTestUseCase()
	created, err := uc.Create(ctx, sc, widget.CreateInput{Name: "w", AllowedDomains: []string{"a.com"}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created.Widget.ID

	t.Run("applies provided fields only", func(t *testing.T) {
		name := "renamed"
		updated, err := uc.Update(ctx, sc, widget.UpdateInput{WidgetID: id, Name: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Name != "renamed" {
			t.Errorf("Name = %s", updated.Name)
		}
		if len(updated.AllowedDomains) != 1 || updated.AllowedDomains[0] != "a.com" {
			t.Errorf("domains should be untouched: %v", updated.AllowedDomains)
		}
	})

	t.Run("rejects bad values", func(t *testing.T) {
		blank := "  "
		if _, err := uc.Update(ctx, sc, widget.UpdateInput{WidgetID: id, Name: &blank}); !errors.Is(err, widget.ErrNameRequired) {
			t.Errorf("blank name: got %v", err)
		}

		status := "PAUSED"
		if _, err := uc.Update(ctx, sc, widget.UpdateInput{WidgetID: id, Status: &status}); !errors.Is(err, widget.ErrInvalidStatus) {
			t.Errorf("bad status: got %v", err)
		}

		share := -1.0
		if _, err := uc.Update(ctx, sc, widget.UpdateInput{WidgetID: id, RevenueSharePct: &share}); !errors.Is(err, widget.ErrInvalidShare) {
			t.Errorf("bad share: got %v", err)
		}
	})
}

func TestVerifyKey(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	uc, repo := newTestUseCase()
	created, err := uc.Create(ctx, sc, widget.CreateInput{Name: "w", AllowedDomains: []string{"a.com"}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created.Widget.ID

	t.Run("valid key verifies", func(t *testing.T) {
		w, err := uc.VerifyKey(ctx, widget.VerifyKeyInput{WidgetID: id, APIKey: created.APIKey})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.ID != id {
			t.Errorf("ID = %s, want %s", w.ID, id)
		}
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		if _, err := uc.VerifyKey(ctx, widget.VerifyKeyInput{WidgetID: id, APIKey: "wk_wrong"}); !errors.Is(err, widget.ErrKeyMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("disabled widgets do not verify", func(t *testing.T) {
		repo.byID[id].Status = widget.StatusDisabled
		defer func() { repo.byID[id].Status = widget.StatusActive }()

		if _, err := uc.VerifyKey(ctx, widget.VerifyKeyInput{WidgetID: id, APIKey: created.APIKey}); !errors.Is(err, widget.ErrWidgetNotFound) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("rotation invalidates the old key", func(t *testing.T) {
		rotated, err := uc.RotateAPIKey(ctx, sc, widget.RotateKeyInput{WidgetID: id})
		if err != nil {
			t.Fatalf("rotate failed: %v", err)
		}

		if _, err := uc.VerifyKey(ctx, widget.VerifyKeyInput{WidgetID: id, APIKey: created.APIKey}); !errors.Is(err, widget.ErrKeyMismatch) {
			t.Errorf("old key: got %v", err)
		}
		if _, err := uc.VerifyKey(ctx, widget.VerifyKeyInput{WidgetID: id, APIKey: rotated.APIKey}); err != nil {
			t.Errorf("new key: got %v", err)
		}
	})
}
