package usecase

import (
	"context"
	"errors"
	"testing"

	"widget-srv/internal/earnings"
	"widget-srv/internal/model"
	"widget-srv/pkg/admanager"
	"widget-srv/pkg/log"
)

type testEnv struct {
	uc        *implUseCase
	repo      *fakeExportRepo
	cache     *fakeCache
	widgets   *fakeWidgetUC
	adManager *fakeAdManager
	minio     *fakeMinio
	producer  *fakeProducer
}

func newTestEnv(widgets []model.Widget, report *admanager.Report) *testEnv {
	env := &testEnv{
		repo:      newFakeExportRepo(),
		cache:     newFakeCache(),
		widgets:   &fakeWidgetUC{widgets: widgets},
		adManager: &fakeAdManager{report: report},
		minio:     newFakeMinio(),
		producer:  &fakeProducer{},
	}
	env.uc = New(env.repo, env.cache, env.widgets, env.adManager, env.minio, env.producer, log.NewNop(), Config{}).(*implUseCase)
	return env
}

func testWidgets() []model.Widget {
	return []model.Widget{
		{
			SiteURL:         "https://www.site-a.com",
			RevenueSharePct: share(40),
			Status:          "ACTIVE",
		},
		{
			SiteURL:         "site-b.com",
			RevenueSharePct: share(60),
			Status:          "ACTIVE",
		},
	}
}

func testReport() *admanager.Report {
	return &admanager.Report{
		ByDate: map[string]*admanager.Stats{
			"2024-01-02": {Impressions: 2000, Revenue: 300},
			"2024-01-01": {Impressions: 1000, Revenue: 100},
		},
		BySite: map[string]*admanager.Stats{
			"site-a.com": {Impressions: 1000, Revenue: 100},
			"site-b.com": {Impressions: 2000, Revenue: 300},
		},
		TotalImpressions: 3000,
		TotalRevenue:     400,
		RowCount:         4,
	}
}

func TestGetEarnings(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("computes attributed earnings", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())

		out, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Cached {
			t.Error("first call should not be cached")
		}
		if out.SharePercentage != 55 {
			t.Errorf("SharePercentage = %v, want 55", out.SharePercentage)
		}
		if out.UserRevenue != 220 {
			t.Errorf("UserRevenue = %v, want 220", out.UserRevenue)
		}
		if out.TotalImpressions != 3000 || out.TotalRevenue != 400 {
			t.Errorf("totals = %d / %v", out.TotalImpressions, out.TotalRevenue)
		}
		if len(out.Timeline) != 2 || out.Timeline[0].Date != "2024-01-01" {
			t.Errorf("unexpected timeline: %+v", out.Timeline)
		}
		if len(out.AdUnits) != 0 {
			t.Errorf("site dimension should not include ad units: %+v", out.AdUnits)
		}
		if env.cache.saves != 1 {
			t.Errorf("expected 1 cache save, got %d", env.cache.saves)
		}
	})

	t.Run("serves repeat requests from the cache", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())
		input := earnings.GetEarningsInput{StartDate: "2024-01-01", EndDate: "2024-01-31"}

		if _, err := env.uc.GetEarnings(ctx, sc, input); err != nil {
			t.Fatalf("first call failed: %v", err)
		}
		out, err := env.uc.GetEarnings(ctx, sc, input)
		if err != nil {
			t.Fatalf("second call failed: %v", err)
		}

		if !out.Cached {
			t.Error("second call should be served from cache")
		}
		if out.UserRevenue != 220 {
			t.Errorf("cached UserRevenue = %v, want 220", out.UserRevenue)
		}
		if got := env.adManager.callCount(); got != 1 {
			t.Errorf("report pipeline ran %d times, want 1", got)
		}
	})

	t.Run("rejects a site the caller has not claimed", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())

		_, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Site:      "stranger.com",
		})
		if !errors.Is(err, earnings.ErrSiteNotAllowed) {
			t.Fatalf("expected ErrSiteNotAllowed, got %v", err)
		}
		if got := env.adManager.callCount(); got != 0 {
			t.Errorf("unauthorized site must not reach the pipeline, got %d calls", got)
		}
	})

	t.Run("accepts a claimed site in URL form", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())

		out, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Site:      "https://www.site-b.com/dashboard",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Sites) != 1 || out.Sites[0].Name != "site-b.com" {
			t.Errorf("unexpected sites: %+v", out.Sites)
		}
		if out.UserRevenue != 180 {
			t.Errorf("UserRevenue = %v, want 180", out.UserRevenue)
		}
	})

	t.Run("site filter restricts the report aggregation", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())

		_, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Site:      "site-b.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := env.adManager.lastRequest()
		if req.EntityMatch == nil {
			t.Fatal("expected EntityMatch on the report request")
		}
		// Matching is on normalized hostnames, so raw variants of the
		// requested site pass and every other site is excluded.
		for raw, want := range map[string]bool{
			"site-b.com":                 true,
			"www.site-b.com":             true,
			"https://site-b.com/article": true,
			"site-a.com":                 false,
			"stranger.com":               false,
			"":                           false,
		} {
			if got := req.EntityMatch(raw); got != want {
				t.Errorf("EntityMatch(%q) = %v, want %v", raw, got, want)
			}
		}
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		env := newTestEnv(testWidgets(), testReport())

		_, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-02-01",
			EndDate:   "2024-01-01",
		})
		if !errors.Is(err, earnings.ErrInvalidDateRange) {
			t.Errorf("inverted range: expected ErrInvalidDateRange, got %v", err)
		}

		_, err = env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Dimension: "campaign",
		})
		if !errors.Is(err, earnings.ErrInvalidDimension) {
			t.Errorf("bad dimension: expected ErrInvalidDimension, got %v", err)
		}
	})

	t.Run("ad unit dimension includes the unit breakdown", func(t *testing.T) {
		report := testReport()
		report.BySite = nil
		report.ByAdUnit = map[string]*admanager.Stats{
			"header":  {Impressions: 2000, Revenue: 300},
			"sidebar": {Impressions: 1000, Revenue: 100},
		}
		env := newTestEnv(testWidgets(), report)

		out, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			Dimension: earnings.DimensionAdUnit,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.AdUnits) != 2 || out.AdUnits[0].Name != "header" {
			t.Errorf("unexpected ad units: %+v", out.AdUnits)
		}
		// No claimed site carries revenue here, so the default applies.
		if out.SharePercentage != earnings.DefaultSharePct {
			t.Errorf("SharePercentage = %v, want %v", out.SharePercentage, earnings.DefaultSharePct)
		}
		if out.UserRevenue != 200 {
			t.Errorf("UserRevenue = %v, want 200", out.UserRevenue)
		}

		req := env.adManager.requests[0]
		if req.EntityDimension != admanager.DimensionAdUnit {
			t.Errorf("EntityDimension = %s, want %s", req.EntityDimension, admanager.DimensionAdUnit)
		}
	})

	t.Run("pipeline failure surfaces to the caller", func(t *testing.T) {
		env := newTestEnv(testWidgets(), nil)
		env.adManager.err = admanager.ErrPollTimeout

		_, err := env.uc.GetEarnings(ctx, sc, earnings.GetEarningsInput{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		})
		if !errors.Is(err, admanager.ErrPollTimeout) {
			t.Fatalf("expected ErrPollTimeout, got %v", err)
		}
	})
}
