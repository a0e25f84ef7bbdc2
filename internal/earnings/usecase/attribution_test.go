package usecase

import (
	"testing"

	"widget-srv/pkg/admanager"
)

func TestAttributeRevenue(t *testing.T) {
	t.Run("revenue weighted share across claimed sites", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"site-a.com": {Impressions: 1000, Revenue: 100},
				"site-b.com": {Impressions: 2000, Revenue: 300},
			},
			TotalRevenue: 400,
		}
		allowed := map[string]float64{"site-a.com": 40, "site-b.com": 60}

		attr := attributeRevenue(report, allowed, "")

		// (100*40 + 300*60) / 400 = 55
		if attr.SharePercentage != 55 {
			t.Errorf("SharePercentage = %v, want 55", attr.SharePercentage)
		}
		// 400 * 55% = 220
		if attr.UserRevenue != 220 {
			t.Errorf("UserRevenue = %v, want 220", attr.UserRevenue)
		}
		if len(attr.Sites) != 2 {
			t.Fatalf("expected 2 sites, got %d", len(attr.Sites))
		}
		// Sorted by impressions, highest first.
		if attr.Sites[0].Name != "site-b.com" || attr.Sites[1].Name != "site-a.com" {
			t.Errorf("unexpected site order: %v, %v", attr.Sites[0].Name, attr.Sites[1].Name)
		}
		if attr.Sites[0].SharePct != 60 {
			t.Errorf("site-b SharePct = %v, want 60", attr.Sites[0].SharePct)
		}
	})

	t.Run("unclaimed sites are excluded", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"mine.com":     {Revenue: 100},
				"stranger.com": {Revenue: 900},
			},
			TotalRevenue: 1000,
		}
		allowed := map[string]float64{"mine.com": 50}

		attr := attributeRevenue(report, allowed, "")

		if len(attr.Sites) != 1 || attr.Sites[0].Name != "mine.com" {
			t.Fatalf("expected only mine.com, got %v", attr.Sites)
		}
		if attr.UserRevenue != 50 {
			t.Errorf("UserRevenue = %v, want 50", attr.UserRevenue)
		}
	})

	t.Run("raw names normalizing to one host merge", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"www.merged.com":          {Impressions: 10, Revenue: 1},
				"https://merged.com/page": {Impressions: 20, Revenue: 2},
			},
			TotalRevenue: 3,
		}
		allowed := map[string]float64{"merged.com": 50}

		attr := attributeRevenue(report, allowed, "")

		if len(attr.Sites) != 1 {
			t.Fatalf("expected 1 merged site, got %v", attr.Sites)
		}
		if attr.Sites[0].Impressions != 30 || attr.Sites[0].Revenue != 3 {
			t.Errorf("merged bucket = %+v", attr.Sites[0])
		}
	})

	t.Run("site filter narrows the basis", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"site-a.com": {Revenue: 100},
				"site-b.com": {Revenue: 300},
			},
			TotalRevenue: 400,
		}
		allowed := map[string]float64{"site-a.com": 40, "site-b.com": 60}

		attr := attributeRevenue(report, allowed, "site-b.com")

		if len(attr.Sites) != 1 || attr.Sites[0].Name != "site-b.com" {
			t.Fatalf("expected only site-b.com, got %v", attr.Sites)
		}
		if attr.SharePercentage != 60 {
			t.Errorf("SharePercentage = %v, want 60", attr.SharePercentage)
		}
		if attr.UserRevenue != 180 {
			t.Errorf("UserRevenue = %v, want 180", attr.UserRevenue)
		}
	})

	t.Run("filtered site without revenue keeps its mapped share", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"stranger.com": {Revenue: 900},
			},
			TotalRevenue: 900,
		}
		allowed := map[string]float64{"mysite.com": 70}

		attr := attributeRevenue(report, allowed, "mysite.com")

		if attr.SharePercentage != 70 {
			t.Errorf("SharePercentage = %v, want 70", attr.SharePercentage)
		}
		// Nothing earned on the filtered site, so nothing is paid out.
		if attr.UserRevenue != 0 {
			t.Errorf("UserRevenue = %v, want 0", attr.UserRevenue)
		}
		if len(attr.Sites) != 0 {
			t.Errorf("expected no sites, got %v", attr.Sites)
		}
	})

	t.Run("per-site revenue is rounded for output", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"mine.com": {Revenue: 1.23456},
			},
			TotalRevenue: 1.23456,
		}
		allowed := map[string]float64{"mine.com": 50}

		attr := attributeRevenue(report, allowed, "")

		if attr.Sites[0].Revenue != 1.23 {
			t.Errorf("Sites[0].Revenue = %v, want 1.23", attr.Sites[0].Revenue)
		}
	})

	t.Run("no claimed revenue falls back to the default share on the gross total", func(t *testing.T) {
		report := &admanager.Report{
			BySite: map[string]*admanager.Stats{
				"stranger.com": {Revenue: 80},
			},
			TotalRevenue: 80,
		}

		attr := attributeRevenue(report, map[string]float64{}, "")

		if attr.SharePercentage != 50 {
			t.Errorf("SharePercentage = %v, want default 50", attr.SharePercentage)
		}
		if attr.UserRevenue != 40 {
			t.Errorf("UserRevenue = %v, want 40", attr.UserRevenue)
		}
		if len(attr.Sites) != 0 {
			t.Errorf("expected no sites, got %v", attr.Sites)
		}
	})
}

func TestBuildTimeline(t *testing.T) {
	report := &admanager.Report{
		ByDate: map[string]*admanager.Stats{
			"2024-01-03": {Impressions: 3, Revenue: 0.3},
			"2024-01-01": {Impressions: 1, Revenue: 0.123456},
			"2024-01-02": {Impressions: 2, Revenue: 0.2},
		},
	}

	timeline := buildTimeline(report)

	if len(timeline) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(timeline))
	}
	for i, want := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if timeline[i].Date != want {
			t.Errorf("timeline[%d].Date = %s, want %s", i, timeline[i].Date, want)
		}
	}
	if timeline[0].Revenue != 0.12 {
		t.Errorf("timeline[0].Revenue = %v, want 0.12", timeline[0].Revenue)
	}
}

func TestBuildAdUnits(t *testing.T) {
	report := &admanager.Report{
		ByAdUnit: map[string]*admanager.Stats{
			"sidebar": {Impressions: 10, Revenue: 1},
			"header":  {Impressions: 50, Revenue: 5},
			"footer":  {Impressions: 10, Revenue: 1},
		},
	}

	units := buildAdUnits(report)

	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Name != "header" {
		t.Errorf("units[0] = %s, want header", units[0].Name)
	}
	// Ties break on name.
	if units[1].Name != "footer" || units[2].Name != "sidebar" {
		t.Errorf("tie order = %s, %s", units[1].Name, units[2].Name)
	}
}
