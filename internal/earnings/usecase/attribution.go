package usecase

import (
	"sort"

	"widget-srv/internal/earnings"
	"widget-srv/pkg/admanager"
)

// attribution is the result of applying the user's claimed hostnames to
// an aggregated report.
type attribution struct {
	Sites           []earnings.EntityStats
	SharePercentage float64
	UserRevenue     float64
}

// attributeRevenue restricts the report's site buckets to the claimed
// hostnames and computes the revenue-weighted share across them. Raw
// site names that normalize to the same hostname merge into one bucket.
// With a site filter, the share is exactly that site's mapped value and
// the payout comes from its revenue alone, even when that revenue is
// zero. Without a filter, when no claimed site carries revenue the
// platform default share applies to the report total.
func attributeRevenue(report *admanager.Report, allowed map[string]float64, siteFilter string) attribution {
	type bucket struct {
		impressions int64
		revenue     float64
		share       float64
	}
	buckets := make(map[string]*bucket)

	for raw, stats := range report.BySite {
		host := normalizeHost(raw)
		share, ok := allowed[host]
		if !ok {
			continue
		}
		if siteFilter != "" && host != siteFilter {
			continue
		}
		b, ok := buckets[host]
		if !ok {
			b = &bucket{share: share}
			buckets[host] = b
		}
		b.impressions += stats.Impressions
		b.revenue += stats.Revenue
	}

	var weighted, basis float64
	sites := make([]earnings.EntityStats, 0, len(buckets))
	for host, b := range buckets {
		weighted += b.revenue * b.share
		basis += b.revenue
		sites = append(sites, earnings.EntityStats{
			Name:        host,
			Impressions: b.impressions,
			Revenue:     round2(b.revenue),
			SharePct:    b.share,
		})
	}

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Impressions != sites[j].Impressions {
			return sites[i].Impressions > sites[j].Impressions
		}
		return sites[i].Name < sites[j].Name
	})

	sharePct := earnings.DefaultSharePct
	userRevenue := round2(report.TotalRevenue * sharePct / 100)
	switch {
	case siteFilter != "":
		sharePct = allowed[siteFilter]
		userRevenue = round2(basis * sharePct / 100)
	case basis > 0:
		sharePct = weighted / basis
		userRevenue = round2(basis * sharePct / 100)
	}

	return attribution{
		Sites:           sites,
		SharePercentage: sharePct,
		UserRevenue:     userRevenue,
	}
}

// buildTimeline orders per-date buckets ascending by date.
func buildTimeline(report *admanager.Report) []earnings.DateStats {
	timeline := make([]earnings.DateStats, 0, len(report.ByDate))
	for date, stats := range report.ByDate {
		timeline = append(timeline, earnings.DateStats{
			Date:        date,
			Impressions: stats.Impressions,
			Revenue:     round2(stats.Revenue),
		})
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })
	return timeline
}

// buildAdUnits orders ad unit buckets by impressions, highest first.
func buildAdUnits(report *admanager.Report) []earnings.EntityStats {
	units := make([]earnings.EntityStats, 0, len(report.ByAdUnit))
	for name, stats := range report.ByAdUnit {
		units = append(units, earnings.EntityStats{
			Name:        name,
			Impressions: stats.Impressions,
			Revenue:     round2(stats.Revenue),
		})
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].Impressions != units[j].Impressions {
			return units[i].Impressions > units[j].Impressions
		}
		return units[i].Name < units[j].Name
	})
	return units
}
