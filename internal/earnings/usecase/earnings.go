package usecase

import (
	"context"
	"encoding/json"

	"widget-srv/internal/earnings"
	"widget-srv/internal/earnings/repository"
	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/pkg/admanager"
)

// GetEarnings computes the attributed earnings report for the caller's
// claimed sites. Results are cached per user and parameter set.
func (uc *implUseCase) GetEarnings(ctx context.Context, sc model.Scope, input earnings.GetEarningsInput) (earnings.GetEarningsOutput, error) {
	start, end, err := normalizeDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return earnings.GetEarningsOutput{}, earnings.ErrInvalidDateRange
	}

	dimension := input.Dimension
	if dimension == "" {
		dimension = earnings.DimensionSite
	}
	if dimension != earnings.DimensionSite && dimension != earnings.DimensionAdUnit {
		return earnings.GetEarningsOutput{}, earnings.ErrInvalidDimension
	}

	siteFilter := normalizeHost(input.Site)

	cacheKey := repository.CacheKeyOptions{
		UserID:    sc.UserID,
		StartDate: start,
		EndDate:   end,
		Site:      siteFilter,
		Dimension: dimension,
	}
	if data, err := uc.cache.GetReport(ctx, cacheKey); err == nil {
		var out earnings.GetEarningsOutput
		if err := json.Unmarshal(data, &out); err == nil {
			out.Cached = true
			return out, nil
		}
		uc.l.Warnf(ctx, "earnings.usecase.GetEarnings: dropping undecodable cache entry: %v", err)
	} else if err != repository.ErrCacheMiss {
		uc.l.Warnf(ctx, "earnings.usecase.GetEarnings: cache read failed: %v", err)
	}

	out, err := uc.computeEarnings(ctx, sc, start, end, dimension, siteFilter)
	if err != nil {
		return earnings.GetEarningsOutput{}, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := uc.cache.SaveReport(ctx, repository.SaveReportOptions{
			Key:  cacheKey,
			Data: data,
			TTL:  uc.config.CacheTTL,
		}); err != nil {
			uc.l.Warnf(ctx, "earnings.usecase.GetEarnings: cache write failed: %v", err)
		}
	}

	return out, nil
}

// computeEarnings runs the reporting pipeline and applies attribution.
// The site filter must already be normalized; it is authorized against
// the claimed set before any remote call is made.
func (uc *implUseCase) computeEarnings(ctx context.Context, sc model.Scope, start, end, dimension, siteFilter string) (earnings.GetEarningsOutput, error) {
	listOut, err := uc.widgetUC.List(ctx, sc, widget.ListInput{Status: widget.StatusActive})
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.computeEarnings: Failed to list widgets: %v", err)
		return earnings.GetEarningsOutput{}, earnings.ErrReportFailed
	}
	allowed := buildAllowedURLMap(listOut.Widgets)

	if siteFilter != "" {
		if _, ok := allowed[siteFilter]; !ok {
			return earnings.GetEarningsOutput{}, earnings.ErrSiteNotAllowed
		}
	}

	entityDimension := admanager.DimensionSite
	if dimension == earnings.DimensionAdUnit {
		entityDimension = admanager.DimensionAdUnit
	}

	req := admanager.ReportRequest{
		StartDate:       start,
		EndDate:         end,
		EntityDimension: entityDimension,
	}
	if siteFilter != "" {
		// Restrict aggregation to the requested site so the timeline
		// and totals never carry other sites' figures.
		req.EntityMatch = func(entity string) bool {
			return normalizeHost(entity) == siteFilter
		}
	}

	report, err := uc.adManager.Report(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "earnings.usecase.computeEarnings: Report pipeline failed: %v", err)
		return earnings.GetEarningsOutput{}, err
	}

	attr := attributeRevenue(report, allowed, siteFilter)

	out := earnings.GetEarningsOutput{
		StartDate:        start,
		EndDate:          end,
		Timeline:         buildTimeline(report),
		Sites:            attr.Sites,
		TotalImpressions: report.TotalImpressions,
		TotalRevenue:     round2(report.TotalRevenue),
		SharePercentage:  attr.SharePercentage,
		UserRevenue:      attr.UserRevenue,
	}
	if dimension == earnings.DimensionAdUnit {
		out.AdUnits = buildAdUnits(report)
	}
	return out, nil
}
