package usecase

import (
	"widget-srv/internal/earnings"
	"widget-srv/internal/model"
)

// buildAllowedURLMap folds the user's widgets into hostname -> share
// percentage. When two widgets claim the same hostname the higher share
// wins. A widget without a configured share uses the platform default.
func buildAllowedURLMap(widgets []model.Widget) map[string]float64 {
	allowed := make(map[string]float64)

	claim := func(raw string, share float64) {
		host := normalizeHost(raw)
		if host == "" {
			return
		}
		if cur, ok := allowed[host]; !ok || share > cur {
			allowed[host] = share
		}
	}

	for _, w := range widgets {
		share := earnings.DefaultSharePct
		if w.RevenueSharePct != nil {
			share = *w.RevenueSharePct
		}

		claim(w.SiteURL, share)
		for _, domain := range w.AllowedDomains {
			claim(domain, share)
		}
	}

	return allowed
}
