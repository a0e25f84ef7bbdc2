package http

import (
	"encoding/json"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
)

type createWidgetReq struct {
	Name            string          `json:"name" binding:"required"`
	SiteURL         string          `json:"site_url,omitempty"`
	AllowedDomains  []string        `json:"allowed_domains" binding:"required"`
	RevenueSharePct *float64        `json:"revenue_share_pct,omitempty"`
	Theme           json.RawMessage `json:"theme,omitempty" swaggertype:"object"`
}

func (r createWidgetReq) toInput() widget.CreateInput {
	return widget.CreateInput{
		Name:            r.Name,
		SiteURL:         r.SiteURL,
		AllowedDomains:  r.AllowedDomains,
		RevenueSharePct: r.RevenueSharePct,
		Theme:           r.Theme,
	}
}

type updateWidgetReq struct {
	WidgetID        string          `json:"-"`
	Name            *string         `json:"name,omitempty"`
	SiteURL         *string         `json:"site_url,omitempty"`
	AllowedDomains  []string        `json:"allowed_domains,omitempty"`
	RevenueSharePct *float64        `json:"revenue_share_pct,omitempty"`
	Theme           json.RawMessage `json:"theme,omitempty" swaggertype:"object"`
	Status          *string         `json:"status,omitempty"`
}

func (r updateWidgetReq) toInput() widget.UpdateInput {
	return widget.UpdateInput{
		WidgetID:        r.WidgetID,
		Name:            r.Name,
		SiteURL:         r.SiteURL,
		AllowedDomains:  r.AllowedDomains,
		RevenueSharePct: r.RevenueSharePct,
		Theme:           r.Theme,
		Status:          r.Status,
	}
}

type verifyKeyReq struct {
	WidgetID string `json:"widget_id" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

type widgetResp struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	SiteURL         string      `json:"site_url,omitempty"`
	AllowedDomains  []string    `json:"allowed_domains"`
	RevenueSharePct *float64    `json:"revenue_share_pct,omitempty"`
	Theme           interface{} `json:"theme,omitempty" swaggertype:"object"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
}

type createWidgetResp struct {
	Widget widgetResp `json:"widget"`
	// APIKey is returned exactly once at creation time.
	APIKey string `json:"api_key"`
}

type rotateKeyResp struct {
	APIKey string `json:"api_key"`
}

// embedConfigResp is what the embed bootstrap needs: appearance only,
// never revenue settings or the key hash.
type embedConfigResp struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	AllowedDomains []string    `json:"allowed_domains"`
	Theme          interface{} `json:"theme,omitempty" swaggertype:"object"`
}

func (h *handler) newWidgetResp(w model.Widget) widgetResp {
	resp := widgetResp{
		ID:              w.ID,
		Name:            w.Name,
		SiteURL:         w.SiteURL,
		AllowedDomains:  w.AllowedDomains,
		RevenueSharePct: w.RevenueSharePct,
		Status:          w.Status,
		CreatedAt:       w.CreatedAt.Format(timeFormat),
		UpdatedAt:       w.UpdatedAt.Format(timeFormat),
	}
	if len(w.Theme) > 0 {
		var theme interface{}
		if err := json.Unmarshal(w.Theme, &theme); err == nil {
			resp.Theme = theme
		}
	}
	return resp
}

func (h *handler) newListWidgetsResp(widgets []model.Widget) []widgetResp {
	resps := make([]widgetResp, 0, len(widgets))
	for _, w := range widgets {
		resps = append(resps, h.newWidgetResp(w))
	}
	return resps
}

func (h *handler) newEmbedConfigResp(w model.Widget) embedConfigResp {
	resp := embedConfigResp{
		ID:             w.ID,
		Name:           w.Name,
		AllowedDomains: w.AllowedDomains,
	}
	if len(w.Theme) > 0 {
		var theme interface{}
		if err := json.Unmarshal(w.Theme, &theme); err == nil {
			resp.Theme = theme
		}
	}
	return resp
}
