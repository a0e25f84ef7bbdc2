package http

import (
	"widget-srv/internal/earnings"
)

type getEarningsReq struct {
	StartDate string
	EndDate   string
	Site      string
	Dimension string
}

func (r getEarningsReq) toInput() earnings.GetEarningsInput {
	return earnings.GetEarningsInput{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Site:      r.Site,
		Dimension: r.Dimension,
	}
}

type requestExportReq struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Site      string `json:"site,omitempty"`
}

func (r requestExportReq) toInput() earnings.RequestExportInput {
	return earnings.RequestExportInput{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Site:      r.Site,
	}
}

type getExportReq struct {
	ExportID string
}

type listExportsReq struct {
	Status string
	Limit  int
	Offset int
}

type earningsResp struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Timeline []dateStatsResp   `json:"timeline"`
	Sites    []entityStatsResp `json:"sites"`
	AdUnits  []entityStatsResp `json:"ad_units,omitempty"`

	TotalImpressions int64   `json:"total_impressions"`
	TotalRevenue     float64 `json:"total_revenue"`
	SharePercentage  float64 `json:"share_percentage"`
	UserRevenue      float64 `json:"user_revenue"`
	Cached           bool    `json:"cached"`
}

type dateStatsResp struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Revenue     float64 `json:"revenue"`
}

type entityStatsResp struct {
	Name        string  `json:"name"`
	Impressions int64   `json:"impressions"`
	Revenue     float64 `json:"revenue"`
	SharePct    float64 `json:"share_pct,omitempty"`
}

type requestExportResp struct {
	ExportID string `json:"export_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type exportResp struct {
	ID            string  `json:"id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Site          string  `json:"site,omitempty"`
	Status        string  `json:"status"`
	ErrorMessage  string  `json:"error_message,omitempty"`
	FileSizeBytes int64   `json:"file_size_bytes,omitempty"`
	RowCount      int     `json:"row_count,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type downloadResp struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
}

func (h *handler) newEarningsResp(o earnings.GetEarningsOutput) earningsResp {
	resp := earningsResp{
		StartDate:        o.StartDate,
		EndDate:          o.EndDate,
		Timeline:         make([]dateStatsResp, 0, len(o.Timeline)),
		Sites:            make([]entityStatsResp, 0, len(o.Sites)),
		TotalImpressions: o.TotalImpressions,
		TotalRevenue:     o.TotalRevenue,
		SharePercentage:  o.SharePercentage,
		UserRevenue:      o.UserRevenue,
		Cached:           o.Cached,
	}
	for _, d := range o.Timeline {
		resp.Timeline = append(resp.Timeline, dateStatsResp(d))
	}
	for _, s := range o.Sites {
		resp.Sites = append(resp.Sites, entityStatsResp(s))
	}
	for _, u := range o.AdUnits {
		resp.AdUnits = append(resp.AdUnits, entityStatsResp(u))
	}
	return resp
}

func (h *handler) newRequestExportResp(o earnings.RequestExportOutput) requestExportResp {
	return requestExportResp{
		ExportID: o.ExportID,
		Status:   o.Status,
		Message:  o.Message,
	}
}

func (h *handler) newExportResp(o earnings.ExportOutput) exportResp {
	return exportResp{
		ID:            o.ID,
		StartDate:     o.StartDate,
		EndDate:       o.EndDate,
		Site:          o.Site,
		Status:        o.Status,
		ErrorMessage:  o.ErrorMessage,
		FileSizeBytes: o.FileSizeBytes,
		RowCount:      o.RowCount,
		CompletedAt:   o.CompletedAt,
		CreatedAt:     o.CreatedAt,
	}
}

func (h *handler) newListExportsResp(outputs []earnings.ExportOutput) []exportResp {
	resps := make([]exportResp, 0, len(outputs))
	for _, o := range outputs {
		resps = append(resps, h.newExportResp(o))
	}
	return resps
}

func (h *handler) newDownloadResp(o earnings.DownloadOutput) downloadResp {
	return downloadResp{
		DownloadURL: o.DownloadURL,
		ExpiresAt:   o.ExpiresAt,
		FileName:    o.FileName,
		FileSize:    o.FileSize,
	}
}
