package http

import (
	"widget-srv/internal/earnings"
	"widget-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Get attributed earnings
// @Description Run the revenue report for a date range and attribute earnings to the caller's claimed sites
// @Tags Earnings
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param site query string false "Restrict to one claimed hostname"
// @Param dimension query string false "Entity breakdown: site or ad_unit"
// @Success 200 {object} earningsResp
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/earnings [get]
func (h *handler) GetEarnings(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGetEarningsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.GetEarnings: processGetEarningsRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.GetEarnings(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.GetEarnings: usecase GetEarnings failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newEarningsResp(o))
}

// @Summary Request a CSV export
// @Description Create an async CSV export of an earnings report
// @Tags Earnings
// @Accept json
// @Produce json
// @Param body body requestExportReq true "Export request"
// @Success 200 {object} requestExportResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/earnings/exports [post]
func (h *handler) RequestExport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processRequestExportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.RequestExport: processRequestExportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.RequestExport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.RequestExport: usecase RequestExport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newRequestExportResp(o))
}

// @Summary Get export status
// @Description Return the current status and metadata of an export
// @Tags Earnings
// @Produce json
// @Param export_id path string true "Export ID"
// @Success 200 {object} exportResp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/earnings/exports/{export_id} [get]
func (h *handler) GetExport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGetExportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.GetExport: processGetExportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.GetExport(ctx, sc, earnings.GetExportInput{ExportID: req.ExportID})
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.GetExport: usecase GetExport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newExportResp(o))
}

// @Summary List exports
// @Description List the caller's exports, newest first
// @Tags Earnings
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} exportResp
// @Failure 500 {object} response.Resp
// @Router /api/v1/earnings/exports [get]
func (h *handler) ListExports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListExportsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.ListExports: processListExportsRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.ListExports(ctx, sc, earnings.ListExportsInput{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.ListExports: usecase ListExports failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newListExportsResp(o))
}

// @Summary Download export file
// @Description Generate a presigned download URL for a completed export
// @Tags Earnings
// @Produce json
// @Param export_id path string true "Export ID"
// @Success 200 {object} downloadResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/earnings/exports/{export_id}/download [get]
func (h *handler) DownloadExport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGetExportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.DownloadExport: processGetExportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.DownloadExport(ctx, sc, earnings.DownloadExportInput{ExportID: req.ExportID})
	if err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.DownloadExport: usecase DownloadExport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newDownloadResp(o))
}
