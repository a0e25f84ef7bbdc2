package http

import (
	"strconv"

	"widget-srv/internal/model"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processGetEarningsRequest(c *gin.Context) (getEarningsReq, model.Scope, error) {
	req := getEarningsReq{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Site:      c.Query("site"),
		Dimension: c.Query("dimension"),
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processRequestExportRequest(c *gin.Context) (requestExportReq, model.Scope, error) {
	var req requestExportReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "earnings.delivery.http.processRequestExportRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processGetExportRequest(c *gin.Context) (getExportReq, model.Scope, error) {
	req := getExportReq{
		ExportID: c.Param("export_id"),
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processListExportsRequest(c *gin.Context) (listExportsReq, model.Scope, error) {
	req := listExportsReq{
		Status: c.Query("status"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Offset = n
		}
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}
