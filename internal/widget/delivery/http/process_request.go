package http

import (
	"time"

	"widget-srv/internal/model"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const timeFormat = time.RFC3339

func (h *handler) processCreateWidgetRequest(c *gin.Context) (createWidgetReq, model.Scope, error) {
	var req createWidgetReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.processCreateWidgetRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processUpdateWidgetRequest(c *gin.Context) (updateWidgetReq, model.Scope, error) {
	var req updateWidgetReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.processUpdateWidgetRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, err
	}
	req.WidgetID = c.Param("widget_id")

	sc := scope.GetScopeFromContext(c.Request.Context())
	return req, sc, nil
}

func (h *handler) processWidgetIDRequest(c *gin.Context) (string, model.Scope) {
	return c.Param("widget_id"), scope.GetScopeFromContext(c.Request.Context())
}

func (h *handler) processVerifyKeyRequest(c *gin.Context) (verifyKeyReq, error) {
	var req verifyKeyReq

	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "widget.delivery.http.processVerifyKeyRequest: ShouldBindJSON failed: %v", err)
		return req, err
	}
	return req, nil
}
