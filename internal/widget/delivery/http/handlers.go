package http

import (
	"widget-srv/internal/widget"
	"widget-srv/pkg/response"
	"widget-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// @Summary Create a widget
// @Description Create a widget and issue its API key. The key is returned once and never stored in plaintext
// @Tags Widget
// @Accept json
// @Produce json
// @Param body body createWidgetReq true "Widget creation request"
// @Success 200 {object} createWidgetResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/widgets [post]
func (h *handler) CreateWidget(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateWidgetRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.CreateWidget: processCreateWidgetRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.CreateWidget: usecase Create failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, createWidgetResp{
		Widget: h.newWidgetResp(o.Widget),
		APIKey: o.APIKey,
	})
}

// @Summary Get a widget
// @Tags Widget
// @Produce json
// @Param widget_id path string true "Widget ID"
// @Success 200 {object} widgetResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/{widget_id} [get]
func (h *handler) GetWidget(c *gin.Context) {
	ctx := c.Request.Context()

	widgetID, sc := h.processWidgetIDRequest(c)

	o, err := h.uc.Get(ctx, sc, widget.GetInput{WidgetID: widgetID})
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.GetWidget: usecase Get failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newWidgetResp(o))
}

// @Summary List widgets
// @Tags Widget
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} widgetResp
// @Failure 500 {object} response.Resp
// @Router /api/v1/widgets [get]
func (h *handler) ListWidgets(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	o, err := h.uc.List(ctx, sc, widget.ListInput{Status: c.Query("status")})
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.ListWidgets: usecase List failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newListWidgetsResp(o.Widgets))
}

// @Summary Update a widget
// @Tags Widget
// @Accept json
// @Produce json
// @Param widget_id path string true "Widget ID"
// @Param body body updateWidgetReq true "Fields to update"
// @Success 200 {object} widgetResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/{widget_id} [put]
func (h *handler) UpdateWidget(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUpdateWidgetRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.UpdateWidget: processUpdateWidgetRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.Update(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.UpdateWidget: usecase Update failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newWidgetResp(o))
}

// @Summary Delete a widget
// @Tags Widget
// @Produce json
// @Param widget_id path string true "Widget ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/{widget_id} [delete]
func (h *handler) DeleteWidget(c *gin.Context) {
	ctx := c.Request.Context()

	widgetID, sc := h.processWidgetIDRequest(c)

	if err := h.uc.Delete(ctx, sc, widget.DeleteInput{WidgetID: widgetID}); err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.DeleteWidget: usecase Delete failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// @Summary Rotate a widget's API key
// @Description Replace the API key. The old key stops working immediately
// @Tags Widget
// @Produce json
// @Param widget_id path string true "Widget ID"
// @Success 200 {object} rotateKeyResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/{widget_id}/rotate-key [post]
func (h *handler) RotateAPIKey(c *gin.Context) {
	ctx := c.Request.Context()

	widgetID, sc := h.processWidgetIDRequest(c)

	o, err := h.uc.RotateAPIKey(ctx, sc, widget.RotateKeyInput{WidgetID: widgetID})
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.RotateAPIKey: usecase RotateAPIKey failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, rotateKeyResp{APIKey: o.APIKey})
}

// @Summary Verify a widget API key
// @Description Embed bootstrap: validate the key and return the public widget config
// @Tags Widget
// @Accept json
// @Produce json
// @Param body body verifyKeyReq true "Key verification request"
// @Success 200 {object} embedConfigResp
// @Failure 401 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/widgets/verify [post]
func (h *handler) VerifyKey(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processVerifyKeyRequest(c)
	if err != nil {
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.VerifyKey(ctx, widget.VerifyKeyInput{
		WidgetID: req.WidgetID,
		APIKey:   req.APIKey,
	})
	if err != nil {
		h.l.Errorf(ctx, "widget.delivery.http.VerifyKey: usecase VerifyKey failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newEmbedConfigResp(o))
}
