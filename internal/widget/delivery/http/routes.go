package http

import (
	"widget-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1/widgets")
	api.Use(mw.Auth())
	{
		api.POST("", h.CreateWidget)
		api.GET("", h.ListWidgets)
		api.GET("/:widget_id", h.GetWidget)
		api.PUT("/:widget_id", h.UpdateWidget)
		api.DELETE("/:widget_id", h.DeleteWidget)
		api.POST("/:widget_id/rotate-key", h.RotateAPIKey)
	}

	// Key verification is unauthenticated: the embed script calls it
	// before any session exists.
	r.POST("/api/v1/widgets/verify", h.VerifyKey)
}
