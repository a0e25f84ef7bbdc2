package http

import (
	"widget-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.Auth())
	{
		api.GET("/earnings", h.GetEarnings)
		api.POST("/earnings/exports", h.RequestExport)
		api.GET("/earnings/exports", h.ListExports)
		api.GET("/earnings/exports/:export_id", h.GetExport)
		api.GET("/earnings/exports/:export_id/download", h.DownloadExport)
	}
}
