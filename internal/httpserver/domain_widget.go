package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"widget-srv/internal/middleware"
	widgetHTTP "widget-srv/internal/widget/delivery/http"
	widgetPostgre "widget-srv/internal/widget/repository/postgre"
	widgetUsecase "widget-srv/internal/widget/usecase"
)

func (srv *HTTPServer) setupWidgetDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := widgetPostgre.New(srv.postgresDB, srv.l)

	srv.widgetUC = widgetUsecase.New(repo, srv.l)

	handler := widgetHTTP.New(srv.l, srv.widgetUC, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Widget domain registered")
	return nil
}
