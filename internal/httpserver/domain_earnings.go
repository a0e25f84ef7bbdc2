package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	earningsHTTP "widget-srv/internal/earnings/delivery/http"
	earningsPostgre "widget-srv/internal/earnings/repository/postgre"
	earningsRedis "widget-srv/internal/earnings/repository/redis"
	earningsUsecase "widget-srv/internal/earnings/usecase"
	"widget-srv/internal/middleware"
	"widget-srv/pkg/admanager"
	"widget-srv/pkg/googleauth"
)

func (srv *HTTPServer) setupEarningsDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	adCfg := srv.config.AdManager

	auth, err := googleauth.New(googleauth.Config{
		Credentials: adCfg.Credentials,
		Scope:       admanager.OAuthScope,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize report credentials: %w", err)
	}

	adManager := admanager.New(srv.l, admanager.Config{
		NetworkCode:     adCfg.NetworkCode,
		Auth:            auth,
		LineItemID:      adCfg.LineItemID,
		MaxPollAttempts: adCfg.PollMaxAttempts,
		PollInterval:    time.Duration(adCfg.PollIntervalMs) * time.Millisecond,
	})

	repo := earningsPostgre.New(srv.postgresDB, srv.l)
	cache := earningsRedis.New(srv.redisClient, srv.l)

	uc := earningsUsecase.New(repo, cache, srv.widgetUC, adManager, srv.minio, srv.producer, srv.l, earningsUsecase.Config{
		ExportBucket: srv.config.MinIO.Bucket,
	})

	handler := earningsHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Earnings domain registered")
	return nil
}
