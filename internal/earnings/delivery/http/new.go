package http

import (
	"widget-srv/internal/earnings"
	"widget-srv/internal/middleware"
	"widget-srv/pkg/discord"
	"widget-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      earnings.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc earnings.UseCase, discord discord.IDiscord) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
