package http

import (
	"widget-srv/internal/middleware"
	"widget-srv/internal/widget"
	"widget-srv/pkg/discord"
	"widget-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      widget.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc widget.UseCase, discord discord.IDiscord) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
