package redis

import (
	"widget-srv/internal/earnings/repository"
	"widget-srv/pkg/log"
	pkgRedis "widget-srv/pkg/redis"
)

type implRepository struct {
	redis pkgRedis.IRedis
	l     log.Logger
}

func New(redis pkgRedis.IRedis, l log.Logger) repository.CacheRepository {
	return &implRepository{
		redis: redis,
		l:     l,
	}
}
