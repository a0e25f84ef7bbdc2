package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"widget-srv/internal/earnings/repository"
)

const Prefix = "earnings:"

// defaultTTL bounds how long a computed earnings report stays warm.
const defaultTTL = 10 * time.Minute

func cacheKey(opts repository.CacheKeyOptions) string {
	return fmt.Sprintf("%s%s:%s:%s:%s:%s", Prefix, opts.UserID, opts.StartDate, opts.EndDate, opts.Site, opts.Dimension)
}

func (r *implRepository) GetReport(ctx context.Context, opts repository.CacheKeyOptions) ([]byte, error) {
	data, err := r.redis.GetClient().Get(ctx, cacheKey(opts)).Bytes()
	if err == goredis.Nil {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		r.l.Errorf(ctx, "earnings.repository.redis.GetReport: %v", err)
		return nil, err
	}
	return data, nil
}

func (r *implRepository) SaveReport(ctx context.Context, opts repository.SaveReportOptions) error {
	ttl := opts.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	if err := r.redis.GetClient().Set(ctx, cacheKey(opts.Key), opts.Data, ttl).Err(); err != nil {
		r.l.Errorf(ctx, "earnings.repository.redis.SaveReport: %v", err)
		return err
	}
	return nil
}
