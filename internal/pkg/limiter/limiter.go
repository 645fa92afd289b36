package limiter

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limited")

type LimiterRedis struct {
	instance *redis_rate.Limiter
	prefix   string
}

func NewLimiterRedis(client redis.UniversalClient, prefix string) *LimiterRedis {
	return &LimiterRedis{redis_rate.NewLimiter(client), prefix}
}

func (l *LimiterRedis) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	res, err := l.instance.Allow(ctx, fmt.Sprintf("%s:%s", l.prefix, key), limit)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	if res.Allowed == 0 {
		return errorx.Wrap(ErrRateLimited, errorx.RateLimiting)
	}

	return nil
}
