package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Notifier delivers a message to a user outside the request path, typically
// through the Discord gateway session.
type Notifier interface {
	Notify(ctx context.Context, userID string, message string) error
}
