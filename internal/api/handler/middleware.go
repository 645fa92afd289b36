package handler

import (
	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"saucebot/internal/interfaces"
)

// RateLimit throttles by client IP. The API is read-only so the limit is
// generous.
func RateLimit(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter, err := do.Invoke[interfaces.Limiter](container)
			if err != nil {
				return next(c)
			}

			err = limiter.Allow(c.Request().Context(), c.RealIP(), redis_rate.PerMinute(120))
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, err, -1)
				return nil
			}

			return next(c)
		}
	}
}
