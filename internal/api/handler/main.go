package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🥫")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(RateLimit(cfg.Container))

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/:id/profile", u.GetProfile)
		routesAPIv1.GET("/user/:id/pass", u.GetPass)

		b := groupBuilding{cfg.Container}
		routesAPIv1.GET("/user/:id/buildings", b.GetBuildings)
		routesAPIv1.GET("/buildings/catalog", b.GetCatalog)

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/guild/:guild/leaderboard/:board", l.GetLeaderboard)
		routesAPIv1.GET("/guild/:guild/leaderboard/:board/rank/:id", l.GetRank)
	}

	return r, nil
}
