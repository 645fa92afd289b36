package handler

import (
	"saucebot/internal/buildings"
	"saucebot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupBuilding struct {
	container *do.Injector
}

func (gr *groupBuilding) GetBuildings(c echo.Context) error {
	serviceBuilding, err := do.Invoke[*services.ServiceBuilding](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()

	rows, err := serviceBuilding.GetBuildings(ctx, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rows, nil)
}

func (gr *groupBuilding) GetCatalog(c echo.Context) error {
	return httpx.RestAbort(c, buildings.Catalog, nil)
}
