package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "urlboard/docs"
	"urlboard/internal/handler"
	"urlboard/internal/web"
)

// NewRouter wires the JSON API, the dashboard and the shared middleware onto
// a single Echo instance.
func NewRouter(
	recordHandler *handler.RecordHandler,
	storeHandler *handler.StoreHandler,
	dashboardHandler *web.DashboardHandler,
	enableSwagger bool,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.Renderer = web.NewRenderer()
	dashboardHandler.RegisterRoutes(e)

	api := e.Group("/api")
	recordHandler.RegisterRoutes(api)
	storeHandler.RegisterRoutes(api)

	if enableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
