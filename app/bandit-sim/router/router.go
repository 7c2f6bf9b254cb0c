package router

import (
	"myGreenField/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetBanditRoutes(api *echo.Group, handler *rest.BanditHandler) {
	estimates := api.Group("/estimates")
	estimates.GET("", handler.GetEstimates)
	estimates.GET("/:context", handler.GetContextEstimates)

	api.GET("/observations", handler.RecentObservations)
}

func SetMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
