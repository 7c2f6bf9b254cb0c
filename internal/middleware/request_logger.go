package middleware

import (
	"strconv"
	"time"

	"myGreenField/business/bandit"
	"myGreenField/pkg/logger"
	"myGreenField/pkg/metrics"

	"github.com/labstack/echo/v4"
)

const HeaderTraceID = "X-Trace-ID"

// RequestLogger tags each request with a trace id (reusing an incoming
// X-Trace-ID), logs it once it completes and records its latency.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(HeaderTraceID)
			if traceID == "" {
				traceID = bandit.NewTraceID()
			}
			req := c.Request()
			c.SetRequest(req.WithContext(bandit.WithTraceID(req.Context(), traceID)))
			c.Response().Header().Set(HeaderTraceID, traceID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			route := c.Path()
			status := c.Response().Status
			metrics.HTTPRequestDuration.
				WithLabelValues(req.Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			logger.Info("http_request",
				"trace_id", traceID,
				"method", req.Method,
				"route", route,
				"status", status,
				"elapsed", elapsed,
			)
			return nil
		}
	}
}
