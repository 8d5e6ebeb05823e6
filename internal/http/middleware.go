package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"urlboard/pkg/logger"
)

// RequestLoggerMiddleware logs each request with its status and latency.
// Server errors log at error level, client errors at warn.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []any{
				"module", "http",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency", time.Since(start).String(),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request failed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request rejected", fields...)
			default:
				logger.Debug("request", fields...)
			}
			return nil
		}
	}
}
