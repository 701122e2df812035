package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs one entry per request and annotates the New Relic
// transaction started by the nrecho middleware, when one exists.
func ZapEchoMiddleware(zl *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			start := time.Now()

			err := next(c)

			req := c.Request()
			latency := time.Since(start)
			statusCode := c.Response().Status
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			if txn != nil {
				txn.AddAttribute("request_id", requestID)
				txn.AddAttribute("response_time_ms", latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			zl.LogHTTPRequest(txn, req.Method, path, c.RealIP(), requestID, statusCode, latency, err)

			return err
		}
	}
}
