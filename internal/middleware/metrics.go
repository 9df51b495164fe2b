package middleware

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinepedia/internal/metrics"
)

// Metrics observes request latency per route template.  Unmatched paths
// are folded into one label value to keep cardinality bounded.
func Metrics() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)

            status := c.Response().Status
            if err != nil {
                var he *echo.HTTPError
                if errors.As(err, &he) {
                    status = he.Code
                } else {
                    status = http.StatusInternalServerError
                }
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            metrics.HTTPRequestDuration.
                WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
                Observe(time.Since(start).Seconds())
            return err
        }
    }
}
