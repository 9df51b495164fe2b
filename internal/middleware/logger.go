package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request.  Server errors
// log at error level, client errors at warn and everything else at info.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogRoutePath: true,
        LogStatus:    true,
        LogLatency:   true,
        LogRequestID: true,
        LogRemoteIP:  true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            ev := log.Info()
            switch {
            case v.Status >= 500:
                ev = log.Error()
            case v.Status >= 400:
                ev = log.Warn()
            }
            if v.Error != nil {
                ev = ev.Err(v.Error)
            }
            ev.Str("method", v.Method).
                Str("uri", v.URI).
                Str("route", v.RoutePath).
                Int("status", v.Status).
                Dur("latency", v.Latency).
                Str("request_id", v.RequestID).
                Str("remote_ip", v.RemoteIP).
                Str("user", userID(c)).
                Msg("request")
            return nil
        },
    })
}
