package middleware

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinepedia/internal/session"
)

// LoadIdentity reads the session cookie on every request and, when it is
// valid, stores the identity on the context for handlers and templates.
// Requests without a usable session continue as guests; a stale or revoked
// cookie is cleared so the browser stops sending it.
func LoadIdentity(sm *session.Manager) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, err := sm.Load(c)
            switch {
            case err == nil:
                session.WithIdentity(c, id)
            case errors.Is(err, session.ErrInvalid), errors.Is(err, session.ErrRevoked):
                sm.End(c)
            }
            return next(c)
        }
    }
}

// RequireLogin sends guests to the login page with a warning instead of
// running the handler.
func RequireLogin() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if _, ok := session.FromContext(c); !ok {
                session.SetFlash(c, session.Warning, "Please log in to access this page.")
                return c.Redirect(http.StatusSeeOther, "/login")
            }
            return next(c)
        }
    }
}
