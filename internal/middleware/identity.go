package middleware

// identity.go holds helpers shared across middleware files.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinepedia/internal/session"
)

// userID returns the signed-in user's id as a string, or "guest".
func userID(c echo.Context) string {
    if id, ok := session.FromContext(c); ok {
        return strconv.FormatUint(id.UserID, 10)
    }
    return "guest"
}
