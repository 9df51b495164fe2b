package session

import "github.com/labstack/echo/v4"

const identityKey = "session.identity"

// WithIdentity attaches id to the request context.
func WithIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the identity stored by WithIdentity, if any.
func FromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok && id.UserID != 0
}
