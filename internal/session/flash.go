package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Severity styles a flash message.
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warning Severity = "warning"
	Danger  Severity = "danger"
)

// FlashCookie holds at most one pending message between a redirect and
// the page it lands on.
const FlashCookie = "cinepedia_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Severity Severity `json:"s"`
	Message  string   `json:"m"`
}

// SetFlash queues a message for the next page.  A later call replaces an
// earlier one.
func SetFlash(c echo.Context, sev Severity, msg string) {
	b, err := json.Marshal(Flash{Severity: sev, Message: msg})
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending message, if any, and clears it.
func PopFlash(c echo.Context) *Flash {
	ck, err := c.Cookie(FlashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: FlashCookie, Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	switch f.Severity {
	case Success, Info, Warning, Danger:
	default:
		f.Severity = Info
	}
	return &f
}
