package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/internal/view"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	Auth AuthService
	Log  zerolog.Logger
}

func NewHomeHandler(auth AuthService, log zerolog.Logger) *HomeHandler {
	return &HomeHandler{Auth: auth, Log: log}
}

// Home shows the signed-in user's stored profile, or a welcome for guests.
func (h *HomeHandler) Home(c echo.Context) error {
	id, ok := session.FromContext(c)
	if !ok {
		return c.Render(http.StatusOK, view.PageHome, nil)
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	var profile *model.User
	u, err := h.Auth.Profile(ctx, id.UserID)
	switch {
	case err == nil:
		profile = u
	case errors.Is(err, repository.ErrNotFound):
		// account removed while the cookie was still alive
	default:
		h.Log.Error().Err(err).Uint64("user_id", id.UserID).Msg("load profile failed")
	}
	if profile == nil {
		return c.Render(http.StatusOK, view.PageHome, nil)
	}
	return c.Render(http.StatusOK, view.PageHome, profile)
}
