package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/internal/view"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Auth     AuthService
	Sessions *session.Manager
	Log      zerolog.Logger
}

func NewAuthHandler(auth AuthService, sessions *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Log: log}
}

// ShowRegister renders the sign-up form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, nil)
}

// Register creates an account and sends the user to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		session.SetFlash(c, session.Danger, msgInvalidForm)
		return redirect(c, "/register")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Auth.Register(ctx, in); err != nil {
		var ce *service.ConflictError
		if errors.As(err, &ce) {
			session.SetFlash(c, session.Warning, ce.Msg)
			return redirect(c, "/register")
		}
		return fail(c, h.Log, err, msgSomethingWrong, "/register")
	}
	return succeed(c, msgRegistered, "/login")
}

// ShowLogin renders the sign-in form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, nil)
}

// Login checks credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	u, err := h.Auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		return fail(c, h.Log, err, msgBadCredentials, "/login")
	}
	if _, err := h.Sessions.Start(c, u); err != nil {
		return fail(c, h.Log, fmt.Errorf("start session: %w", err), "", "/login")
	}
	return succeed(c, fmt.Sprintf("Welcome back, %s!", u.FirstName), "/movies")
}

// Logout ends the session.  It is safe to call without one.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Sessions.End(c)
	session.SetFlash(c, session.Info, msgLoggedOut)
	return redirect(c, "/login")
}
