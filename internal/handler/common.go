package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
)

// dbTimeout bounds the storage work of a single request.
const dbTimeout = 5 * time.Second

// Flash texts that are not produced by the service layer.
const (
	msgSomethingWrong  = "Something went wrong. Please try again."
	msgInvalidForm     = "Invalid form submission."
	msgMovieNotFound   = "Movie not found."
	msgCommentNotFound = "Comment not found."
	msgBadCredentials  = "Invalid email or password."
	msgRegistered      = "Registration successful! You can now log in."
	msgLoggedOut       = "You have been logged out."
	msgMovieCreated    = "Movie saved successfully."
	msgMovieUpdated    = "Movie updated successfully."
	msgMovieDeleted    = "Movie deleted successfully."
	msgCommentCreated  = "Comment added."
	msgCommentDeleted  = "Comment deleted."
)

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// currentUserID returns the signed-in user's id.  Routes behind
// RequireLogin always have one.
func currentUserID(c echo.Context) uint64 {
	id, _ := session.FromContext(c)
	return id.UserID
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

// flashFor turns a service error into a flash.  notFound is the message
// used for repository.ErrNotFound.  Errors outside the known taxonomy
// are logged with the request id and shown as a generic failure.
func flashFor(c echo.Context, log zerolog.Logger, err error, notFound string) (session.Severity, string) {
	var (
		ve *service.ValidationError
		ce *service.ConflictError
		fe *service.ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		return session.Danger, ve.Msg
	case errors.As(err, &ce):
		return session.Danger, ce.Msg
	case errors.As(err, &fe):
		return session.Danger, fe.Reason
	case errors.Is(err, repository.ErrNotFound):
		return session.Danger, notFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return session.Danger, msgBadCredentials
	}
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
	return session.Danger, msgSomethingWrong
}

// fail flashes err and redirects to target.
func fail(c echo.Context, log zerolog.Logger, err error, notFound, target string) error {
	sev, msg := flashFor(c, log, err, notFound)
	session.SetFlash(c, sev, msg)
	return redirect(c, target)
}

// succeed flashes msg as a success and redirects to target.
func succeed(c echo.Context, msg, target string) error {
	session.SetFlash(c, session.Success, msg)
	return redirect(c, target)
}
