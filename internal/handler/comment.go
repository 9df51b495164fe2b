package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
)

// CommentHandler serves posting and deleting comments.
type CommentHandler struct {
	Comments CommentService
	Log      zerolog.Logger
}

func NewCommentHandler(comments CommentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Log: log}
}

func moviePath(id uint64) string { return fmt.Sprintf("/movies/%d", id) }

// Create posts a comment on the movie in the path.
func (h *CommentHandler) Create(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgMovieNotFound, "/movies")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	_, err := h.Comments.Create(ctx, movieID, currentUserID(c), c.FormValue("content"))
	var fe *service.ForbiddenError
	switch {
	case err == nil:
		return succeed(c, msgCommentCreated, moviePath(movieID))
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, h.Log, err, msgMovieNotFound, "/movies")
	case errors.As(err, &fe):
		session.SetFlash(c, session.Warning, fe.Reason)
		return redirect(c, moviePath(movieID))
	}
	return fail(c, h.Log, err, msgMovieNotFound, moviePath(movieID))
}

// Delete removes a comment written by the current user and returns to its
// movie.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgCommentNotFound, "/movies")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	comment, err := h.Comments.Delete(ctx, id, currentUserID(c))
	if comment == nil {
		if err == nil {
			err = repository.ErrNotFound
		}
		return fail(c, h.Log, err, msgCommentNotFound, "/movies")
	}
	if err != nil {
		return fail(c, h.Log, err, msgCommentNotFound, moviePath(comment.MovieID))
	}
	return succeed(c, msgCommentDeleted, moviePath(comment.MovieID))
}
