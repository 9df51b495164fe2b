package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/internal/view"
)

// MovieHandler serves the movie dashboard and the owner-only pages.
type MovieHandler struct {
	Movies MovieService
	Log    zerolog.Logger
}

func NewMovieHandler(movies MovieService, log zerolog.Logger) *MovieHandler {
	return &MovieHandler{Movies: movies, Log: log}
}

// movieForm is the payload of the create/edit page.
type movieForm struct {
	Heading string
	Action  string
	Form    service.MovieInput
}

// List renders every movie, newest first.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("list movies failed")
		return echo.NewHTTPError(http.StatusInternalServerError, msgSomethingWrong).SetInternal(err)
	}
	return c.Render(http.StatusOK, view.PageMovies, movies)
}

// New renders an empty movie form.
func (h *MovieHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageMovieForm, movieForm{Heading: "Add a movie", Action: "/movies/new"})
}

// Create stores a movie owned by the current user.
func (h *MovieHandler) Create(c echo.Context) error {
	var in service.MovieInput
	if err := c.Bind(&in); err != nil {
		session.SetFlash(c, session.Danger, msgInvalidForm)
		return redirect(c, "/movies/new")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Movies.Create(ctx, currentUserID(c), in); err != nil {
		return fail(c, h.Log, err, msgMovieNotFound, "/movies/new")
	}
	return succeed(c, msgMovieCreated, "/movies")
}

// Show renders a movie and its comments.
func (h *MovieHandler) Show(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgMovieNotFound, "/movies")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	detail, err := h.Movies.Get(ctx, id)
	if err != nil {
		return fail(c, h.Log, err, msgMovieNotFound, "/movies")
	}
	return c.Render(http.StatusOK, view.PageMovieShow, detail)
}

// Edit renders the edit form, to the owner only.
func (h *MovieHandler) Edit(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgMovieNotFound, "/movies")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	m, err := h.Movies.GetForEdit(ctx, id, currentUserID(c))
	if err != nil {
		return fail(c, h.Log, err, msgMovieNotFound, "/movies")
	}
	return c.Render(http.StatusOK, view.PageMovieForm, movieForm{
		Heading: "Edit " + m.Title,
		Action:  fmt.Sprintf("/movies/%d/edit", m.ID),
		Form:    service.FromMovie(m),
	})
}

// Update saves the edit form.  A missing movie or a non-owner goes back to
// the dashboard; bad input or a taken title goes back to the form.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgMovieNotFound, "/movies")
	}
	back := fmt.Sprintf("/movies/%d/edit", id)

	var in service.MovieInput
	if err := c.Bind(&in); err != nil {
		session.SetFlash(c, session.Danger, msgInvalidForm)
		return redirect(c, back)
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if _, err := h.Movies.Update(ctx, id, currentUserID(c), in); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrForbidden) {
			back = "/movies"
		}
		return fail(c, h.Log, err, msgMovieNotFound, back)
	}
	return succeed(c, msgMovieUpdated, "/movies")
}

// Delete removes a movie owned by the current user.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, h.Log, repository.ErrNotFound, msgMovieNotFound, "/movies")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Movies.Delete(ctx, id, currentUserID(c)); err != nil {
		return fail(c, h.Log, err, msgMovieNotFound, "/movies")
	}
	return succeed(c, msgMovieDeleted, "/movies")
}
