// Package router wires middleware and routes onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/handler"
	"github.com/iliyamo/cinepedia/internal/middleware"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/internal/view"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Auth     *handler.AuthHandler
	Home     *handler.HomeHandler
	Movies   *handler.MovieHandler
	Comments *handler.CommentHandler
	Health   *handler.HealthHandler
	Sessions *session.Manager
	Log      zerolog.Logger
	Metrics  bool
}

// New builds the Echo instance with global middleware, the renderer, the
// error handler and every route.
func New(d Deps) (*echo.Echo, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.LoadIdentity(d.Sessions))
	e.Use(middleware.RequestLogger(d.Log))
	if d.Metrics {
		e.Use(middleware.Metrics())
	}

	RegisterRoutes(e, d)
	RegisterAuth(e, d.Auth)
	RegisterMovies(e, d.Movies, d.Comments)
	return e, nil
}

// RegisterRoutes registers routes that never need a session: the landing
// page and operational endpoints.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/", d.Home.Home)
	e.GET("/healthz", d.Health.Liveness)
	e.GET("/readyz", d.Health.Readiness)
	if d.Metrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
}

// RegisterAuth registers the sign-up, sign-in and sign-out pages.  They
// serve any visitor; signing in while signed in replaces the session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.GET("/register", a.ShowRegister)
	e.POST("/register", a.Register)
	e.GET("/login", a.ShowLogin)
	e.POST("/login", a.Login)
	e.GET("/logout", a.Logout)
}

// RegisterMovies registers the catalogue and comment routes, all of which
// require a signed-in user.  Ownership is enforced by the services.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, c *handler.CommentHandler) {
	// middleware is attached per route; an Echo group with an empty prefix
	// would also claim unmatched paths
	login := middleware.RequireLogin()

	e.GET("/movies", m.List, login)
	e.GET("/movies/new", m.New, login)
	e.POST("/movies/new", m.Create, login)
	e.GET("/movies/:id", m.Show, login)
	e.GET("/movies/:id/edit", m.Edit, login)
	e.POST("/movies/:id/edit", m.Update, login)
	e.GET("/movies/:id/delete", m.Delete, login)

	e.POST("/movies/:id/comments", c.Create, login)
	e.GET("/comments/:id/delete", c.Delete, login)
}
