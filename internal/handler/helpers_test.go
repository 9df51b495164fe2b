package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinepedia/internal/config"
	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
	"github.com/iliyamo/cinepedia/internal/view"
)

type stubAuth struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*model.User, error)
	loginFn    func(ctx context.Context, email, password string) (*model.User, error)
	profileFn  func(ctx context.Context, id uint64) (*model.User, error)
}

func (s *stubAuth) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*model.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuth) Profile(ctx context.Context, id uint64) (*model.User, error) {
	return s.profileFn(ctx, id)
}

type stubMovies struct {
	listFn       func(ctx context.Context) ([]*model.Movie, error)
	getFn        func(ctx context.Context, id uint64) (*model.MovieDetail, error)
	getForEditFn func(ctx context.Context, id, editorID uint64) (*model.Movie, error)
	createFn     func(ctx context.Context, ownerID uint64, in service.MovieInput) (*model.Movie, error)
	updateFn     func(ctx context.Context, id, editorID uint64, in service.MovieInput) (*model.Movie, error)
	deleteFn     func(ctx context.Context, id, requesterID uint64) error
}

func (s *stubMovies) List(ctx context.Context) ([]*model.Movie, error) { return s.listFn(ctx) }

func (s *stubMovies) Get(ctx context.Context, id uint64) (*model.MovieDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubMovies) GetForEdit(ctx context.Context, id, editorID uint64) (*model.Movie, error) {
	return s.getForEditFn(ctx, id, editorID)
}

func (s *stubMovies) Create(ctx context.Context, ownerID uint64, in service.MovieInput) (*model.Movie, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubMovies) Update(ctx context.Context, id, editorID uint64, in service.MovieInput) (*model.Movie, error) {
	return s.updateFn(ctx, id, editorID, in)
}

func (s *stubMovies) Delete(ctx context.Context, id, requesterID uint64) error {
	return s.deleteFn(ctx, id, requesterID)
}

type stubComments struct {
	createFn func(ctx context.Context, movieID, authorID uint64, content string) (*model.Comment, error)
	deleteFn func(ctx context.Context, commentID, requesterID uint64) (*model.Comment, error)
}

func (s *stubComments) Create(ctx context.Context, movieID, authorID uint64, content string) (*model.Comment, error) {
	return s.createFn(ctx, movieID, authorID, content)
}

func (s *stubComments) Delete(ctx context.Context, commentID, requesterID uint64) (*model.Comment, error) {
	return s.deleteFn(ctx, commentID, requesterID)
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	return e
}

func newSessions() *session.Manager {
	return session.NewManager(config.SessionConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
		CookieName: "cinepedia_session",
	}, nil, zerolog.Nop())
}

// request builds a context for method/target.  A non-nil form is sent
// url-encoded; userID 0 means a guest.  params are name/value pairs.
func request(e *echo.Echo, method, target string, form url.Values, userID uint64, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if userID != 0 {
		session.WithIdentity(c, session.Identity{UserID: userID, FirstName: "Ana"})
	}
	return c, rec
}

// flashOf decodes the flash cookie set on rec.
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) *session.Flash {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.FlashCookie {
			req.AddCookie(ck)
		}
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return session.PopFlash(c)
}
