package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinepedia/internal/config"
	"github.com/iliyamo/cinepedia/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevoker() *memRevoker { return &memRevoker{revoked: map[string]time.Time{}} }

func (r *memRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[id] = until
	return r.err
}

func (r *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok, r.err
}

func newManager(rev Revoker) *Manager {
	return NewManager(config.SessionConfig{
		Secret:     testSecret,
		TTL:        time.Hour,
		CookieName: "cinepedia_session",
	}, rev, zerolog.Nop())
}

func TestIssueAndParse(t *testing.T) {
	m := newManager(nil)

	raw, exp, err := m.Issue(42, "Ana")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	id, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.UserID)
	assert.Equal(t, "Ana", id.FirstName)
	assert.NotEmpty(t, id.SessionID)

	raw2, _, err := m.Issue(42, "Ana")
	require.NoError(t, err)
	id2, err := m.Parse(raw2)
	require.NoError(t, err)
	assert.NotEqual(t, id.SessionID, id2.SessionID, "each session gets its own id")
}

func TestParse_Rejects(t *testing.T) {
	m := newManager(nil)
	raw, _, err := m.Issue(42, "Ana")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager(config.SessionConfig{Secret: strings.Repeat("x", 32), TTL: time.Hour}, nil, zerolog.Nop())
		_, err := other.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("expired", func(t *testing.T) {
		later := newManager(nil)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("tampered", func(t *testing.T) {
		_, err := m.Parse(raw[:len(raw)-2] + "xx")
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("alg none", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "42",
			ID:        "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("no expiry", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42", ID: "x"})
		signed, err := tok.SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = m.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// carry copies the cookies set on rec onto a fresh request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return req
}

func TestStartLoadEnd(t *testing.T) {
	rev := newMemRevoker()
	m := newManager(rev)

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	started, err := m.Start(c, &model.User{ID: 7, FirstName: "Ana"})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cinepedia_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	c2, _ := newContext(carry(rec))
	id, err := m.Load(c2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id.UserID)
	assert.Equal(t, started.SessionID, id.SessionID)

	c3, rec3 := newContext(carry(rec))
	m.End(c3)
	cleared := rec3.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
	assert.Contains(t, rev.revoked, started.SessionID)

	// the old cookie is dead even if the browser keeps sending it
	c4, _ := newContext(carry(rec))
	_, err = m.Load(c4)
	assert.ErrorIs(t, err, ErrRevoked)
}

func TestLoad_NoCookie(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := newManager(nil).Load(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoad_RevokerDownAcceptsSession(t *testing.T) {
	rev := newMemRevoker()
	m := newManager(rev)
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/login", nil))
	_, err := m.Start(c, &model.User{ID: 7, FirstName: "Ana"})
	require.NoError(t, err)

	rev.err = errors.New("redis down")
	c2, _ := newContext(carry(rec))
	id, err := m.Load(c2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id.UserID)
}

func TestEnd_WithoutSessionIsHarmless(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/logout", nil))
	newManager(nil).End(c)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestContextIdentity(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	_, ok := FromContext(c)
	assert.False(t, ok)

	WithIdentity(c, Identity{UserID: 3, FirstName: "Ben"})
	id, ok := FromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "Ben", id.FirstName)
}

func TestNewRevoker_NilClient(t *testing.T) {
	rev := NewRevoker(nil)
	assert.IsType(t, NopRevoker{}, rev)
	revoked, err := rev.IsRevoked(context.Background(), "abc")
	assert.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, "session:revoked:abc", revokedKey("abc"))
}
