// Package session keeps users signed in across requests with a signed,
// HttpOnly cookie carrying an HS256 JWT.  The token holds the user id, the
// cached first name used in greetings and a random session id (jti) that
// logout can revoke through Redis before the token expires on its own.
package session

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/config"
	"github.com/iliyamo/cinepedia/internal/model"
)

var (
	// ErrNoSession means the request carries no session cookie.
	ErrNoSession = errors.New("session: none")
	// ErrInvalid covers bad signatures, expired tokens and malformed claims.
	ErrInvalid = errors.New("session: invalid")
	// ErrRevoked means the session was ended by logout.
	ErrRevoked = errors.New("session: revoked")
)

// Identity is the authenticated user behind a request.
type Identity struct {
	UserID    uint64
	FirstName string
	SessionID string
	ExpiresAt time.Time
}

// Claims is the JWT payload.  Subject holds the decimal user id.
type Claims struct {
	FirstName string `json:"name"`
	jwt.RegisteredClaims
}

// Manager issues, reads and ends sessions.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	revoker    Revoker
	log        zerolog.Logger
	now        func() time.Time
}

// NewManager builds a Manager from cfg.  revoker may be nil, in which case
// logout only clears the cookie.
func NewManager(cfg config.SessionConfig, revoker Revoker, log zerolog.Logger) *Manager {
	if revoker == nil {
		revoker = NopRevoker{}
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		revoker:    revoker,
		log:        log,
		now:        time.Now,
	}
}

// Issue signs a token for userID valid for the configured TTL.
func (m *Manager) Issue(userID uint64, firstName string) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := Claims{
		FirstName: firstName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies raw and returns the identity it carries.  Only HS256 is
// accepted and the token must carry an expiry.
func (m *Manager) Parse(raw string) (Identity, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalid
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || uid == 0 || claims.ID == "" {
		return Identity{}, ErrInvalid
	}
	return Identity{
		UserID:    uid,
		FirstName: claims.FirstName,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Start signs a session for u and sets the cookie on the response.
func (m *Manager) Start(c echo.Context, u *model.User) (Identity, error) {
	raw, exp, err := m.Issue(u.ID, u.FirstName)
	if err != nil {
		return Identity{}, err
	}
	c.SetCookie(m.cookie(raw, exp, int(m.ttl.Seconds())))
	return m.Parse(raw)
}

// Load returns the identity of the request's session cookie.  A Redis
// failure while checking revocation is logged and the session accepted,
// so an outage degrades logout instead of signing everyone out.
func (m *Manager) Load(c echo.Context) (Identity, error) {
	ck, err := c.Cookie(m.cookieName)
	if err != nil || ck.Value == "" {
		return Identity{}, ErrNoSession
	}
	id, err := m.Parse(ck.Value)
	if err != nil {
		return Identity{}, err
	}
	revoked, err := m.revoker.IsRevoked(c.Request().Context(), id.SessionID)
	if err != nil {
		m.log.Warn().Err(err).Msg("session revocation check failed")
		return id, nil
	}
	if revoked {
		return Identity{}, ErrRevoked
	}
	return id, nil
}

// End revokes the request's session, if any, and clears the cookie.
// Calling it without a session is harmless.
func (m *Manager) End(c echo.Context) {
	if ck, err := c.Cookie(m.cookieName); err == nil && ck.Value != "" {
		if id, err := m.Parse(ck.Value); err == nil {
			m.revoke(c.Request().Context(), id)
		}
	}
	c.SetCookie(m.cookie("", time.Unix(0, 0), -1))
}

func (m *Manager) revoke(ctx context.Context, id Identity) {
	if err := m.revoker.Revoke(ctx, id.SessionID, id.ExpiresAt); err != nil {
		m.log.Warn().Err(err).Uint64("user_id", id.UserID).Msg("session revoke failed")
	}
}

func (m *Manager) cookie(value string, exp time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
