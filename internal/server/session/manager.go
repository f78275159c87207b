package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/o1egl/paseto/v2"
	"github.com/pkg/errors"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "whisperwall_session"
	// Issuer is the `iss` claim sealed into every session token.
	Issuer = "whisperwall"

	claimSpotifyToken = "spotify_token"
	claimOAuthState   = "oauth_state"
)

type (
	// A Manager seals sessions into v2.local PASETO cookies and loads them back.
	Manager interface {
		// Load returns the session carried by the request cookie.
		// A missing, tampered or expired cookie loads as a fresh session.
		Load(c echo.Context) *Session
		// Save seals the session into the response cookie.
		Save(c echo.Context, session *Session) error
		// Issue seals the given session and returns the cookie value.
		Issue(session *Session) (string, error)
	}

	manager struct {
		secret []byte
		ttl    time.Duration
		paseto *paseto.V2
	}
)

// NewManager returns a new manager.
// secret must be 32 bytes long.
func NewManager(secret []byte, ttl time.Duration) Manager {
	return &manager{
		secret: secret,
		ttl:    ttl,
		paseto: paseto.NewV2(),
	}
}

func (m *manager) Load(c echo.Context) *Session {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return new(Session)
	}

	var token paseto.JSONToken
	if err := m.paseto.Decrypt(cookie.Value, m.secret, &token, nil); err != nil {
		return new(Session)
	}
	if err := token.Validate(paseto.IssuedBy(Issuer), paseto.ValidAt(time.Now())); err != nil {
		return new(Session)
	}

	session := new(Session)
	_ = token.Get(claimSpotifyToken, &session.SpotifyToken)
	_ = token.Get(claimOAuthState, &session.OAuthState)
	return session
}

func (m *manager) Save(c echo.Context, session *Session) error {
	sealed, err := m.Issue(session)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *manager) Issue(session *Session) (string, error) {
	now := time.Now()
	token := paseto.JSONToken{
		Issuer:     Issuer,
		IssuedAt:   now,
		Expiration: now.Add(m.ttl),
	}
	if session.SpotifyToken != "" {
		token.Set(claimSpotifyToken, session.SpotifyToken)
	}
	if session.OAuthState != "" {
		token.Set(claimOAuthState, session.OAuthState)
	}

	sealed, err := m.paseto.Encrypt(m.secret, token, nil)
	return sealed, errors.Wrap(err, "could not seal session")
}
