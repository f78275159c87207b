package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"whisperwall/internal/server"
	"whisperwall/internal/server/session"
	"whisperwall/internal/spotify"
)

func TestRequestSpotifyStatus(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/api/auth/spotify/status").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"configured":false,"authenticated":false}`, r.Body.String())
	})

	engine, _, r, cleanup = setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.New("id42", "secret42", "http://localhost:5000/auth/spotify/callback")
	})
	defer cleanup()

	r.GET("/api/auth/spotify/status").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"configured":true,"authenticated":false}`, r.Body.String())
	})
}

func TestRequestSpotifyAuthorizeURLNotConfigured(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/api/auth/spotify/url").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusServiceUnavailable, r.Code)
		assert.JSONEq(t, `{"error":{
			"tag":"not-configured",
			"message":"Music service bridge is not configured.",
			"hint":"Set spotify.client_id and spotify.client_secret in the configuration or environment."
		}}`, r.Body.String())
	})
}

func TestRequestSpotifyAuthorizeURL(t *testing.T) {
	engine, _, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.New("id42", "secret42", "http://localhost:5000/auth/spotify/callback")
	})
	defer cleanup()

	r.GET("/api/auth/spotify/url").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		var payload struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &payload))

		u, err := url.Parse(payload.URL)
		require.NoError(t, err)
		assert.Equal(t, "accounts.spotify.com", u.Host)
		assert.Equal(t, "/authorize", u.Path)
		assert.Equal(t, "id42", u.Query().Get("client_id"))
		assert.Equal(t, "code", u.Query().Get("response_type"))
		assert.Equal(t, spotify.Scopes, u.Query().Get("scope"))
		assert.NotEmpty(t, u.Query().Get("state"))

		// The state nonce is sealed into the session cookie.
		cookies := r.HeaderMap.Values("Set-Cookie")
		require.NotEmpty(t, cookies)
		assert.Contains(t, cookies[0], session.CookieName+"=")
	})
}

func TestRequestSpotifyCallbackStateMismatch(t *testing.T) {
	engine, ioc, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.New("id42", "secret42", "http://localhost:5000/auth/spotify/callback")
	})
	defer cleanup()

	cookie := issueSession(ioc, &session.Session{OAuthState: "state42"})

	r.GET("/auth/spotify/callback?code=code42&state=evil").
		SetCookie(gofight.H{session.CookieName: cookie}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.Contains(t, r.Body.String(), "whisperwall:spotify:error")
		})
}

func TestRequestSpotifyCallback(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/token", req.URL.Path)

		user, pass, ok := req.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id42", user)
		assert.Equal(t, "secret42", pass)

		assert.NoError(t, req.ParseForm())
		assert.Equal(t, "authorization_code", req.PostForm.Get("grant_type"))
		assert.Equal(t, "code42", req.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"bearer42","token_type":"Bearer","expires_in":3600}`)
	}))
	defer accounts.Close()

	engine, ioc, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.NewWithEndpoints("id42", "secret42",
			"http://localhost:5000/auth/spotify/callback", accounts.URL, accounts.URL)
	})
	defer cleanup()

	cookie := issueSession(ioc, &session.Session{OAuthState: "state42"})

	r.GET("/auth/spotify/callback?code=code42&state=state42").
		SetCookie(gofight.H{session.CookieName: cookie}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.Contains(t, r.Body.String(), "whisperwall:spotify")
			assert.NotContains(t, r.Body.String(), "whisperwall:spotify:error")

			// The refreshed cookie now carries the bearer token.
			cookies := r.HeaderMap.Values("Set-Cookie")
			require.NotEmpty(t, cookies)
			sealed := extractCookie(cookies[0])
			loaded := loadSession(ioc, sealed)
			assert.Equal(t, "bearer42", loaded.SpotifyToken)
			assert.Empty(t, loaded.OAuthState)
		})
}

func TestRequestSpotifyTopTracksNotAuthenticated(t *testing.T) {
	engine, _, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.New("id42", "secret42", "http://localhost:5000/auth/spotify/callback")
	})
	defer cleanup()

	r.GET("/api/spotify/me/top-tracks").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-authenticated","message":"Connect your Spotify account first."}}`, r.Body.String())
	})
}

func TestRequestSpotifyTopTracks(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/me/top/tracks", req.URL.Path)
		assert.Equal(t, "Bearer bearer42", req.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"items":[{
			"name":"Everlong",
			"artists":[{"name":"Foo Fighters"}],
			"album":{"name":"The Colour and the Shape","images":[{"url":"https://img.example/cover.jpg"}]},
			"external_urls":{"spotify":"https://open.spotify.com/track/07q6QTQXyPRCf7GbLakRPr"},
			"preview_url":"https://p.scdn.co/mp3-preview/xyz"
		}]}`)
	}))
	defer api.Close()

	engine, ioc, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Spotify = spotify.NewWithEndpoints("id42", "secret42",
			"http://localhost:5000/auth/spotify/callback", api.URL, api.URL)
	})
	defer cleanup()

	cookie := issueSession(ioc, &session.Session{SpotifyToken: "bearer42"})

	r.GET("/api/spotify/me/top-tracks").
		SetCookie(gofight.H{session.CookieName: cookie}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.JSONEq(t, `{"tracks":[{
				"name":"Everlong",
				"artists":"Foo Fighters",
				"album":"The Colour and the Shape",
				"image":"https://img.example/cover.jpg",
				"url":"https://open.spotify.com/track/07q6QTQXyPRCf7GbLakRPr",
				"preview_url":"https://p.scdn.co/mp3-preview/xyz"
			}]}`, r.Body.String())
		})
}

func issueSession(ioc server.IOC, sess *session.Session) string {
	sealed, err := session.NewManager(ioc.SessionSecret, ioc.SessionTTL).Issue(sess)
	if err != nil {
		panic(err)
	}
	return sealed
}

func loadSession(ioc server.IOC, sealed string) *session.Session {
	manager := session.NewManager(ioc.SessionSecret, ioc.SessionTTL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sealed})
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return manager.Load(c)
}

func extractCookie(header string) string {
	value := strings.TrimPrefix(header, session.CookieName+"=")
	if i := strings.Index(value, ";"); i >= 0 {
		value = value[:i]
	}
	return value
}
