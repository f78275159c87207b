package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"whisperwall/internal/server/session"
	"whisperwall/internal/spotify"
	"whisperwall/internal/wwerror"
)

// spotifyauth contains the music-service bridge handlers.
// Per-session state machine: Unauthenticated -> AuthorizationRequested
// (OAuthState set) -> TokenAcquired (SpotifyToken set). Session expiry
// silently reverts to Unauthenticated.
type spotifyauth struct {
	client   *spotify.Client
	sessions session.Manager
}

func (h *spotifyauth) notConfigured() error {
	return wwerror.NotConfigured(
		"Music service bridge is not configured.",
		"Set spotify.client_id and spotify.client_secret in the configuration or environment.",
	)
}

///// Status
////
//

// Status renders the configuration and authentication state of the bridge.
func (h *spotifyauth) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"configured":    h.client.Configured(),
		"authenticated": currentSession(c).Authenticated(),
	})
}

///// AuthorizeURL
////
//

// AuthorizeURL stores a fresh state nonce in the session and renders the
// accounts authorization URL.
func (h *spotifyauth) AuthorizeURL(c echo.Context) error {
	if !h.client.Configured() {
		return h.notConfigured()
	}

	sess := currentSession(c)
	sess.OAuthState = session.SecureToken(24)
	if err := h.sessions.Save(c, sess); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"url": h.client.AuthorizeURL(sess.OAuthState),
	})
}

///// Callback
////
//

// Callback completes the authorization-code exchange and stores the bearer
// token in the session. It renders a small HTML page that notifies the
// opener window and closes itself.
func (h *spotifyauth) Callback(c echo.Context) error {
	if !h.client.Configured() {
		return h.notConfigured()
	}

	sess := currentSession(c)
	code := c.QueryParam("code")
	state := c.QueryParam("state")

	if code == "" || sess.OAuthState == "" || !session.SecureCompare(state, sess.OAuthState) {
		return c.HTML(http.StatusBadRequest, callbackPage(false))
	}

	token, err := h.client.ExchangeCode(code)
	if err != nil {
		log.Printf("Could not exchange authorization code: %s", err)
		return c.HTML(http.StatusBadGateway, callbackPage(false))
	}

	sess.SpotifyToken = token
	sess.OAuthState = ""
	if err := h.sessions.Save(c, sess); err != nil {
		return err
	}

	return c.HTML(http.StatusOK, callbackPage(true))
}

///// TopTracks
////
//

// TopTracks forwards the read with the session's bearer token.
func (h *spotifyauth) TopTracks(c echo.Context) error {
	sess := currentSession(c)
	if !sess.Authenticated() {
		return wwerror.NotAuthenticated("Connect your Spotify account first.")
	}

	tracks, err := h.client.TopTracks(sess.SpotifyToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tracks": tracks,
	})
}

func callbackPage(ok bool) string {
	message := "whisperwall:spotify"
	text := "Spotify connected. You can close this window."
	if !ok {
		message = "whisperwall:spotify:error"
		text = "Spotify connection failed. You can close this window."
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
<p>%s</p>
<script>
if (window.opener) { window.opener.postMessage(%q, "*"); }
window.close();
</script>
</body>
</html>`, text, message)
}
