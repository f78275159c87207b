package session

// A Session carries the per-visitor claims sealed into the session cookie.
// There is no server-side session storage: the cookie is the whole state.
type Session struct {
	// SpotifyToken is the bearer token acquired from the music service.
	SpotifyToken string
	// OAuthState is the nonce of an in-flight authorization request.
	OAuthState string
}

// Authenticated returns true when the session carries a bearer token.
func (s *Session) Authenticated() bool {
	return s.SpotifyToken != ""
}
