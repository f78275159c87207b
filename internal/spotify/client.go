// Package spotify bridges the music-service authorization flow. It builds
// the authorization URL, exchanges the returned code for a bearer token and
// forwards read-only API calls with that token. Refresh tokens are not
// handled: the token lives as long as the visitor's session.
package spotify

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// Scopes is the read-only capability set requested from the music service.
const Scopes = "user-read-private user-top-read"

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"
)

type (
	// A Client performs the authorization-code exchange and the API reads.
	Client struct {
		clientID     string
		clientSecret string
		redirectURI  string
		accountsURL  string
		apiURL       string
		http         *http.Client
	}

	// A Track is the condensed shape of a top track rendered to the API caller.
	Track struct {
		Name       string `json:"name"`
		Artists    string `json:"artists"`
		Album      string `json:"album"`
		Image      string `json:"image"`
		URL        string `json:"url"`
		PreviewURL string `json:"preview_url"`
	}
)

// New returns a new Client. redirectURI must match the URI registered with
// the music service for the given application credentials.
func New(clientID, clientSecret, redirectURI string) *Client {
	return NewWithEndpoints(clientID, clientSecret, redirectURI, defaultAccountsURL, defaultAPIURL)
}

// NewWithEndpoints returns a Client targeting non-default accounts and API
// base URLs, e.g. a local stub standing in for the music service.
func NewWithEndpoints(clientID, clientSecret, redirectURI, accountsURL, apiURL string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		accountsURL:  accountsURL,
		apiURL:       apiURL,
		http:         http.DefaultClient,
	}
}

// Configured returns true when application credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AuthorizeURL returns the accounts authorization URL for the given state nonce.
func (c *Client) AuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", c.clientID)
	query.Set("response_type", "code")
	query.Set("redirect_uri", c.redirectURI)
	query.Set("scope", Scopes)
	query.Set("state", state)

	return c.accountsURL + "/authorize?" + query.Encode()
}

// ExchangeCode exchanges an authorization code for a bearer token through a
// direct server-to-server call.
func (c *Client) ExchangeCode(code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)

	//
	// Build request
	req, err := http.NewRequest(http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "could not read response")
	}

	//
	// Process response
	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return "", errors.Wrap(err, "could not parse response")
	}

	if res.StatusCode >= 400 {
		message := string(v.GetStringBytes("error_description"))
		if message == "" {
			message = string(v.GetStringBytes("error"))
		}
		return "", errors.Errorf("token exchange rejected: %s", message)
	}

	token := string(v.GetStringBytes("access_token"))
	if token == "" {
		return "", errors.New("token exchange returned no access token")
	}
	return token, nil
}

// TopTracks returns the condensed top tracks of the authenticated user.
func (c *Client) TopTracks(bearer string) ([]Track, error) {
	//
	// Build request
	req, err := http.NewRequest(http.MethodGet, c.apiURL+"/v1/me/top/tracks?limit=10", nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response")
	}

	//
	// Process response
	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse response")
	}

	if res.StatusCode >= 400 {
		return nil, errors.Errorf("top tracks call rejected: %s", string(v.GetStringBytes("error", "message")))
	}

	tracks := make([]Track, 0)
	for _, item := range v.GetArray("items") {
		artists := make([]string, 0)
		for _, artist := range item.GetArray("artists") {
			artists = append(artists, string(artist.GetStringBytes("name")))
		}

		track := Track{
			Name:       string(item.GetStringBytes("name")),
			Artists:    strings.Join(artists, ", "),
			Album:      string(item.GetStringBytes("album", "name")),
			URL:        string(item.GetStringBytes("external_urls", "spotify")),
			PreviewURL: string(item.GetStringBytes("preview_url")),
		}
		if images := item.GetArray("album", "images"); len(images) > 0 {
			track.Image = string(images[0].GetStringBytes("url"))
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}
