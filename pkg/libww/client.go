package libww

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a Whisperwall server.
	Client interface {
		// Version returns the version of the Whisperwall server.
		Version() (string, error)
		// Whispers returns the recent whispers feed, newest first.
		Whispers() ([]Whisper, error)
		// Post creates a new whisper and returns its assigned identifier.
		Post(w PostWhisper) (uint64, error)
		// Like increments the like counter of a whisper.
		// It returns the authoritative new count, or 0 when the whisper is unknown.
		Like(id uint64) (int, error)
		// Mood returns the generated mood summary of the recent whispers.
		Mood() (string, error)
		// MirrorStatus returns true when the server's mirror store is configured.
		MirrorStatus() (bool, error)
		// MirrorMessages returns the mirror feed, newest first.
		MirrorMessages() ([]MirrorMessage, error)
		// MirrorPost creates a new message on the mirror feed.
		MirrorPost(msg string) (*MirrorMessage, error)
		// MirrorLike updates the like counter of a mirror message to current+1.
		// The count is computed from the caller-supplied value so concurrent
		// likes can race and lose an increment.
		MirrorLike(id int64, currentLikes int) (*MirrorMessage, error)
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Version() (string, error) {
	var version struct {
		Version string `json:"version"`
	}
	err := c.get("/version", &version)
	return version.Version, err
}

func (c *client) Whispers() ([]Whisper, error) {
	whispers := make([]Whisper, 0)
	err := c.get("/api/confessions", &whispers)
	return whispers, err
}

func (c *client) Post(w PostWhisper) (uint64, error) {
	var created struct {
		ID uint64 `json:"id"`
	}
	err := c.post("/api/confessions", &w, &created)
	return created.ID, err
}

func (c *client) Like(id uint64) (int, error) {
	var ack struct {
		Success bool `json:"success"`
		Likes   int  `json:"likes"`
	}
	err := c.post(path.Join("/api/confessions", formatUint(id), "like"), nil, &ack)
	return ack.Likes, err
}

func (c *client) Mood() (string, error) {
	var mood struct {
		Summary string `json:"summary"`
	}
	err := c.get("/api/mood/summary", &mood)
	return mood.Summary, err
}

func (c *client) MirrorStatus() (bool, error) {
	var status struct {
		Configured bool `json:"configured"`
	}
	err := c.get("/api/supabase/status", &status)
	return status.Configured, err
}

func (c *client) MirrorMessages() ([]MirrorMessage, error) {
	messages := make([]MirrorMessage, 0)
	err := c.get("/api/supabase/messages", &messages)
	return messages, err
}

func (c *client) MirrorPost(msg string) (*MirrorMessage, error) {
	var message MirrorMessage
	err := c.post("/api/supabase/messages", p{"msg": msg}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *client) MirrorLike(id int64, currentLikes int) (*MirrorMessage, error) {
	var message MirrorMessage
	err := c.post(path.Join("/api/supabase/messages", formatInt(id), "like"), p{"currentLikes": currentLikes}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *client) get(endpoint string, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)

	//
	// Build request
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseWWError(res.Body, res.StatusCode)
	}

	//
	// Process response
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

func (c *client) post(endpoint string, payload, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)

	//
	// Build request
	var body bytes.Buffer
	if payload != nil {
		if err = json.NewEncoder(&body).Encode(payload); err != nil {
			return errors.Wrap(err, "could not serialize payload")
		}
	}

	req, err := http.NewRequest(http.MethodPost, u.String(), &body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseWWError(res.Body, res.StatusCode)
	}

	//
	// Process response
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}
