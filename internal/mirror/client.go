// Package mirror wraps the hosted Supabase REST table that serves as the
// alternate whisper feed. The mirror records are independent of the local
// store: nothing synchronizes the two feeds.
package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FeedLimit is the maximum number of messages returned by List.
const FeedLimit = 50

type (
	// A Client performs REST calls against the mirror's messages table.
	Client struct {
		endpoint string
		key      string
		http     *http.Client
		log      logrus.FieldLogger
	}

	// A Message is a record of the mirror feed. The schema is equivalent to a
	// whisper but differently shaped: a single msg column plus a like counter.
	Message struct {
		ID        int64     `json:"id"`
		Msg       string    `json:"msg"`
		Likes     int       `json:"likes"`
		CreatedAt time.Time `json:"created_at"`
	}
)

// New returns a new Client for the given project URL and API key.
func New(url, key string) *Client {
	return &Client{
		endpoint: strings.TrimRight(url, "/") + "/rest/v1",
		key:      key,
		http:     http.DefaultClient,
		log:      logrus.WithField("component", "mirror"),
	}
}

// List returns up to FeedLimit messages, newest first.
func (c *Client) List() ([]Message, error) {
	req, err := c.request(http.MethodGet, fmt.Sprintf("/messages?select=*&order=id.desc&limit=%d", FeedLimit), nil)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0)
	err = c.perform(req, &messages)
	return messages, err
}

// Create inserts a new message and returns its representation.
func (c *Client) Create(msg string) (*Message, error) {
	body, err := json.Marshal(map[string]string{"msg": msg})
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize message")
	}

	req, err := c.request(http.MethodPost, "/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	return c.performOne(req)
}

// Like writes likes = currentLikes+1 as an absolute update and returns the
// updated representation. The count comes from the caller, not from the
// table, so two concurrent likes can write the same value and lose one
// increment. Last write wins.
func (c *Client) Like(id int64, currentLikes int) (*Message, error) {
	body, err := json.Marshal(map[string]int{"likes": currentLikes + 1})
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize like update")
	}

	req, err := c.request(http.MethodPatch, fmt.Sprintf("/messages?id=eq.%d", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	return c.performOne(req)
}

func (c *Client) request(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.endpoint+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	return req, nil
}

func (c *Client) perform(req *http.Request, v any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		uerr := parseUpstreamError(res.Body, res.StatusCode)
		c.log.WithError(uerr).Warn("mirror store rejected the call")
		return uerr
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

// performOne executes a request whose representation is a single-element array.
func (c *Client) performOne(req *http.Request) (*Message, error) {
	messages := make([]Message, 0)
	if err := c.perform(req, &messages); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, &UpstreamError{
			StatusCode: http.StatusNotFound,
			Message:    "No mirror message matched the request.",
		}
	}
	return &messages[0], nil
}
