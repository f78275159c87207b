// Package mood generates a short natural-language blurb describing the mood
// of the recent whispers. The generative call is best effort: any failure
// collapses to a static fallback at the HTTP layer.
package mood

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// Fallback is rendered when the summarizer is unconfigured or fails.
	Fallback = "The wall is quiet right now. Whisper something to set the mood."

	// DefaultEndpoint is a chat-completions compatible API endpoint.
	DefaultEndpoint = "https://api.deepseek.com/v1/chat/completions"
	// DefaultModel is the model requested when none is configured.
	DefaultModel = "deepseek-chat"

	prompt = "You summarize the mood of an anonymous confession wall. " +
		"Given the confessions below, answer with one or two warm sentences describing the overall mood. " +
		"Do not quote or single out any confession.\n\n"
)

// A Summarizer posts the recent whisper contents to a chat-completions API.
type Summarizer struct {
	endpoint string
	model    string
	key      string
	http     *http.Client
	log      logrus.FieldLogger
}

// New returns a new Summarizer. Empty endpoint and model fall back to the defaults.
func New(endpoint, model, key string) *Summarizer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}

	return &Summarizer{
		endpoint: endpoint,
		model:    model,
		key:      key,
		http:     &http.Client{Timeout: 60 * time.Second},
		log:      logrus.WithField("component", "mood"),
	}
}

// Configured returns true when an API key is present.
func (s *Summarizer) Configured() bool {
	return s.key != ""
}

// Summarize returns a mood blurb for the given whisper contents.
func (s *Summarizer) Summarize(contents []string) (string, error) {
	if !s.Configured() {
		return "", errors.New("no API key configured")
	}

	//
	// Build request
	body, err := json.Marshal(map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt + strings.Join(contents, "\n")},
		},
		"temperature": 0.7,
		"max_tokens":  120,
	})
	if err != nil {
		return "", errors.Wrap(err, "could not serialize completion request")
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.key)

	//
	// Perform request
	res, err := s.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		payload, _ := io.ReadAll(res.Body)
		s.log.WithField("status", res.StatusCode).Warn("completion call rejected")
		return "", errors.Errorf("completion call rejected (%d): %s", res.StatusCode, payload)
	}

	//
	// Process response
	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&completion); err != nil {
		return "", errors.Wrap(err, "could not parse response")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choice")
	}

	summary := strings.TrimSpace(completion.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("completion returned an empty summary")
	}
	return summary, nil
}
