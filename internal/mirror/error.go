package mirror

import (
	"encoding/json"
	"io"
)

// An UpstreamError reprensents an error payload returned by the mirror store.
// The message and the optional hint are surfaced to the API caller as-is.
type UpstreamError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Hint       string `json:"hint"`
}

func parseUpstreamError(r io.Reader, code int) *UpstreamError {
	uerr := &UpstreamError{StatusCode: code}
	dec := json.NewDecoder(r)
	if err := dec.Decode(uerr); err != nil || uerr.Message == "" {
		uerr.Message = "Mirror store rejected the call."
	}
	return uerr
}

func (e *UpstreamError) Error() string {
	return e.Message
}
