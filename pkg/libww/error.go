package libww

import (
	"encoding/json"
	"io"
)

// A WWError reprensents an HTTP error returned by a Whisperwall server.
type WWError struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
		Hint    string `json:"hint"`
	} `json:"error"`
}

func parseWWError(r io.Reader, code int) error {
	var wwerr WWError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wwerr); err != nil {
		return err
	}
	wwerr.StatusCode = code
	return &wwerr
}

func (e *WWError) Error() string {
	return e.Err.Message
}
