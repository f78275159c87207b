package wwerror_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"whisperwall/internal/wwerror"
)

func TestWWError(t *testing.T) {
	err := wwerror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, wwerror.StatusCode(errors.New("plain")))
}

func TestWWErrorRendering(t *testing.T) {
	err := wwerror.NotConfigured("Mirror store is not configured.", "Set supabase.url and supabase.anon_key.")
	assert.Equal(t, http.StatusServiceUnavailable, wwerror.StatusCode(err))

	payload, merr := json.Marshal(err)
	assert.NoError(t, merr)
	assert.JSONEq(t, `{"error":{"tag":"not-configured","message":"Mirror store is not configured.","hint":"Set supabase.url and supabase.anon_key."}}`, string(payload))
}

func TestWWErrorHintOmitted(t *testing.T) {
	err := wwerror.Validation("Whisper content must be at least 5 characters.")
	assert.Equal(t, http.StatusBadRequest, wwerror.StatusCode(err))

	payload, merr := json.Marshal(err)
	assert.NoError(t, merr)
	assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"Whisper content must be at least 5 characters."}}`, string(payload))
}
