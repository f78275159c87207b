package mirror_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"whisperwall/internal/mirror"
)

func TestClientList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/messages", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "id.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "anon42", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon42", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"msg":"newest","likes":0,"created_at":"2026-08-24T10:00:00Z"},{"id":1,"msg":"older","likes":3,"created_at":"2026-08-24T09:00:00Z"}]`))
	}))
	defer server.Close()

	client := mirror.New(server.URL, "anon42")

	messages, err := client.List()
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[0].ID)
}

func TestClientCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/messages", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"msg":"hello wall"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":7,"msg":"hello wall","likes":0,"created_at":"2026-08-24T10:00:00Z"}]`))
	}))
	defer server.Close()

	client := mirror.New(server.URL, "anon42")

	message, err := client.Create("hello wall")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), message.ID)
	assert.Equal(t, 0, message.Likes)
}

func TestClientLikeSendsAbsoluteCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))

		var update map[string]int
		err := json.NewDecoder(r.Body).Decode(&update)
		assert.NoError(t, err)
		assert.Equal(t, 3, update["likes"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"msg":"hello wall","likes":3,"created_at":"2026-08-24T10:00:00Z"}]`))
	}))
	defer server.Close()

	client := mirror.New(server.URL, "anon42")

	message, err := client.Like(7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, message.Likes)
}

func TestClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"JWSError","hint":"Double check your anon key."}`))
	}))
	defer server.Close()

	client := mirror.New(server.URL, "wrong")

	_, err := client.List()
	assert.Error(t, err)

	uerr, ok := err.(*mirror.UpstreamError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, uerr.StatusCode)
	assert.Equal(t, "JWSError", uerr.Message)
	assert.Equal(t, "Double check your anon key.", uerr.Hint)
}

func TestClientLikeUnknownID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := mirror.New(server.URL, "anon42")

	_, err := client.Like(4242, 0)
	assert.Error(t, err)

	uerr, ok := err.(*mirror.UpstreamError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, uerr.StatusCode)
}
