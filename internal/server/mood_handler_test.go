package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"whisperwall/internal/mood"
	"whisperwall/internal/server"
)

func TestRequestMoodSummaryUnconfigured(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	createWhisper(ioc, "someone left flowers on my desk", "Love")

	// Without an API key the handler still answers, with the fallback.
	r.GET("/api/mood/summary").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"summary":"The wall is quiet right now. Whisper something to set the mood."}`, r.Body.String())
	})
}

func TestRequestMoodSummaryEmptyWall(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("an empty wall must not trigger a completion call")
	}))
	defer upstream.Close()

	engine, _, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Summarizer = mood.New(upstream.URL, "", "key42")
	})
	defer cleanup()

	r.GET("/api/mood/summary").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"summary":"The wall is quiet right now. Whisper something to set the mood."}`, r.Body.String())
	})
}

func TestRequestMoodSummary(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer key42", req.Header.Get("Authorization"))

		payload, _ := io.ReadAll(req.Body)
		assert.Contains(t, string(payload), "missing my dog")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"content":"A wistful hush hangs over the wall today."}}]}`)
	}))
	defer upstream.Close()

	engine, ioc, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Summarizer = mood.New(upstream.URL, "", "key42")
	})
	defer cleanup()

	createWhisper(ioc, "missing my dog back home", "General")

	r.GET("/api/mood/summary").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"summary":"A wistful hush hangs over the wall today."}`, r.Body.String())
	})
}

func TestRequestMoodSummaryUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	engine, ioc, r, cleanup := setupWith(func(ioc *server.IOC) {
		ioc.Summarizer = mood.New(upstream.URL, "", "key42")
	})
	defer cleanup()

	createWhisper(ioc, "finals week is eating me alive", "Academic")

	// A failing completion call collapses to the fallback, never an error.
	r.GET("/api/mood/summary").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"summary":"The wall is quiet right now. Whisper something to set the mood."}`, r.Body.String())
	})
}
