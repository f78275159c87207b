package server_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"whisperwall/internal/database"
	"whisperwall/internal/model"
	"whisperwall/internal/mood"
	"whisperwall/internal/server"
	"whisperwall/internal/spotify"
)

func TestRequestHome(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Contains(t, r.Body.String(), "Whisperwall")
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ioc server.IOC, r *gofight.RequestConfig, cleanup func()) {
	return setupWith(nil)
}

// setupWith starts an engine backed by a throwaway database. configure can
// swap the external clients before the engine is built.
func setupWith(configure func(ioc *server.IOC)) (engine *echo.Echo, ioc server.IOC, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "whisperwall.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename, "")
	if err != nil {
		panic(err)
	}

	ioc = server.IOC{
		Version:       "test",
		Database:      db,
		Spotify:       spotify.New("", "", ""),
		Summarizer:    mood.New("", "", ""),
		SessionSecret: []byte("00000000000000000000000000000000"),
		SessionTTL:    24 * time.Hour,
	}
	if configure != nil {
		configure(&ioc)
	}
	engine = server.EchoEngine(ioc)

	return engine, ioc, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func createWhisper(ioc server.IOC, content, category string) *model.Whisper {
	whisper := &model.Whisper{
		Content:  content,
		Category: category,
	}
	if err := ioc.Database.Save(whisper); err != nil {
		panic(err)
	}
	return whisper
}
