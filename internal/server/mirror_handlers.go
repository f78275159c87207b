package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"whisperwall/internal/mirror"
	"whisperwall/internal/wwerror"
)

// mirrorstore contains all mirror feed handlers.
// client is nil when the hosted store credentials were absent at process
// start; every call then renders the not-configured condition.
type mirrorstore struct {
	client *mirror.Client
}

func (h *mirrorstore) notConfigured() error {
	return wwerror.NotConfigured(
		"Mirror store is not configured.",
		"Set supabase.url and supabase.anon_key in the configuration or environment.",
	)
}

// upstream maps a mirror store rejection to a rendered API error.
// Transport failures stay generic 500s.
func upstream(err error) error {
	if uerr, ok := errors.Cause(err).(*mirror.UpstreamError); ok {
		return wwerror.Upstream(uerr.Message, uerr.Hint)
	}
	return err
}

///// Status
////
//

// Status renders whether the mirror store is configured.
func (h *mirrorstore) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"configured": h.client != nil,
	})
}

///// List
////
//

// List renders the mirror feed, newest first.
func (h *mirrorstore) List(c echo.Context) error {
	if h.client == nil {
		return h.notConfigured()
	}

	messages, err := h.client.List()
	if err != nil {
		return upstream(err)
	}

	return c.JSON(http.StatusOK, messages)
}

///// Create
////
//

type createMessageParams struct {
	Msg string `json:"msg"`
}

// Create inserts a new message on the mirror feed and renders its representation.
func (h *mirrorstore) Create(c echo.Context) error {
	if h.client == nil {
		return h.notConfigured()
	}

	// Filter params
	var params createMessageParams
	if err := c.Bind(&params); err != nil {
		return wwerror.Validation("Could not get message params.")
	}

	params.Msg = strings.TrimSpace(params.Msg)
	if params.Msg == "" {
		return wwerror.Validation("Message can't be empty.")
	}

	message, err := h.client.Create(params.Msg)
	if err != nil {
		return upstream(err)
	}

	return c.JSON(http.StatusCreated, message)
}

///// Like
////
//

type likeMessageParams struct {
	CurrentLikes int `json:"currentLikes"`
}

// Like writes currentLikes+1 as an absolute update and renders the updated
// record. The count comes from the caller so concurrent likes can lose an
// increment; last write wins.
func (h *mirrorstore) Like(c echo.Context) error {
	if h.client == nil {
		return h.notConfigured()
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return wwerror.Validation("Malformed message id.")
	}

	// Filter params
	var params likeMessageParams
	if err := c.Bind(&params); err != nil {
		return wwerror.Validation("Could not get like params.")
	}

	message, err := h.client.Like(id, params.CurrentLikes)
	if err != nil {
		return upstream(err)
	}

	return c.JSON(http.StatusOK, message)
}
