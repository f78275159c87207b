package server

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"whisperwall/internal/database"
	"whisperwall/internal/model"
	"whisperwall/internal/wwerror"
	"whisperwall/pkg/libww"
)

const (
	// feedLimit caps the feed; there is no pagination beyond it.
	feedLimit = 50
	// minContentLength is the minimum whisper length, counted in runes
	// after trimming whitespace.
	minContentLength = 5
)

// whisper contains all whisper handlers.
type whisper struct {
	db database.Client
}

///// List
////
//

// List renders up to feedLimit whispers, newest first.
// Category filtering happens client-side only.
func (h *whisper) List(c echo.Context) error {
	whispers, err := h.db.FindRecentWhispers(feedLimit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, whispers)
}

///// Create
////
//

type createWhisperParams struct {
	Content   string `json:"content"`
	Category  string `json:"category"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Feeling   string `json:"feeling"`
	Song      string `json:"song"`
}

// Create validates and stores a new whisper, and renders its assigned id.
func (h *whisper) Create(c echo.Context) error {
	// Filter params
	var params createWhisperParams
	if err := c.Bind(&params); err != nil {
		return wwerror.Validation("Could not get whisper params.")
	}

	params.Content = strings.TrimSpace(params.Content)
	if utf8.RuneCountInString(params.Content) < minContentLength {
		return wwerror.Validation("Whisper content must be at least 5 characters.")
	}

	if params.Category == "" {
		params.Category = model.CategoryGeneral
	}
	if !libww.ValidCategory(params.Category) {
		return wwerror.Validation("Unknown whisper category.")
	}

	whisper := &model.Whisper{
		Content:   params.Content,
		Category:  params.Category,
		Recipient: params.Recipient,
		Sender:    params.Sender,
		Feeling:   params.Feeling,
		Song:      params.Song,
	}
	if err := h.db.Save(whisper); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id": whisper.ID,
	})
}

///// Like
////
//

// Like increments the whisper's counter by exactly 1 and renders the
// authoritative new count. An unknown id is acknowledged without writing.
func (h *whisper) Like(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return wwerror.Validation("Malformed whisper id.")
	}

	likes, found, err := h.db.LikeWhisper(id)
	if err != nil {
		return err
	}

	if !found {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"likes":   likes,
	})
}
