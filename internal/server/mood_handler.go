package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"whisperwall/internal/database"
	"whisperwall/internal/mood"
)

// moodSampleSize is the number of recent whispers fed to the summarizer.
const moodSampleSize = 20

// moodsummary contains the mood summary handler.
type moodsummary struct {
	db         database.Client
	summarizer *mood.Summarizer
}

///// Summary
////
//

// Summary renders the generated mood blurb of the recent whispers.
// It never fails: any summarizer error collapses to the static fallback.
func (h *moodsummary) Summary(c echo.Context) error {
	summary := mood.Fallback

	whispers, err := h.db.FindRecentWhispers(moodSampleSize)
	if err != nil {
		logrus.WithError(err).Warn("could not load whispers for the mood summary")
		return c.JSON(http.StatusOK, echo.Map{"summary": summary})
	}

	contents := make([]string, 0, len(whispers))
	for _, whisper := range whispers {
		contents = append(contents, whisper.Content)
	}

	if len(contents) > 0 && h.summarizer.Configured() {
		generated, err := h.summarizer.Summarize(contents)
		if err != nil {
			logrus.WithError(err).Warn("falling back to the static mood summary")
		} else {
			summary = generated
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary": summary,
	})
}
