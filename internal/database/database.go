package database

import (
	"whisperwall/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		WhisperInteraction
	}

	// A WhisperInteraction defines all the methods used to interact with whisper record(s).
	WhisperInteraction interface {
		// FindWhisper returns the whisper for the given id.
		FindWhisper(id uint64) (*model.Whisper, error)
		// FindRecentWhispers returns up to limit whispers ordered by creation, newest first.
		// limit equals to 0 means all whispers.
		FindRecentWhispers(limit int) ([]*model.Whisper, error)
		// LikeWhisper increments the like counter of the given whisper by 1
		// and returns the new count. found is false when the id is unknown;
		// nothing is written in that case.
		LikeWhisper(id uint64) (likes int, found bool, err error)
	}
)
