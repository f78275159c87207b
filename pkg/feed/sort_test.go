package feed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"whisperwall/pkg/feed"
	"whisperwall/pkg/libww"
)

func TestSortByLikes(t *testing.T) {
	whispers := []libww.Whisper{
		{ID: 1, Likes: 2},
		{ID: 2, Likes: 9},
		{ID: 3, Likes: 5},
	}

	feed.SortBy(whispers, "Likes")

	assert.Equal(t, uint64(2), whispers[0].ID)
	assert.Equal(t, uint64(3), whispers[1].ID)
	assert.Equal(t, uint64(1), whispers[2].ID)
}

func TestSortByCreatedAt(t *testing.T) {
	at := func(h int) *time.Time {
		t := time.Date(2026, 8, 20, h, 0, 0, 0, time.UTC)
		return &t
	}
	whispers := []libww.Whisper{
		{ID: 1, CreatedAt: at(8)},
		{ID: 2, CreatedAt: at(12)},
		{ID: 3, CreatedAt: at(10)},
	}

	feed.SortBy(whispers, "CreatedAt")

	// Newest first.
	assert.Equal(t, uint64(2), whispers[0].ID)
	assert.Equal(t, uint64(3), whispers[1].ID)
	assert.Equal(t, uint64(1), whispers[2].ID)
}

func TestSortByCategory(t *testing.T) {
	whispers := []libww.Whisper{
		{ID: 1, Category: "Rant"},
		{ID: 2, Category: "Academic"},
		{ID: 3, Category: "Love"},
	}

	feed.SortBy(whispers, "Category")

	assert.Equal(t, "Academic", whispers[0].Category)
	assert.Equal(t, "Love", whispers[1].Category)
	assert.Equal(t, "Rant", whispers[2].Category)
}

func TestSortByUnknownField(t *testing.T) {
	whispers := []libww.Whisper{
		{ID: 1, Likes: 2},
		{ID: 2, Likes: 9},
	}

	feed.SortBy(whispers, "Content")

	// Unsupported fields leave the order untouched.
	assert.Equal(t, uint64(1), whispers[0].ID)
	assert.Equal(t, uint64(2), whispers[1].ID)
}
