package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"whisperwall/pkg/feed"
	"whisperwall/pkg/libww"
)

func TestFilterByCategory(t *testing.T) {
	whispers := []libww.Whisper{
		{ID: 4, Content: "d", Category: "Love"},
		{ID: 3, Content: "c", Category: "Rant"},
		{ID: 2, Content: "b", Category: "Love"},
		{ID: 1, Content: "a", Category: "General"},
	}

	filtered := feed.FilterByCategory(whispers, "Love")
	assert.Len(t, filtered, 2)
	// Input order is preserved.
	assert.Equal(t, uint64(4), filtered[0].ID)
	assert.Equal(t, uint64(2), filtered[1].ID)

	assert.Empty(t, feed.FilterByCategory(whispers, "Funny"))
	assert.Equal(t, whispers, feed.FilterByCategory(whispers, feed.CategoryAll))
}

func TestNextFilter(t *testing.T) {
	assert.Equal(t, "General", feed.NextFilter(feed.CategoryAll))
	assert.Equal(t, "Love", feed.NextFilter("General"))
	// Wraps around.
	assert.Equal(t, feed.CategoryAll, feed.NextFilter("Funny"))
	// Unknown filters reset.
	assert.Equal(t, feed.CategoryAll, feed.NextFilter("Gossip"))
}
