package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"whisperwall/pkg/feed"
)

func TestClassifySongEmbeddable(t *testing.T) {
	song := feed.ClassifySong("https://open.spotify.com/track/abc123")

	assert.True(t, song.Embeddable)
	assert.Equal(t, "track", song.Type)
	assert.Equal(t, "abc123", song.ID)
	assert.Equal(t, "https://open.spotify.com/embed/track/abc123", song.EmbedURL)
}

func TestClassifySongLocaleSegment(t *testing.T) {
	song := feed.ClassifySong("https://open.spotify.com/intl-fr/album/4LH4d3cOWNNsVw41Gqt2kv")

	assert.True(t, song.Embeddable)
	assert.Equal(t, "album", song.Type)
	assert.Equal(t, "4LH4d3cOWNNsVw41Gqt2kv", song.ID)
}

func TestClassifySongFreeText(t *testing.T) {
	song := feed.ClassifySong("Perfect by Ed Sheeran")

	assert.False(t, song.Embeddable)
	assert.Equal(t, "https://open.spotify.com/search/Perfect%20by%20Ed%20Sheeran", song.SearchURL)
}

func TestClassifySongNonCatalogLink(t *testing.T) {
	// A spotify link that is not a track/album/playlist stays a search query.
	song := feed.ClassifySong("https://open.spotify.com/artist/6olE6TJLqED3rqDCT0FyPh")
	assert.False(t, song.Embeddable)

	song = feed.ClassifySong("https://example.com/track/abc123")
	assert.False(t, song.Embeddable)
}
