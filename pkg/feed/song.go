package feed

import (
	"net/url"
	"regexp"
)

// spotifyLink matches open.spotify.com track, album and playlist links,
// with or without the locale segment (e.g. /intl-fr/).
var spotifyLink = regexp.MustCompile(`^https?://open\.spotify\.com/(?:intl-[a-zA-Z-]+/)?(track|album|playlist)/([A-Za-z0-9]+)`)

// A Song is the classification of a whisper's song field: either an
// embeddable open.spotify.com link or a free-text search query.
type Song struct {
	Embeddable bool
	// Type and ID are set for embeddable links.
	Type string
	ID   string
	// EmbedURL is the widget URL for embeddable links.
	EmbedURL string
	// SearchURL is the catalog search URL for free text.
	SearchURL string
}

// ClassifySong classifies a whisper's song field. Free text, including
// malformed or non-catalog links, classifies as a search query.
func ClassifySong(song string) Song {
	m := spotifyLink.FindStringSubmatch(song)
	if m == nil {
		return Song{
			SearchURL: "https://open.spotify.com/search/" + url.PathEscape(song),
		}
	}

	return Song{
		Embeddable: true,
		Type:       m[1],
		ID:         m[2],
		EmbedURL:   "https://open.spotify.com/embed/" + m[1] + "/" + m[2],
	}
}
