package feed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"whisperwall/pkg/feed"
)

func TestHighlight(t *testing.T) {
	spans := feed.Highlight("I miss you so much")

	assert.Equal(t, []feed.Span{
		{Text: "I "},
		{Text: "miss", Keyword: true},
		{Text: " you so much"},
	}, spans)
}

func TestHighlightCaseAndPunctuation(t *testing.T) {
	spans := feed.Highlight("Goodbye, my Love!")

	assert.Equal(t, []feed.Span{
		{Text: "Goodbye,", Keyword: true},
		{Text: " my "},
		{Text: "Love!", Keyword: true},
	}, spans)
}

func TestHighlightNoKeyword(t *testing.T) {
	spans := feed.Highlight("nothing to see here")

	assert.Equal(t, []feed.Span{{Text: "nothing to see here"}}, spans)
}

func TestHighlightReconstructsInput(t *testing.T) {
	texts := []string{
		"I miss you so much",
		"  leading and trailing  ",
		"love\nlove\tlove",
		"",
		"secret... or not",
	}

	for _, text := range texts {
		var rebuilt strings.Builder
		for _, span := range feed.Highlight(text) {
			rebuilt.WriteString(span.Text)
		}
		assert.Equal(t, text, rebuilt.String())
	}
}

func TestHighlightKeywordInsideWord(t *testing.T) {
	// "lovely" is not the keyword "love".
	spans := feed.Highlight("what a lovely day")
	assert.Equal(t, []feed.Span{{Text: "what a lovely day"}}, spans)
}
