package feed

import (
	"strings"
	"unicode"
)

// keywords are the emotionally-loaded words emphasized in rendered whispers.
// Lookup happens on the lowercased token with trailing punctuation stripped.
var keywords = map[string]bool{
	"love": true, "miss": true, "sorry": true, "hate": true, "happy": true,
	"sad": true, "secret": true, "crush": true, "heart": true, "alone": true,
	"regret": true, "wish": true, "hope": true, "forever": true, "goodbye": true,
}

// A Span is a run of text tagged as keyword or not. Concatenating the Text
// of the spans reproduces the highlighted input exactly.
type Span struct {
	Text    string
	Keyword bool
}

// Highlight splits text into spans, marking the keyword tokens. Whitespace
// and punctuation are preserved in the surrounding plain spans.
func Highlight(text string) []Span {
	spans := make([]Span, 0)
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for _, token := range splitKeepingSpaces(text) {
		if isKeyword(token) {
			flush()
			spans = append(spans, Span{Text: token, Keyword: true})
			continue
		}
		plain.WriteString(token)
	}
	flush()

	return spans
}

func isKeyword(token string) bool {
	if token == "" || unicode.IsSpace(rune(token[0])) {
		return false
	}
	key := strings.ToLower(strings.TrimRight(token, `.,!?;:'"`))
	return keywords[key]
}

// splitKeepingSpaces tokenizes on whitespace boundaries without dropping
// the whitespace runs, so the tokens concatenate back to the input.
func splitKeepingSpaces(text string) []string {
	tokens := make([]string, 0)
	var current strings.Builder
	var inSpace bool

	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > 0 && space != inSpace {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		inSpace = space
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
