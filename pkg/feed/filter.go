package feed

import "whisperwall/pkg/libww"

// CategoryAll is the filter sentinel that keeps every whisper.
// It is not a valid whisper category.
const CategoryAll = "All"

// Filters cycles through CategoryAll followed by the whisper categories.
var Filters = append([]string{CategoryAll}, libww.Categories...)

// FilterByCategory returns the whispers of the given category, preserving
// the input order. CategoryAll returns the input unchanged.
func FilterByCategory(whispers []libww.Whisper, category string) []libww.Whisper {
	if category == CategoryAll {
		return whispers
	}

	filtered := make([]libww.Whisper, 0, len(whispers))
	for _, whisper := range whispers {
		if whisper.Category == category {
			filtered = append(filtered, whisper)
		}
	}
	return filtered
}

// NextFilter returns the filter following the given one in Filters,
// wrapping around. An unknown filter resets to CategoryAll.
func NextFilter(current string) string {
	for i, filter := range Filters {
		if filter == current {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return CategoryAll
}
