// Package feed provides presentation helpers shared by the whisper feed
// renderers: category filtering, keyword highlighting, song link
// classification and sorting.
package feed
