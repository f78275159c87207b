package tui

import (
	"fmt"
	"strings"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/pile"
	"github.com/gcla/gowid/widgets/selectable"
	"github.com/gcla/gowid/widgets/styled"
	"github.com/gcla/gowid/widgets/text"
	"whisperwall/pkg/feed"
	"whisperwall/pkg/libww"
)

// An Item is the graphical representation of a feed entry, either a local
// whisper or a mirror message.
type Item struct {
	// ID is the whisper identifier; 0 for mirror items.
	ID       uint64
	Category string

	key          string
	whisper      libww.Whisper
	presentation gowid.IWidget
	line         *text.Widget
	detail       gowid.IWidget
	likes        int
	summary      func(likes int) string
}

// NewItem returns a new Item for a local whisper.
func NewItem(whisper libww.Whisper) *Item {
	w := &Item{
		ID:       whisper.ID,
		Category: whisper.Category,
		key:      fmt.Sprintf("w/%d", whisper.ID),
		whisper:  whisper,
		likes:    whisper.Likes,
		summary: func(likes int) string {
			return fmt.Sprintf("[%s] %s (%d)", whisper.Category, firstLine(whisper.Content), likes)
		},
		detail: whisperDetail(whisper),
	}
	w.finalize()
	return w
}

// NewMirrorItem returns a new Item for a mirror message.
func NewMirrorItem(message libww.MirrorMessage) *Item {
	w := &Item{
		key:   fmt.Sprintf("m/%d", message.ID),
		likes: message.Likes,
		summary: func(likes int) string {
			return fmt.Sprintf("#%d %s (%d)", message.ID, firstLine(message.Msg), likes)
		},
		detail: pile.NewFlow(
			highlightedText(message.Msg),
			text.New(""),
			styled.New(text.New(fmt.Sprintf("mirror message #%d", message.ID)), gowid.MakePaletteRef("dim")),
		),
	}
	w.finalize()
	return w
}

func (w *Item) finalize() {
	w.line = text.New(w.summary(w.likes))
	w.presentation = selectable.New(
		styled.NewExt(
			w.line,
			gowid.MakePaletteRef("normal"), gowid.MakePaletteRef("focused"),
		),
	)
}

// Title returns the detail pane title.
func (w *Item) Title() string {
	if w.Category != "" {
		return w.Category
	}
	return "Mirror"
}

// Detail returns the detail pane content of the Item.
func (w *Item) Detail() gowid.IWidget {
	return w.detail
}

// Likes returns the displayed like count.
func (w *Item) Likes() int {
	return w.likes
}

// Whisper returns the underlying whisper; the zero value for mirror items.
func (w *Item) Whisper() libww.Whisper {
	return w.whisper
}

// SetLikes updates the displayed like count with the authoritative value.
func (w *Item) SetLikes(likes int, app gowid.IApp) {
	w.likes = likes
	w.whisper.Likes = likes
	w.line.SetText(w.summary(likes), app)
}

func whisperDetail(whisper libww.Whisper) gowid.IWidget {
	widgets := []interface{}{highlightedText(whisper.Content)}

	meta := make([]string, 0, 3)
	if whisper.Recipient != "" {
		meta = append(meta, "to "+whisper.Recipient)
	}
	if whisper.Sender != "" {
		meta = append(meta, "from "+whisper.Sender)
	}
	if whisper.Feeling != "" {
		meta = append(meta, "feeling "+whisper.Feeling)
	}
	if len(meta) > 0 {
		widgets = append(widgets,
			text.New(""),
			styled.New(text.New(strings.Join(meta, ", ")), gowid.MakePaletteRef("dim")),
		)
	}

	if whisper.Song != "" {
		song := feed.ClassifySong(whisper.Song)
		label := "♪ search: " + song.SearchURL
		if song.Embeddable {
			label = "♪ " + song.EmbedURL
		}
		widgets = append(widgets, text.New(""), text.New(label))
	}

	return pile.NewFlow(widgets...)
}

// highlightedText renders content with its keyword spans styled.
func highlightedText(content string) *text.Widget {
	segments := make([]text.ContentSegment, 0)
	for _, span := range feed.Highlight(content) {
		if span.Keyword {
			segments = append(segments, text.StyledContent(span.Text, gowid.MakePaletteRef("keyword")))
			continue
		}
		segments = append(segments, text.StringContent(span.Text))
	}
	if len(segments) == 0 {
		segments = append(segments, text.StringContent(""))
	}

	return text.NewFromContent(text.NewContent(segments))
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i] + "…"
	}
	return content
}

////////////////////
//                //
// Delegates      //
//                //
////////////////////

// Render implements gowid.IWidget
func (w *Item) Render(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.ICanvas {
	return w.presentation.Render(size, focus, app)
}

// RenderSize implements gowid.IWidget
func (w *Item) RenderSize(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.IRenderBox {
	return w.presentation.RenderSize(size, focus, app)
}

// UserInput implements gowid.IWidget
func (w *Item) UserInput(ev any, size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) bool {
	return w.presentation.UserInput(ev, size, focus, app)
}

// Selectable implements gowid.IWidget
func (w *Item) Selectable() bool {
	return w.presentation.Selectable()
}
