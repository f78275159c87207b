package tui

import (
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/columns"
	"github.com/gcla/gowid/widgets/framed"
	"github.com/gcla/gowid/widgets/null"
	"github.com/gcla/gowid/widgets/pile"
	"github.com/gcla/gowid/widgets/styled"
	"github.com/gcla/gowid/widgets/text"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"whisperwall/pkg/feed"
)

// A TUI is a text-based interface over the whisper wall.
//
// Keys: f cycles the category filter, m toggles the mirror feed, l likes
// the focused whisper, o toggles the sort order, Ctrl-Q quits.
type TUI struct {
	App *gowid.App
	// Filter is the active category filter of the local feed.
	Filter string

	list   *WhisperList
	detail *framed.Widget
	status *text.Widget
	mood   *text.Widget

	local      []*Item
	mirror     []*Item
	showMirror bool
	sortField  string

	like          func(id uint64) (int, error)
	debouncedLike func(f func())
}

// New returns a new TUI. like posts a like for a local whisper and returns
// the authoritative new count.
func New(like func(id uint64) (int, error)) (*TUI, error) {
	ui := &TUI{
		Filter:        feed.CategoryAll,
		sortField:     "CreatedAt",
		like:          like,
		debouncedLike: debounce.New(300 * time.Millisecond),
	}

	app, err := gowid.NewApp(layout(ui))
	if err != nil {
		return ui, errors.Wrap(err, "could not create application widgets")
	}

	ui.App = app
	return ui, nil
}

// Run starts the application and thus the event loop.
func (ui *TUI) Run() {
	ui.App.MainLoop(gowid.UnhandledInputFunc(ui.unhandled))
}

// Cleanup cleans the application properly (in case of panic).
func (ui *TUI) Cleanup() {
	ui.App.GetScreen().Fini() // Cleanup tcell screen's objects
}

// Register registers a local whisper item.
func (ui *TUI) Register(i *Item) {
	ui.local = append(ui.local, i)
	ui.list.Register(i)
}

// RegisterMirror registers a mirror feed item, reachable with the m key.
func (ui *TUI) RegisterMirror(i *Item) {
	ui.mirror = append(ui.mirror, i)
}

// SetMood displays the generated mood blurb above the feed.
func (ui *TUI) SetMood(mood string) {
	ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
		ui.mood.SetText(mood, app)
	}))
}

// DisplayStatus displays a message in the status bar (aka notifications).
func (ui *TUI) DisplayStatus(message string) {
	ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
		ui.status.SetText(message, ui.App)
	}))
	go func() {
		timer := time.NewTimer(1200 * time.Millisecond)
		<-timer.C
		ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
			ui.status.SetText("", ui.App)
		}))
	}()
}

////////////////////
//                //
// Layout         //
//                //
////////////////////

func layout(ui *TUI) gowid.AppArgs {
	ui.list = NewWhisperList(ui)
	ui.detail = framed.NewUnicode(null.New())
	ui.status = text.New("")
	ui.mood = text.New("")

	feedPane := columns.New([]gowid.IContainerWidget{
		&gowid.ContainerWidget{
			IWidget: styled.New(framed.NewUnicode(ui.list), gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithWeight{W: 1},
		},
		&gowid.ContainerWidget{
			IWidget: styled.New(ui.detail, gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithWeight{W: 2},
		},
	})

	main := pile.New([]gowid.IContainerWidget{
		&gowid.ContainerWidget{
			IWidget: styled.New(framed.NewUnicode(ui.mood), gowid.MakePaletteRef("mood")),
			D:       gowid.RenderWithWeight{W: 2},
		},
		&gowid.ContainerWidget{IWidget: feedPane, D: gowid.RenderWithWeight{W: 18}},
		&gowid.ContainerWidget{
			IWidget: styled.New(framed.NewUnicode(ui.status), gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithWeight{W: 2},
		},
	})

	return gowid.AppArgs{
		View: main,
		Palette: &gowid.Palette{
			"mainpane": gowid.MakePaletteEntry(gowid.ColorLightGray, gowid.ColorBlack),
			"mood":     gowid.MakePaletteEntry(gowid.ColorRed, gowid.ColorBlack),
			// List style
			"normal":  gowid.MakePaletteEntry(gowid.ColorLightGray, gowid.ColorBlack),
			"focused": gowid.MakePaletteEntry(gowid.ColorBlack, gowid.ColorRed),
			// Whisper content style
			"keyword": gowid.MakePaletteEntry(gowid.ColorRed, gowid.ColorBlack),
			"dim":     gowid.MakePaletteEntry(gowid.ColorLightGray, gowid.ColorBlack),
		},
		Log: NewLogger(),
	}
}

////////////////////
//                //
// Events         //
//                //
////////////////////

func (ui *TUI) unhandled(app gowid.IApp, ev any) bool {
	evk, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	handled := false

	switch evk.Key() {
	case tcell.KeyCtrlQ:
		handled = true
		app.Quit()
	case tcell.KeyRune:
		handled = true
		switch evk.Rune() {
		case 'f':
			ui.cycleFilter(app)
		case 'm':
			ui.toggleSource(app)
		case 'l':
			ui.likeFocused()
		case 'o':
			ui.toggleSort()
		default:
			handled = false
		}
	}

	return handled
}

func (ui *TUI) cycleFilter(app gowid.IApp) {
	if ui.showMirror {
		ui.DisplayStatus("The mirror feed has no categories")
		return
	}

	ui.Filter = feed.NextFilter(ui.Filter)
	ui.list.SetItems(ui.filtered(), app)
	ui.DisplayStatus("filter: " + ui.Filter)
}

func (ui *TUI) toggleSource(app gowid.IApp) {
	if !ui.showMirror && len(ui.mirror) == 0 {
		ui.DisplayStatus("The mirror feed is not available")
		return
	}

	ui.showMirror = !ui.showMirror
	if ui.showMirror {
		ui.list.SetItems(ui.mirror, app)
		ui.DisplayStatus("source: mirror")
		return
	}
	ui.list.SetItems(ui.filtered(), app)
	ui.DisplayStatus("source: local")
}

func (ui *TUI) likeFocused() {
	if ui.showMirror {
		ui.DisplayStatus("Likes are local-feed only here")
		return
	}

	item := ui.list.Focused()
	if item == nil {
		return
	}

	// Rapid keypresses collapse into a single request.
	ui.debouncedLike(func() {
		likes, err := ui.like(item.ID)
		if err != nil {
			ui.DisplayStatus(errors.Wrap(err, "could not like whisper").Error())
			return
		}

		ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
			item.SetLikes(likes, app)
		}))
		ui.DisplayStatus(fmt.Sprintf("liked (%d)", likes))
	})
}

func (ui *TUI) toggleSort() {
	if ui.showMirror {
		ui.DisplayStatus("The mirror feed keeps its order")
		return
	}

	if ui.sortField == "CreatedAt" {
		ui.sortField = "Likes"
	} else {
		ui.sortField = "CreatedAt"
	}

	ui.list.Sort(ui.sortField)
	ui.DisplayStatus("sort: " + ui.sortField)
}

func (ui *TUI) filtered() []*Item {
	if ui.Filter == feed.CategoryAll {
		return ui.local
	}

	filtered := make([]*Item, 0, len(ui.local))
	for _, item := range ui.local {
		if item.Category == ui.Filter {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
