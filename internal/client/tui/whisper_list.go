package tui

import (
	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/list"
	"github.com/gdamore/tcell/v2"
	"whisperwall/pkg/feed"
	"whisperwall/pkg/libww"
)

// A WhisperList is a list of Items to interract with.
// It implements gowid.IWidget by delegating to its presentation.
type WhisperList struct {
	ui           *TUI
	presentation list.IWidget
	abstraction  *whisperListAbstraction
}

// NewWhisperList returns a new WhisperList.
func NewWhisperList(ui *TUI) *WhisperList {
	abs := newWhisperListAbstraction()

	return &WhisperList{
		ui:           ui,
		presentation: list.New(abs),
		abstraction:  abs,
	}
}

// Register registers an item to this list.
func (w *WhisperList) Register(i *Item) {
	n := w.abstraction.Add(i)
	if n == 1 {
		w.hackToDisplayFirstWhisper()
	}
}

// SetItems replaces the displayed items, e.g. on filter or source change.
func (w *WhisperList) SetItems(items []*Item, app gowid.IApp) {
	w.abstraction.Set(items)
	if w.abstraction.Length() > 0 {
		w.ui.detail.SetTitle(w.abstraction.ItemAt(0).Title(), app)
		w.ui.detail.SetSubWidget(w.abstraction.ItemAt(0).Detail(), app)
	}
}

// Focused returns the item under focus, or nil for an empty list.
func (w *WhisperList) Focused() *Item {
	if item, ok := w.abstraction.At(w.abstraction.Focus()).(*Item); ok {
		return item
	}
	return nil
}

// Sort orders items by the given whisper field through the shared feed
// ordering.
func (w *WhisperList) Sort(field string) {
	if !w.abstraction.Sort(field) {
		w.ui.DisplayStatus("No sort has been applied")
		return
	}

	if w.abstraction.Length() > 0 {
		w.hackToDisplayFirstWhisper()
	}
}

// Hack to display first whisper content.
func (w *WhisperList) hackToDisplayFirstWhisper() {
	w.ui.detail.SetTitle(w.abstraction.ItemAt(0).Title(), w.ui.App)
	w.ui.detail.SetSubWidget(w.abstraction.ItemAt(0).Detail(), w.ui.App)
}

////////////////////
//                //
// Delegates      //
//                //
////////////////////

// Render implements gowid.IWidget
func (w *WhisperList) Render(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.ICanvas {
	return w.presentation.Render(size, focus, app)
}

// RenderSize implements gowid.IWidget
func (w *WhisperList) RenderSize(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.IRenderBox {
	return w.presentation.RenderSize(size, focus, app)
}

// UserInput implements gowid.IWidget
func (w *WhisperList) UserInput(ev any, size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) bool {
	ok := w.presentation.UserInput(ev, size, focus, app)

	if evm, ok := ev.(*tcell.EventMouse); !ok || evm.Buttons() != tcell.ButtonNone {
		// Avoid next action on mouse hover event
		if item, ok := w.abstraction.At(w.abstraction.Focus()).(*Item); ok {
			// Set detail pane title
			w.ui.detail.SetTitle(item.Title(), app)
			// Display the whisper
			w.ui.detail.SetSubWidget(item.Detail(), app)
		}
	}
	return ok
}

// Selectable implements gowid.IWidget
func (w *WhisperList) Selectable() bool {
	return w.presentation.Selectable()
}

////////////////////
//                //
// Abstraction    //
//                //
////////////////////

// A whisperListAbstraction is a list of Items to interract with.
// It implements list.IWalker interface.
type whisperListAbstraction struct {
	widgets   []*Item
	registred map[string]bool
	focus     list.ListPos
}

func newWhisperListAbstraction() *whisperListAbstraction {
	return &whisperListAbstraction{
		widgets:   make([]*Item, 0),
		registred: make(map[string]bool, 0),
		focus:     0,
	}
}

func (w *whisperListAbstraction) Add(item *Item) int {
	if w.registred[item.key] {
		// The feed is refreshed by restarting the application.
		return len(w.widgets)
	}

	w.widgets = append(w.widgets, item)
	w.registred[item.key] = true
	return len(w.widgets)
}

func (w *whisperListAbstraction) Set(items []*Item) {
	w.widgets = items
	w.registred = make(map[string]bool, len(items))
	for _, item := range items {
		w.registred[item.key] = true
	}
	w.focus = 0
}

func (w *whisperListAbstraction) Sort(field string) bool {
	whispers := make([]libww.Whisper, 0, len(w.widgets))
	byID := make(map[uint64]*Item, len(w.widgets))
	for _, item := range w.widgets {
		if item.ID == 0 {
			// Mirror items carry no whisper to order on.
			return false
		}
		byID[item.ID] = item
		whispers = append(whispers, item.Whisper())
	}

	feed.SortBy(whispers, field)
	for i, whisper := range whispers {
		w.widgets[i] = byID[whisper.ID]
	}
	return true
}

func (w *whisperListAbstraction) ItemAt(i int) *Item {
	return w.widgets[i]
}

func (w *whisperListAbstraction) First() list.IWalkerPosition {
	if len(w.widgets) == 0 {
		return nil
	}
	return list.ListPos(0)
}

func (w *whisperListAbstraction) Last() list.IWalkerPosition {
	if len(w.widgets) == 0 {
		return nil
	}
	return list.ListPos(len(w.widgets) - 1)
}

func (w *whisperListAbstraction) Length() int {
	return len(w.widgets)
}

func (w *whisperListAbstraction) At(pos list.IWalkerPosition) gowid.IWidget {
	var res gowid.IWidget
	ipos := int(pos.(list.ListPos))
	if ipos >= 0 && ipos < w.Length() {
		res = w.widgets[ipos]
	}
	return res
}

func (w *whisperListAbstraction) Focus() list.IWalkerPosition {
	return w.focus
}

func (w *whisperListAbstraction) SetFocus(focus list.IWalkerPosition, app gowid.IApp) {
	w.focus = focus.(list.ListPos)
}

func (w *whisperListAbstraction) Next(ipos list.IWalkerPosition) list.IWalkerPosition {
	pos := ipos.(list.ListPos)
	if int(pos) == w.Length()-1 {
		return list.ListPos(-1)
	}
	return pos + 1
}

func (w *whisperListAbstraction) Previous(ipos list.IWalkerPosition) list.IWalkerPosition {
	pos := ipos.(list.ListPos)
	if pos-1 == -1 {
		return list.ListPos(-1)
	}
	return pos - 1
}
