// Package term adapts the engine's window tree, buffer store, input editor
// and nicklist onto gocui: it translates dirty-region refresh requests into
// gocui.View redraws, decodes gocui key events into inputline.Editor calls,
// and composes the terminal chrome (nicklist sidebar, status bar, input
// bar) around the chat area using lazycore's boxlayout.
package term

import (
	"github.com/jesseduffield/gocui"
	"github.com/jesseduffield/lazycore/pkg/boxlayout"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/engine"
	"github.com/termchat/termchat-core/internal/inputline"
	"github.com/termchat/termchat-core/internal/nicklist"
	"github.com/termchat/termchat-core/internal/wintree"
)

const (
	minTermWidth  = 20
	minTermHeight = 6

	inputBarHeight  = 1
	statusBarHeight = 1
)

// Renderer owns the gocui.Gui and the mapping from core state onto views.
// One Renderer serves the whole process; windows within the wintree.Tree
// each get their own "chat-<n>" view, with a shared sidebar/status/input
// chrome arranged by boxlayout around them. Windows only own the chat
// rectangle; the bars are chrome the core doesn't model as windows.
type Renderer struct {
	g       *gocui.Gui
	Engine  *engine.Engine
	Buffers *bufstore.Store
	Windows *wintree.Tree
	Input   *inputline.Editor

	Nicklists map[int64]*nicklist.List

	ShowNicklist bool

	// OnSubmit and OnHistoryAdd are filled in by the owning application;
	// they let command dispatch and history recording live outside term.
	OnSubmit     inputline.InputCallback
	OnHistoryAdd inputline.HistoryAdd
}

// NewRenderer constructs a Renderer bound to an already-initialized gocui.Gui.
func NewRenderer(g *gocui.Gui, e *engine.Engine, buffers *bufstore.Store, windows *wintree.Tree, input *inputline.Editor) *Renderer {
	return &Renderer{
		g:            g,
		Engine:       e,
		Buffers:      buffers,
		Windows:      windows,
		Input:        input,
		Nicklists:    make(map[int64]*nicklist.List),
		ShowNicklist: true,
	}
}

// chromeDimensions arranges the chat area, optional nicklist sidebar,
// status bar and input bar using boxlayout: it builds a boxlayout.Box
// tree from screen size and UI state, then calls boxlayout.ArrangeWindows.
func (r *Renderer) chromeDimensions(width, height int) map[string]boxlayout.Dimensions {
	if width < minTermWidth || height < minTermHeight {
		return boxlayout.ArrangeWindows(&boxlayout.Box{Window: "limit"}, 0, 0, width, height)
	}

	nicklistWeight := 0
	if r.ShowNicklist {
		nicklistWeight = 1
	}

	root := &boxlayout.Box{
		Direction: boxlayout.ROW,
		Children: []*boxlayout.Box{
			{
				Direction: boxlayout.COLUMN,
				Weight:    1,
				Children: []*boxlayout.Box{
					{Window: "chat", Weight: 4},
					{Window: "nicklist", Weight: nicklistWeight},
				},
			},
			{Window: "status", Size: statusBarHeight},
			{Window: "input", Size: inputBarHeight},
		},
	}

	return boxlayout.ArrangeWindows(root, 0, 0, width, height)
}

// Layout is the gocui.Manager entry point: recompute chrome, resize the
// window tree into the chat rectangle, then redraw every dirty window and
// bar view.
func (r *Renderer) Layout(g *gocui.Gui) error {
	width, height := g.Size()
	dims := r.chromeDimensions(width, height)

	if chat, ok := dims["chat"]; ok {
		r.Engine.RequestSIGWINCH(dimWidth(chat), dimHeight(chat))
	}

	for _, w := range r.Windows.Windows() {
		if err := r.drawWindow(g, w); err != nil {
			return err
		}
	}

	if nl, ok := dims["nicklist"]; ok && r.ShowNicklist && dimWidth(nl) > 0 {
		if err := r.drawNicklist(g, nl); err != nil {
			return err
		}
	} else if v, err := g.View("nicklist"); err == nil {
		_ = g.DeleteView(v.Name())
	}

	if st, ok := dims["status"]; ok {
		if err := r.drawStatus(g, st); err != nil {
			return err
		}
	}
	if in, ok := dims["input"]; ok {
		if err := r.drawInput(g, in); err != nil {
			return err
		}
	}
	return nil
}

func dimWidth(d boxlayout.Dimensions) int  { return d.X1 - d.X0 + 1 }
func dimHeight(d boxlayout.Dimensions) int { return d.Y1 - d.Y0 + 1 }
