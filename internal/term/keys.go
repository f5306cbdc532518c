package term

import (
	"github.com/jesseduffield/gocui"
)

// BindInput wires the input bar view's keystrokes to the shared
// inputline.Editor instead of gocui's own text area, so the same editor
// state backs scripting APIs too.
func (r *Renderer) BindInput(g *gocui.Gui, viewName string) error {
	v, err := g.View(viewName)
	if err != nil {
		return err
	}
	v.Editable = true
	v.Editor = gocui.EditorFunc(r.editInput)
	return nil
}

// editInput decodes one gocui key event into an inputline.Editor call,
// dispatching into our own editor rather than gocui's built-in text buffer.
func (r *Renderer) editInput(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	e := r.Input

	switch {
	case key == gocui.KeyEnter:
		e.Submit(r.handleSubmit, r.handleHistoryAdd)
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		e.DeletePrevChar()
	case key == gocui.KeyDelete:
		e.DeleteNextChar()
	case key == gocui.KeyArrowLeft:
		e.MovePrevChar()
	case key == gocui.KeyArrowRight:
		e.MoveNextChar()
	case key == gocui.KeyArrowUp:
		e.MovePrevLine()
	case key == gocui.KeyArrowDown:
		e.MoveNextLine()
	case key == gocui.KeyHome || (key == gocui.KeyCtrlA && mod == gocui.ModNone):
		e.MoveBeginningOfLine()
	case key == gocui.KeyEnd || (key == gocui.KeyCtrlE && mod == gocui.ModNone):
		e.MoveEndOfLine()
	case key == gocui.KeyCtrlK:
		e.DeleteToLineEnd()
	case key == gocui.KeyCtrlU:
		e.DeleteToLineStart()
	case key == gocui.KeyCtrlW:
		e.DeletePrevWordWhitespace()
	case key == gocui.KeyCtrlT:
		e.TransposeChars()
	case key == gocui.KeyCtrlY:
		e.Paste()
	case key == gocui.KeyTab:
		// left to a completion hook; no-op here.
	case ch != 0:
		e.Insert(string(ch))
	}
}

// handleSubmit and handleHistoryAdd forward to the OnSubmit and
// OnHistoryAdd fields set by the owning application; while those are nil
// they do nothing, so BindInput works standalone.
func (r *Renderer) handleSubmit(text string) bool {
	if r.OnSubmit != nil {
		return r.OnSubmit(text)
	}
	return false
}

func (r *Renderer) handleHistoryAdd(text string) {
	if r.OnHistoryAdd != nil {
		r.OnHistoryAdd(text)
	}
}
