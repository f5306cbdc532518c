package term

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/jesseduffield/lazycore/pkg/boxlayout"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/refresh"
	"github.com/termchat/termchat-core/internal/wintree"
)

func windowViewName(w *wintree.Window) string { return fmt.Sprintf("chat-%d", w.Number) }

// drawWindow repaints one wintree.Window's gocui.View, but only clears and
// rewrites its contents if the window's dirty flag is above Clean. This is
// the one place the dirty-region protocol meets gocui: a Clean level skips
// the window and any other level clears and fully redraws it, so only
// dirtied windows redraw.
func (r *Renderer) drawWindow(g *gocui.Gui, w *wintree.Window) error {
	name := windowViewName(w)
	cr := w.ChatRect
	v, err := g.SetView(name, cr.X, cr.Y, cr.X+cr.Width-1, cr.Y+cr.Height-1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	isNew := err == gocui.ErrUnknownView
	if isNew {
		v.Wrap = true
		v.Frame = false
		w.Refresh.Ask(refresh.Full)
	}

	lvl := w.Refresh.Clear()
	if lvl == refresh.Clean && !isNew {
		return nil
	}

	v.Clear()
	buf, ok := r.Buffers.ByID(w.BufferID)
	if !ok {
		return nil
	}
	r.renderBufferInto(v, buf, cr.Height)

	if w == r.Windows.Current() {
		_, _ = g.SetCurrentView(name)
	}
	return nil
}

// renderBufferInto writes the last `rows` displayed lines of buf (or its
// merged mixed view) into v, one wrapped terminal line per formatted line.
func (r *Renderer) renderBufferInto(v *gocui.View, buf *bufstore.Buffer, rows int) {
	lines := buf.MixedLines()
	n := lines.Len()
	start := 0
	if n > rows {
		start = n - rows
	}
	for i := start; i < n; i++ {
		l := lines.At(i)
		if l == nil || !l.Displayed {
			continue
		}
		if l.Prefix != "" {
			fmt.Fprintf(v, "%s %s\n", l.Prefix, l.Message)
		} else {
			fmt.Fprintln(v, l.Message)
		}
	}
}

func (r *Renderer) drawNicklist(g *gocui.Gui, d boxlayout.Dimensions) error {
	v, err := g.SetView("nicklist", d.X0, d.Y0, d.X1, d.Y1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Frame = true
		v.Title = "nicks"
	}
	v.Clear()

	w := r.Windows.Current()
	if w == nil {
		return nil
	}
	nl, ok := r.Nicklists[w.BufferID]
	if !ok {
		return nil
	}
	for i := 0; i < nl.Len(); i++ {
		e := nl.Get(i)
		switch {
		case e.IsGroup:
			fmt.Fprintf(v, "%s\n", e.Name)
		default:
			fmt.Fprintf(v, " %1s%s\n", e.Prefix, e.Name)
		}
	}
	return nil
}

func (r *Renderer) drawStatus(g *gocui.Gui, d boxlayout.Dimensions) error {
	v, err := g.SetView("status", d.X0, d.Y0, d.X1, d.Y1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Frame = false
	}
	v.Clear()

	w := r.Windows.Current()
	if w == nil {
		return nil
	}
	buf, ok := r.Buffers.ByID(w.BufferID)
	if !ok {
		return nil
	}
	fmt.Fprintf(v, "[%d] %s %s", buf.Number, buf.FullName(), buf.Title())
	return nil
}

func (r *Renderer) drawInput(g *gocui.Gui, d boxlayout.Dimensions) error {
	v, err := g.SetView("input", d.X0, d.Y0, d.X1, d.Y1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Frame = false
		v.Editable = false // content is mirrored from inputline.Editor, not gocui's own text area
	}
	v.Clear()
	fmt.Fprint(v, promptLine(r.Input.Text(), r.Input.Cursor()))
	return nil
}

// promptLine renders the cursor as a split point since gocui text-area
// cursor placement doesn't apply to a manually-drawn, non-editable view.
func promptLine(text string, cursor int) string {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	var b strings.Builder
	b.WriteString(string(runes[:cursor]))
	b.WriteByte('|')
	b.WriteString(string(runes[cursor:]))
	return b.String()
}
