package wintree

import "github.com/termchat/termchat-core/internal/refresh"

// Resize recomputes every rectangle top-down from the new terminal
// dimensions by applying each split node's stored split_pct, so repeated
// resizes don't drift. Returns the windows whose rectangle actually changed
// (in size or position), for the caller to emit window_resized against.
func (t *Tree) Resize(width, height int) []*Window {
	t.width, t.height = width, height
	var resized []*Window
	t.layout(t.root, Rect{0, 0, width, height}, &resized)
	t.recomputeChatRects()
	for _, w := range resized {
		w.Refresh.Ask(refresh.Full)
	}
	return resized
}

func (t *Tree) layout(n *node, r Rect, resized *[]*Window) {
	if n.isLeaf() {
		if n.window.Rect != r {
			n.window.Rect = r
			*resized = append(*resized, n.window)
		}
		return
	}

	if n.orientation == Horizontal {
		topH := r.Height * n.splitPct / 100
		t.layout(n.first, Rect{r.X, r.Y, r.Width, topH}, resized)
		t.layout(n.second, Rect{r.X, r.Y + topH, r.Width, r.Height - topH}, resized)
		return
	}

	leftW := r.Width * n.splitPct / 100
	t.layout(n.first, Rect{r.X, r.Y, leftW, r.Height}, resized)
	t.layout(n.second, Rect{r.X + leftW, r.Y, r.Width - leftW, r.Height}, resized)
}

// recomputeChatRects reserves one row for the input/status bar at the
// bottom of every leaf's rectangle; a real renderer lays out more bars, but
// the core only needs to know the chat sub-rectangle exists and is
// non-negative.
func (t *Tree) recomputeChatRects() {
	for w := t.head; w != nil; w = w.next {
		h := w.Rect.Height - 1
		if h < 0 {
			h = 0
		}
		w.ChatRect = Rect{w.Rect.X, w.Rect.Y, w.Rect.Width, h}
	}
}
