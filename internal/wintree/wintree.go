// Package wintree implements the window layout tree: a binary split tree
// whose leaves own windows, top-down rectangle recomputation on resize,
// per-(window,buffer) scroll state, and the row coordinate map consumed by
// mouse/focus queries.
package wintree

import (
	"errors"

	"github.com/termchat/termchat-core/internal/refresh"
)

// Orientation of an internal split node.
type Orientation int

const (
	Horizontal Orientation = iota // stacks children top/bottom
	Vertical                      // stacks children left/right
)

// Rect is a cell-space rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// minimum size of a pane's chat area plus one row reserved for bars.
const minPaneHeight = 2
const minPaneWidth = 1

var ErrMinimumSize = errors.New("wintree: split would leave a pane below minimum size")
var ErrSiblingNotLeaf = errors.New("wintree: merge requires a leaf sibling")

// node is either a leaf (owns exactly one Window) or an internal split.
type node struct {
	parent *node

	window *Window // non-nil iff leaf

	orientation Orientation
	splitPct    int
	first       *node
	second      *node
}

func (n *node) isLeaf() bool { return n.window != nil }

// Window is a single pane: a rectangle, the buffer it displays, per-buffer
// scroll history, and the row coordinate map filled in by the renderer.
type Window struct {
	Number int
	Rect   Rect
	ChatRect Rect

	BufferID int64

	scrollList []*scrollEntry // index 0 is current

	Coords []CoordCell

	Refresh refresh.Flag

	SavedLayoutPlugin string
	SavedLayoutBuffer string

	leaf *node

	prev, next *Window
}

// Tree owns the split tree, the doubly-linked window list, and focus.
type Tree struct {
	root *node

	head, tail *Window
	current    *Window

	nextNumber int

	width, height int
}

// New creates a tree with a single leaf window covering the whole terminal,
// displaying bufferID.
func New(bufferID int64, width, height int) *Tree {
	t := &Tree{width: width, height: height}
	w := &Window{BufferID: bufferID, Rect: Rect{0, 0, width, height}}
	n := &node{window: w}
	w.leaf = n
	t.root = n
	t.head, t.tail = w, w
	t.current = w
	t.renumber()
	t.recomputeChatRects()
	return t
}

// Windows returns every window in list order.
func (t *Tree) Windows() []*Window {
	out := make([]*Window, 0, 4)
	for w := t.head; w != nil; w = w.next {
		out = append(out, w)
	}
	return out
}

// Current returns the focused window.
func (t *Tree) Current() *Window { return t.current }

func (t *Tree) linkAfter(mark, w *Window) {
	w.prev = mark
	if mark != nil {
		w.next = mark.next
		if mark.next != nil {
			mark.next.prev = w
		} else {
			t.tail = w
		}
		mark.next = w
	} else {
		w.next = t.head
		if t.head != nil {
			t.head.prev = w
		} else {
			t.tail = w
		}
		t.head = w
	}
}

func (t *Tree) unlinkWindow(w *Window) {
	if w.prev != nil {
		w.prev.next = w.next
	} else {
		t.head = w.next
	}
	if w.next != nil {
		w.next.prev = w.prev
	} else {
		t.tail = w.prev
	}
	w.prev, w.next = nil, nil
}

// renumber assigns 1-based Number to every window in document order
// (depth-first, first-child before second-child), matching render order.
func (t *Tree) renumber() {
	n := 0
	var walk func(*node)
	walk = func(nd *node) {
		if nd == nil {
			return
		}
		if nd.isLeaf() {
			n++
			nd.window.Number = n
			return
		}
		walk(nd.first)
		walk(nd.second)
	}
	walk(t.root)
}

// splitLeaf converts w's leaf into an internal split node with two fresh
// leaf children: the first inherits w, the second gets a new window on the
// same buffer.
func (t *Tree) splitLeaf(w *Window, orientation Orientation, pct int) (*Window, error) {
	if pct < 1 || pct > 99 {
		pct = 50
	}
	if !fitsMinimum(w.Rect, orientation, pct) {
		return nil, ErrMinimumSize
	}

	parent := w.leaf
	firstLeaf := &node{parent: parent, window: w}
	newWin := &Window{BufferID: w.BufferID}
	secondLeaf := &node{parent: parent, window: newWin}

	parent.window = nil
	parent.orientation = orientation
	parent.splitPct = pct
	parent.first = firstLeaf
	parent.second = secondLeaf

	w.leaf = firstLeaf
	newWin.leaf = secondLeaf

	t.linkAfter(w, newWin)
	t.renumber()
	t.Resize(t.width, t.height)
	return newWin, nil
}

// SplitHorizontal stacks two panes top/bottom.
func (t *Tree) SplitHorizontal(w *Window, pct int) (*Window, error) {
	return t.splitLeaf(w, Horizontal, pct)
}

// SplitVertical stacks two panes left/right.
func (t *Tree) SplitVertical(w *Window, pct int) (*Window, error) {
	return t.splitLeaf(w, Vertical, pct)
}

func fitsMinimum(r Rect, orientation Orientation, pct int) bool {
	if orientation == Horizontal {
		top := r.Height * pct / 100
		bottom := r.Height - top
		return top >= minPaneHeight && bottom >= minPaneHeight
	}
	left := r.Width * pct / 100
	right := r.Width - left
	return left >= minPaneWidth && right >= minPaneWidth
}

// Merge closes w's sibling leaf and turns the parent split back into a leaf
// holding w. Refuses if the sibling is itself an internal split.
func (t *Tree) Merge(w *Window) error {
	leaf := w.leaf
	parent := leaf.parent
	if parent == nil {
		return ErrSiblingNotLeaf // w is the whole tree, nothing to merge
	}

	var sibling *node
	if parent.first == leaf {
		sibling = parent.second
	} else {
		sibling = parent.first
	}
	if !sibling.isLeaf() {
		return ErrSiblingNotLeaf
	}

	closed := sibling.window
	t.unlinkWindow(closed)
	if t.current == closed {
		t.current = w
	}

	parent.window = w
	parent.first, parent.second = nil, nil
	w.leaf = parent

	t.renumber()
	t.Resize(t.width, t.height)
	return nil
}

// MergeAll closes every window except w, regardless of tree shape.
func (t *Tree) MergeAll(w *Window) {
	for win := t.head; win != nil; {
		next := win.next
		if win != w {
			t.unlinkWindow(win)
		}
		win = next
	}
	w.leaf = &node{window: w}
	t.root = w.leaf
	t.current = w
	t.renumber()
	t.Resize(t.width, t.height)
}
