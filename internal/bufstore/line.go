package bufstore

import "github.com/termchat/termchat-core/internal/search"

// Line is one formatted-line record.
type Line struct {
	IDWithinBuffer int64

	Timestamp       int64
	TimestampUs     int64
	PrintTimestamp  int64
	PrintTimestampUs int64

	Prefix  string
	Message string
	Tags    []string

	Displayed     bool
	Highlight     bool
	RefreshNeeded bool

	Y int // free buffers only

	// OwnerBufferID records which peer contributed this line; meaningful
	// only inside a merged group's mixed view.
	OwnerBufferID int64

	prev, next *Line
}

// LineList is one buffer's append-only line stream.
type LineList struct {
	First, Last     *Line
	LastRead        *Line
	FirstNotRead    bool
	LinesHidden     int
	PrefixMaxLength int
	RefreshNeeded   bool

	count        int
	nextLineID   int64

	// awaitingPrintBaseline is set by Store.Clear on a time_for_each_line
	// buffer: the next appended line establishes the new print_timestamp
	// baseline instead of inheriting one from a line that no longer exists.
	awaitingPrintBaseline bool
}

// NewLineList returns an empty line list.
func NewLineList() *LineList { return &LineList{} }

// Len reports the number of lines currently stored.
func (ll *LineList) Len() int { return ll.count }

// Append adds a new line to the tail, assigning it id_within_buffer. If the
// list is awaiting a fresh print_timestamp baseline (set by Store.Clear on a
// time_for_each_line buffer) and the caller left PrintTimestamp unset, this
// line's own timestamp becomes that baseline.
func (ll *LineList) Append(l *Line) *Line {
	ll.nextLineID++
	l.IDWithinBuffer = ll.nextLineID
	if ll.awaitingPrintBaseline {
		ll.awaitingPrintBaseline = false
		if l.PrintTimestamp == 0 {
			l.PrintTimestamp = l.Timestamp
			l.PrintTimestampUs = l.TimestampUs
		}
	}
	l.prev = ll.Last
	if ll.Last != nil {
		ll.Last.next = l
	} else {
		ll.First = l
	}
	ll.Last = l
	ll.count++
	if len(l.Prefix) > ll.PrefixMaxLength {
		ll.PrefixMaxLength = len(l.Prefix)
	}
	return l
}

// At returns the i-th line (0 = oldest), or nil if out of range. Linear
// walk; buffers in this exercise are small demo logs, not the 10k-line
// production scrollback the original core indexes with a skiplist.
func (ll *LineList) At(i int) *Line {
	if i < 0 || i >= ll.count {
		return nil
	}
	n := ll.First
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// Remove unlinks l from the list and invalidates any RefreshNeeded state
// referencing it (coordinate-map invalidation is the window tree's job; the
// list only maintains its own links and count here).
func (ll *LineList) Remove(l *Line) {
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		ll.First = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	} else {
		ll.Last = l.prev
	}
	ll.count--
}

// searchAdapter adapts a LineList to search.LineSearcher without the search
// package needing to know about bufstore's concrete Line type.
type searchAdapter struct{ ll *LineList }

func (a searchAdapter) Len() int { return a.ll.Len() }

func (a searchAdapter) LineAt(i int) search.Line {
	l := a.ll.At(i)
	if l == nil {
		return search.Line{}
	}
	return search.Line{Prefix: l.Prefix, Message: l.Message}
}

// Searcher exposes b's lines (or mixed view, if merged-active) to the
// search engine.
func (b *Buffer) Searcher() search.LineSearcher {
	return searchAdapter{ll: b.Lines}
}
