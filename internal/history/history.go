// Package history implements the per-buffer and global command history
// rings: bounded doubly-linked lists with bash/readline recall semantics
// (a live edit is promoted into the ring as a pseudo-entry so the user can
// always get back to what they were typing).
package history

import "github.com/termchat/termchat-core/internal/strutil"

// Entry is one history line.
type Entry struct {
	Text string
	prev *Entry
	next *Entry
}

// Direction of a recall or search step.
type Direction int

const (
	Backward Direction = iota // toward older entries
	Forward                   // toward newer entries
)

// Ring is a bounded doubly-linked history list. Cap == 0 means unbounded.
type Ring struct {
	head *Entry // newest
	tail *Entry // oldest
	size int
	Cap  int

	// cursor state for previous/next recall
	cursor  *Entry
	pending *Entry // pseudo-entry holding the input that was live before recall began
}

// New returns an empty ring with the given capacity (0 = unbounded).
func New(cap int) *Ring {
	return &Ring{Cap: cap}
}

// Len returns the number of entries currently stored.
func (r *Ring) Len() int {
	return r.size
}

// Stats reports the ring's current size and configured capacity, used by
// the infolist schema to expose num_history without exposing internals.
func (r *Ring) Stats() (size, cap int) {
	return r.size, r.Cap
}

// Add pushes text to the front of the ring unless it duplicates the current
// head. When the ring exceeds its cap the oldest entry is dropped. Add
// resets the ring's own recall cursor and pending entry; it takes no
// cleanup callback, so references to the dropped entry held outside the
// ring are not cleared.
func (r *Ring) Add(text string) {
	if r.head != nil && r.head.Text == text {
		return
	}
	e := &Entry{Text: text}
	e.next = r.head
	if r.head != nil {
		r.head.prev = e
	}
	r.head = e
	if r.tail == nil {
		r.tail = e
	}
	r.size++
	r.resetRecall()

	if r.Cap > 0 {
		for r.size > r.Cap {
			r.dropTail()
		}
	}
}

func (r *Ring) dropTail() {
	old := r.tail
	if old == nil {
		return
	}
	r.tail = old.prev
	if r.tail != nil {
		r.tail.next = nil
	} else {
		r.head = nil
	}
	r.size--

	if r.cursor == old {
		r.cursor = nil
	}
	if r.pending == old {
		r.pending = nil
	}
}

// resetRecall clears the in-progress previous/next walk, called whenever a
// fresh entry is committed to the ring.
func (r *Ring) resetRecall() {
	r.cursor = nil
	r.pending = nil
}

// Previous moves the recall cursor toward older entries. currentInput is the
// text presently in the input line; on the first call of a recall session it
// is saved as a pseudo-entry so Next can return to it. Returns the recalled
// text and whether a move happened.
func (r *Ring) Previous(currentInput string) (string, bool) {
	if r.cursor == nil {
		if r.head == nil {
			return "", false
		}
		r.pending = &Entry{Text: currentInput}
		r.cursor = r.head
		return r.cursor.Text, true
	}

	// persist any edits made to the current entry back into the ring
	// (readline semantics: live edits to a recalled entry stick until
	// you move off it again).
	if r.cursor.next == nil {
		return "", false
	}
	r.cursor.Text = currentInput
	r.cursor = r.cursor.next
	return r.cursor.Text, true
}

// Next moves the recall cursor toward newer entries. Returns the recalled
// text (or the pending pre-recall input once the walk runs off the newest
// end) and whether a move happened.
func (r *Ring) Next(currentInput string) (string, bool) {
	if r.cursor == nil {
		return "", false
	}

	r.cursor.Text = currentInput
	if r.cursor.prev == nil {
		text := ""
		if r.pending != nil {
			text = r.pending.Text
		}
		r.cursor = nil
		r.pending = nil
		return text, true
	}
	r.cursor = r.cursor.prev
	return r.cursor.Text, true
}

// MatchFlags controls Search behaviour.
type MatchFlags struct {
	Exact bool // case-sensitive literal match; ignored when Regex is set
	Regex *strutil.CompiledRegex
}

// Search performs a linear walk from the current cursor (or the head if no
// recall is in progress) honouring exact/regex/case flags, returning the
// first entry found in dir and a found flag.
func (r *Ring) Search(query string, dir Direction, flags MatchFlags) (string, bool) {
	start := r.cursor
	if start == nil {
		start = r.head
	} else if dir == Backward {
		start = start.next
	} else {
		start = start.prev
	}

	for e := start; e != nil; {
		if matchEntry(e.Text, query, flags) {
			r.cursor = e
			return e.Text, true
		}
		if dir == Backward {
			e = e.next
		} else {
			e = e.prev
		}
	}
	return "", false
}

func matchEntry(text, query string, flags MatchFlags) bool {
	if flags.Regex != nil {
		return flags.Regex.MatchString(text)
	}
	if flags.Exact {
		return containsCase(text, query, true)
	}
	return containsCase(text, query, false)
}

func containsCase(hay, needle string, caseSensitive bool) bool {
	if caseSensitive {
		return indexOf(hay, needle) >= 0
	}
	return indexOf(toLower(hay), toLower(needle)) >= 0
}

func toLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func indexOf(hay, needle string) int {
	if needle == "" {
		return 0
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if hay[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

// Entries returns all entries from newest to oldest, for infolist dumps.
func (r *Ring) Entries() []string {
	out := make([]string, 0, r.size)
	for e := r.head; e != nil; e = e.next {
		out = append(out, e.Text)
	}
	return out
}
