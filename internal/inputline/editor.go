// Package inputline implements the line input editor: a UTF-8 aware
// gap-free edit buffer with cursor, undo/redo ring, a process-wide
// clipboard, completion state, multi-line editing, and paste detection.
package inputline

import (
	"strings"

	"github.com/termchat/termchat-core/internal/strutil"
)

// Signal names emitted by the editor. The engine wires these into its
// signal bus (internal/hook); the editor package itself has no opinion on
// transport, it only calls Emitter.Emit.
const (
	SignalTextChanged  = "input_text_changed"
	SignalCursorMoved  = "input_text_cursor_moved"
	SignalPastePending = "input_paste_pending"
)

// Emitter receives signal notifications from the editor. Buffer stores
// implement this to forward into the shared hook/signal bus.
type Emitter interface {
	Emit(signal string, payload any)
}

type noopEmitter struct{}

func (noopEmitter) Emit(string, any) {}

// Clipboard is a single process-wide paste buffer, written only by the
// input editor.
type Clipboard struct {
	text string
}

// Set overwrites the clipboard contents.
func (c *Clipboard) Set(text string) { c.text = text }

// Get returns the clipboard contents.
func (c *Clipboard) Get() string { return c.text }

// UndoEntry is one snapshot in the undo ring.
type UndoEntry struct {
	Text   string
	Cursor int
	prev   *UndoEntry
	next   *UndoEntry
}

// undoRing is a doubly-linked list of snapshots with a current pointer, a
// staging slot for the not-yet-committed snapshot, and a cap.
type undoRing struct {
	head, tail *UndoEntry
	current    *UndoEntry // nil means "at the live text, nothing undone yet"
	count      int
	cap        int

	stagedText   string
	stagedCursor int
	stagedValid  bool
}

// PasteState tracks an in-progress large-paste confirmation.
type PasteState struct {
	Pending bool
	Buffer  string
}

// Editor is a single buffer's input line.
type Editor struct {
	text   string
	cursor int // codepoint index, 0 <= cursor <= length

	DisplayLeft int
	Prompt      string
	Multiline   bool

	// GetEmpty mirrors the input_get_empty property: when false, Submit on
	// an empty line is a no-op.
	GetEmpty bool

	// UnknownCommands / AnyUserData are opaque passthrough flags the core
	// stores for the property interface but never interprets itself;
	// command dispatch lives outside this package.
	GetUnknownCommands bool
	GetAnyUserData     bool

	clipboard *Clipboard
	undo      undoRing

	paste          PasteState
	pasteThreshold int

	emitter Emitter

	// Completion is opaque to the core; plugins populate and the core
	// resets it on submission/delete_all.
	Completion any
}

// New returns a fresh, empty editor sharing clip as its process-wide
// clipboard. pasteThreshold is the byte-burst size at which a single fd
// read is treated as a paste rather than replayed keystroke by keystroke.
func New(clip *Clipboard, pasteThreshold int) *Editor {
	return &Editor{
		clipboard:      clip,
		pasteThreshold: pasteThreshold,
		emitter:        noopEmitter{},
		GetEmpty:       false,
	}
}

// SetEmitter installs the signal sink. Called once by the owning buffer.
func (e *Editor) SetEmitter(em Emitter) {
	if em == nil {
		em = noopEmitter{}
	}
	e.emitter = em
}

// Text returns the current input text.
func (e *Editor) Text() string { return e.text }

// Size returns the byte length of the text.
func (e *Editor) Size() int { return len(e.text) }

// Length returns the codepoint count of the text.
func (e *Editor) Length() int { return strutil.CodepointLen(e.text) }

// Cursor returns the current codepoint cursor index.
func (e *Editor) Cursor() int { return e.cursor }

func (e *Editor) byteCursor() int {
	return strutil.ByteOffsetOfCodepoint(e.text, e.cursor)
}

func (e *Editor) clampCursor() {
	length := e.Length()
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor > length {
		e.cursor = length
	}
}

func (e *Editor) emitChanged() {
	e.emitter.Emit(SignalTextChanged, e.text)
}

func (e *Editor) emitMoved() {
	e.emitter.Emit(SignalCursorMoved, e.cursor)
}

func (e *Editor) setCursor(n int) {
	e.cursor = n
	e.clampCursor()
	e.emitMoved()
}

// SetCursor moves the cursor to an absolute codepoint index, clamped to
// [0, Length()]. Exported for the input_pos property.
func (e *Editor) SetCursor(n int) {
	e.setCursor(n)
}

// ---- editing operations ----

// Insert inserts s at the cursor, normalising invalid UTF-8 to '?', and
// advances the cursor by the inserted codepoint count.
func (e *Editor) Insert(s string) {
	s = strutil.SanitizeUTF8(s)
	if s == "" {
		return
	}
	bc := e.byteCursor()
	e.text = e.text[:bc] + s + e.text[bc:]
	e.cursor += strutil.CodepointLen(s)
	e.emitChanged()
}

// ReplaceAll replaces the whole text with s, trying to keep the cursor at
// the same codepoint index if still in range.
func (e *Editor) ReplaceAll(s string) {
	oldCursor := e.cursor
	e.text = strutil.SanitizeUTF8(s)
	e.cursor = oldCursor
	e.clampCursor()
	e.emitChanged()
}

// DeleteAll empties the input.
func (e *Editor) DeleteAll() {
	if e.text == "" {
		return
	}
	e.text = ""
	e.cursor = 0
	e.Completion = nil
	e.emitChanged()
}

// DeletePrevChar deletes the codepoint before the cursor.
func (e *Editor) DeletePrevChar() {
	if e.cursor == 0 {
		return
	}
	bc := e.byteCursor()
	prev := strutil.PrevChar(e.text, bc)
	e.text = e.text[:prev] + e.text[bc:]
	e.cursor--
	e.emitChanged()
}

// DeleteNextChar deletes the codepoint at the cursor.
func (e *Editor) DeleteNextChar() {
	if e.cursor >= e.Length() {
		return
	}
	bc := e.byteCursor()
	size := strutil.CharSize(e.text[bc:])
	e.text = e.text[:bc] + e.text[bc+size:]
	e.emitChanged()
}

// skipClass scans backward (dir<0) or forward (dir>0) from byte offset p
// while isBoundary(rune) == whileTrue, and returns the new offset.
func skipClass(s string, p, dir int, isBoundary func(rune) bool, whileTrue bool) int {
	for {
		if dir < 0 {
			if p == 0 {
				break
			}
			prev := strutil.PrevChar(s, p)
			r, _ := decodeAt(s, prev)
			if isBoundary(r) != whileTrue {
				break
			}
			p = prev
		} else {
			if p >= len(s) {
				break
			}
			r, size := decodeAt(s, p)
			if isBoundary(r) != whileTrue {
				break
			}
			p += size
		}
	}
	return p
}

func decodeAt(s string, p int) (rune, int) {
	rest := s[p:]
	size := strutil.CharSize(rest)
	if size == 0 {
		return 0, 0
	}
	for _, r := range rest[:size] {
		return r, size
	}
	return 0, 0
}

// DeletePrevWord skips non-word chars then word chars backward from the
// cursor, copying the deleted slice to the clipboard.
func (e *Editor) DeletePrevWord() {
	e.deleteWordBackward(strutil.IsWordCharInput)
}

// DeletePrevWordWhitespace is a variant whose boundary is pure whitespace.
func (e *Editor) DeletePrevWordWhitespace() {
	e.deleteWordBackward(func(r rune) bool { return !strutil.IsWhitespaceChar(r) })
}

func (e *Editor) deleteWordBackward(isWord func(rune) bool) {
	bc := e.byteCursor()
	p := bc
	p = skipClass(e.text, p, -1, isWord, false)
	p = skipClass(e.text, p, -1, isWord, true)
	if p == bc {
		return
	}
	deleted := e.text[p:bc]
	e.clipboard.Set(deleted)
	e.text = e.text[:p] + e.text[bc:]
	e.cursor -= strutil.CodepointLen(deleted)
	e.emitChanged()
}

// DeleteNextWord skips non-word then word chars forward, copying to the
// clipboard.
func (e *Editor) DeleteNextWord() {
	bc := e.byteCursor()
	p := bc
	p = skipClass(e.text, p, 1, strutil.IsWordCharInput, false)
	p = skipClass(e.text, p, 1, strutil.IsWordCharInput, true)
	if p == bc {
		return
	}
	deleted := e.text[bc:p]
	e.clipboard.Set(deleted)
	e.text = e.text[:bc] + e.text[p:]
	e.emitChanged()
}

// lineBounds returns the byte offsets of the start and end of the line the
// cursor is on (multi-line aware: lines are separated by '\n').
func (e *Editor) lineBounds() (start, end int) {
	bc := e.byteCursor()
	start = strings.LastIndexByte(e.text[:bc], '\n')
	if start < 0 {
		start = 0
	} else {
		start++
	}
	rel := strings.IndexByte(e.text[bc:], '\n')
	if rel < 0 {
		end = len(e.text)
	} else {
		end = bc + rel
	}
	return start, end
}

// DeleteToLineStart deletes from the line start to the cursor; on a line
// boundary (cursor already at line start) it extends to the previous line.
func (e *Editor) DeleteToLineStart() {
	start, _ := e.lineBounds()
	bc := e.byteCursor()
	if start == bc && start > 0 {
		// already at line start: pull in the preceding newline too
		start = strings.LastIndexByte(e.text[:start-1], '\n')
		if start < 0 {
			start = 0
		} else {
			start++
		}
	}
	if start == bc {
		return
	}
	deleted := e.text[start:bc]
	e.clipboard.Set(deleted)
	e.text = e.text[:start] + e.text[bc:]
	e.cursor -= strutil.CodepointLen(deleted)
	e.emitChanged()
}

// DeleteToLineEnd deletes from the cursor to the line end; on a line
// boundary it extends to the next line.
func (e *Editor) DeleteToLineEnd() {
	_, end := e.lineBounds()
	bc := e.byteCursor()
	if end == bc && end < len(e.text) {
		rel := strings.IndexByte(e.text[end+1:], '\n')
		if rel < 0 {
			end = len(e.text)
		} else {
			end = end + 1 + rel
		}
	}
	if end == bc {
		return
	}
	deleted := e.text[bc:end]
	e.clipboard.Set(deleted)
	e.text = e.text[:bc] + e.text[end:]
	e.emitChanged()
}

// DeleteToInputStart deletes from the start of the whole input to the
// cursor, copying to the clipboard.
func (e *Editor) DeleteToInputStart() {
	bc := e.byteCursor()
	if bc == 0 {
		return
	}
	e.clipboard.Set(e.text[:bc])
	e.text = e.text[bc:]
	e.cursor = 0
	e.emitChanged()
}

// DeleteToInputEnd deletes from the cursor to the end of the whole input,
// copying to the clipboard.
func (e *Editor) DeleteToInputEnd() {
	bc := e.byteCursor()
	if bc == len(e.text) {
		return
	}
	e.clipboard.Set(e.text[bc:])
	e.text = e.text[:bc]
	e.emitChanged()
}

// DeleteLine removes the current line, copying it to the clipboard.
func (e *Editor) DeleteLine() {
	start, end := e.lineBounds()
	if start == end {
		return
	}
	e.clipboard.Set(e.text[start:end])
	e.text = e.text[:start] + e.text[end:]
	e.cursor = strutil.CodepointOfByte(e.text, start)
	e.emitChanged()
}

// TransposeChars swaps the codepoint at cursor-1 with cursor; if the cursor
// is at the end it swaps the last two codepoints instead. No-op if
// Length() < 2.
func (e *Editor) TransposeChars() {
	length := e.Length()
	if length < 2 {
		return
	}
	pos := e.cursor
	if pos == length {
		pos = length - 1
	}
	if pos == 0 {
		pos = 1
	}

	b0 := strutil.ByteOffsetOfCodepoint(e.text, pos-1)
	b1 := strutil.ByteOffsetOfCodepoint(e.text, pos)
	b2 := strutil.ByteOffsetOfCodepoint(e.text, pos+1)

	first := e.text[b0:b1]
	second := e.text[b1:b2]
	e.text = e.text[:b0] + second + first + e.text[b2:]
	e.cursor = pos + 1
	if e.cursor > length {
		e.cursor = length
	}
	e.emitChanged()
}

// Paste inserts the clipboard contents at the cursor.
func (e *Editor) Paste() {
	e.Insert(e.clipboard.Get())
}

// ---- cursor motion ----

func (e *Editor) MoveBeginningOfLine() {
	start, _ := e.lineBounds()
	e.setCursor(strutil.CodepointOfByte(e.text, start))
}

func (e *Editor) MoveEndOfLine() {
	_, end := e.lineBounds()
	e.setCursor(strutil.CodepointOfByte(e.text, end))
}

func (e *Editor) MoveBeginningOfInput() {
	e.setCursor(0)
}

func (e *Editor) MoveEndOfInput() {
	e.setCursor(e.Length())
}

func (e *Editor) MovePrevChar() {
	e.setCursor(e.cursor - 1)
}

func (e *Editor) MoveNextChar() {
	e.setCursor(e.cursor + 1)
}

func (e *Editor) MovePrevWord() {
	bc := e.byteCursor()
	p := bc
	p = skipClass(e.text, p, -1, strutil.IsWordCharInput, false)
	p = skipClass(e.text, p, -1, strutil.IsWordCharInput, true)
	e.setCursor(strutil.CodepointOfByte(e.text, p))
}

func (e *Editor) MoveNextWord() {
	bc := e.byteCursor()
	p := bc
	p = skipClass(e.text, p, 1, strutil.IsWordCharInput, false)
	p = skipClass(e.text, p, 1, strutil.IsWordCharInput, true)
	e.setCursor(strutil.CodepointOfByte(e.text, p))
}

// MovePrevLine / MoveNextLine preserve the column (codepoint offset within
// the line) while moving to the previous/next '\n'-delimited line.
func (e *Editor) MovePrevLine() {
	start, _ := e.lineBounds()
	if start == 0 {
		return
	}
	col := e.byteCursor() - start
	prevEnd := start - 1
	prevStart := strings.LastIndexByte(e.text[:prevEnd], '\n')
	if prevStart < 0 {
		prevStart = 0
	} else {
		prevStart++
	}
	target := prevStart + col
	if target > prevEnd {
		target = prevEnd
	}
	e.setCursor(strutil.CodepointOfByte(e.text, target))
}

func (e *Editor) MoveNextLine() {
	_, end := e.lineBounds()
	if end >= len(e.text) {
		return
	}
	start, _ := e.lineBounds()
	col := e.byteCursor() - start
	nextStart := end + 1
	rel := strings.IndexByte(e.text[nextStart:], '\n')
	var nextEnd int
	if rel < 0 {
		nextEnd = len(e.text)
	} else {
		nextEnd = nextStart + rel
	}
	target := nextStart + col
	if target > nextEnd {
		target = nextEnd
	}
	e.setCursor(strutil.CodepointOfByte(e.text, target))
}

// ---- paste detection ----

// FeedBytes is the single place that decides whether an fd-hook read is a
// paste burst: when data exceeds the configured threshold it is buffered
// and SignalPastePending is emitted instead of inserting; otherwise it is
// inserted immediately.
func (e *Editor) FeedBytes(data string) {
	if e.pasteThreshold > 0 && len(data) > e.pasteThreshold {
		e.paste = PasteState{Pending: true, Buffer: data}
		e.emitter.Emit(SignalPastePending, len(data))
		return
	}
	e.Insert(data)
}

// PastePending reports whether a paste is awaiting confirmation.
func (e *Editor) PastePending() bool { return e.paste.Pending }

// ConfirmPaste inserts the buffered paste bytes, normalising invalid UTF-8.
func (e *Editor) ConfirmPaste() {
	if !e.paste.Pending {
		return
	}
	buf := e.paste.Buffer
	e.paste = PasteState{}
	e.Insert(buf)
}

// CancelPastePending discards a pending paste without inserting it. Any
// non-paste key is expected to call this.
func (e *Editor) CancelPastePending() {
	e.paste = PasteState{}
}

// ---- submission ----

// SubmitResult tells the caller what Submit decided to do with the text.
type SubmitResult struct {
	Eaten bool   // input callback returned OK_EAT
	Text  string // the text that was submitted (pre-clear)
	Lines []string
}

// InputCallback is the buffer's input callback, invoked on submit.
type InputCallback func(text string) (eat bool)

// HistoryAdd is called once per submitted line so the caller can run the
// history_add modifier hook and push into both the local and global rings.
type HistoryAdd func(text string)

// Submit implements the `return` action: if input is empty and GetEmpty is
// off, no-op. Otherwise clears the buffer, frees undo/completion, adds to
// history, and invokes cb. Without Multiline, a pasted/typed newline in the
// text causes each line to be submitted sequentially.
func (e *Editor) Submit(cb InputCallback, addHistory HistoryAdd) SubmitResult {
	if e.text == "" && !e.GetEmpty {
		return SubmitResult{}
	}

	text := e.text
	e.text = ""
	e.cursor = 0
	e.undo = undoRing{cap: e.undo.cap}
	e.Completion = nil
	e.emitChanged()

	lines := []string{text}
	if !e.Multiline && strings.Contains(text, "\n") {
		lines = strings.Split(text, "\n")
	}

	eaten := false
	for _, line := range lines {
		if addHistory != nil {
			addHistory(line)
		}
		if cb != nil && cb(line) {
			eaten = true
		}
	}

	return SubmitResult{Eaten: eaten, Text: text, Lines: lines}
}
