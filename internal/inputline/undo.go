package inputline

// SetUndoCap configures the undo ring's capacity. A cap of 0 disables
// undo/redo (Snap/Add become no-ops).
func (e *Editor) SetUndoCap(cap int) {
	e.undo.cap = cap
}

// Snap stages the current text+cursor into the snapshot slot. No-op if the
// undo cap is 0.
func (e *Editor) Snap() {
	if e.undo.cap <= 0 {
		return
	}
	e.undo.stagedText = e.text
	e.undo.stagedCursor = e.cursor
	e.undo.stagedValid = true
}

// AddUndo commits the staged snapshot as a new undo entry if the text
// changed since Snap, dropping the oldest entry if over cap+1 and
// discarding any redo-future beyond the current cursor. The staged
// snapshot is discarded afterward either way.
func (e *Editor) AddUndo() {
	defer func() { e.undo.stagedValid = false }()

	if e.undo.cap <= 0 || !e.undo.stagedValid {
		return
	}
	if e.undo.stagedText == e.text {
		return
	}

	e.pushEntry(e.undo.stagedText, e.undo.stagedCursor)
}

// pushEntry unconditionally commits a snapshot as the new tail entry,
// discarding any redo-future beyond the current cursor.
func (e *Editor) pushEntry(text string, cursor int) {
	entry := &UndoEntry{Text: text, Cursor: cursor}

	// discard redo-future beyond current cursor
	if e.undo.current != nil {
		e.undo.current.next = nil
		e.undo.tail = e.undo.current
	} else if e.undo.head != nil {
		// cursor was at the very start (before all undos): discard everything
		e.undo.head = nil
		e.undo.tail = nil
		e.undo.count = 0
	}

	entry.prev = e.undo.tail
	if e.undo.tail != nil {
		e.undo.tail.next = entry
	} else {
		e.undo.head = entry
	}
	e.undo.tail = entry
	e.undo.count++
	e.undo.current = entry

	for e.undo.count > e.undo.cap+1 {
		old := e.undo.head
		e.undo.head = old.next
		if e.undo.head != nil {
			e.undo.head.prev = nil
		}
		e.undo.count--
	}
}

// Undo moves one step back in the undo ring and applies its snapshot. If
// the cursor is already at the tail (the most recent edit) and the live
// text has diverged from it, Undo first stages and commits the live state
// so Redo can return to it.
func (e *Editor) Undo() bool {
	if e.undo.cap > 0 && e.undo.current == e.undo.tail && e.undo.tail != nil && e.undo.tail.Text != e.text {
		e.pushEntry(e.text, e.cursor)
	}

	var target *UndoEntry
	if e.undo.current == nil {
		target = e.undo.head
	} else {
		target = e.undo.current.prev
	}
	if target == nil {
		return false
	}
	e.undo.current = target
	e.text = target.Text
	e.cursor = target.Cursor
	e.clampCursor()
	e.emitChanged()
	return true
}

// Redo moves one step forward in the undo ring and applies its snapshot.
func (e *Editor) Redo() bool {
	if e.undo.current == nil {
		return false
	}
	next := e.undo.current.next
	if next == nil {
		return false
	}
	e.undo.current = next
	e.text = next.Text
	e.cursor = next.Cursor
	e.clampCursor()
	e.emitChanged()
	return true
}

// UndoCount returns the number of entries currently in the undo ring.
func (e *Editor) UndoCount() int { return e.undo.count }
