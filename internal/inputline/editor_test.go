package inputline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEditor() *Editor {
	e := New(&Clipboard{}, 256)
	e.SetUndoCap(20)
	return e
}

func TestInsertDeletePrevCharRoundTrip(t *testing.T) {
	e := newTestEditor()
	s := "héllo 日本語"
	e.Insert(s)
	assert.Equal(t, s, e.Text())

	n := len([]rune(s))
	for i := 0; i < n; i++ {
		e.DeletePrevChar()
	}
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

func TestTransposeRequiresTwoChars(t *testing.T) {
	e := newTestEditor()
	e.Insert("a")
	e.TransposeChars()
	assert.Equal(t, "a", e.Text(), "transpose on length<2 is a no-op")

	e.Insert("b")
	e.TransposeChars()
	assert.Equal(t, "ba", e.Text())
}

func TestDeleteOnEmptyIsNoOp(t *testing.T) {
	e := newTestEditor()
	e.DeletePrevChar()
	e.DeleteNextChar()
	e.DeletePrevWord()
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

// TestUndoRedoScenario exercises a multi-step undo/redo sequence.
func TestUndoRedoScenario(t *testing.T) {
	e := newTestEditor()

	e.Snap()
	e.Insert("hel")
	e.AddUndo()

	e.Snap()
	e.Insert("lo")
	e.AddUndo()

	e.Snap()
	e.DeletePrevWord()
	e.AddUndo()
	assert.Equal(t, "", e.Text())
	assert.Equal(t, "hello", e.clipboard.Get())

	assert.True(t, e.Undo())
	assert.Equal(t, "hello", e.Text())
	assert.Equal(t, 5, e.Cursor())

	assert.True(t, e.Undo())
	assert.Equal(t, "hel", e.Text())

	assert.True(t, e.Redo())
	assert.Equal(t, "hello", e.Text())
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	e := newTestEditor()
	e.Snap()
	e.Insert("abc")
	e.AddUndo()

	e.Snap()
	e.Insert("def")
	e.AddUndo()
	textBefore := e.Text()
	cursorBefore := e.Cursor()

	e.Undo()
	e.Redo()
	assert.Equal(t, textBefore, e.Text())
	assert.Equal(t, cursorBefore, e.Cursor())
}

func TestSubmitEmptyNoOpByDefault(t *testing.T) {
	e := newTestEditor()
	called := false
	res := e.Submit(func(string) bool { called = true; return false }, nil)
	assert.False(t, called)
	assert.Equal(t, SubmitResult{}, res)
}

func TestSubmitSplitsLinesWithoutMultiline(t *testing.T) {
	e := newTestEditor()
	e.Insert("line1\nline2")
	var got []string
	e.Submit(func(text string) bool {
		got = append(got, text)
		return false
	}, nil)
	assert.Equal(t, []string{"line1", "line2"}, got)
	assert.Equal(t, "", e.Text())
}

func TestPasteDetection(t *testing.T) {
	e := New(&Clipboard{}, 16)
	big := make([]byte, 300)
	for i := range big {
		big[i] = 'x'
	}
	var pending bool
	e.SetEmitter(emitterFunc(func(signal string, payload any) {
		if signal == SignalPastePending {
			pending = true
		}
	}))

	e.FeedBytes(string(big))
	assert.True(t, pending)
	assert.Equal(t, "", e.Text())
	assert.True(t, e.PastePending())

	e.ConfirmPaste()
	assert.Equal(t, string(big), e.Text())
	assert.False(t, e.PastePending())
}

type emitterFunc func(signal string, payload any)

func (f emitterFunc) Emit(signal string, payload any) { f(signal, payload) }
