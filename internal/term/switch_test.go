package term

import (
	"testing"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/wintree"
)

func newTestRenderer(t *testing.T) (*Renderer, *wintree.Window) {
	t.Helper()
	hooks := hook.New()
	buffers := bufstore.New(hooks)
	tree := wintree.New(0, 80, 24)
	r := &Renderer{Buffers: buffers, Windows: tree}
	return r, tree.Current()
}

func TestSwitchToBufferShowsBufferAndClearsHotlist(t *testing.T) {
	r, w := newTestRenderer(t)
	a, _ := r.Buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "p", Name: "a", Kind: bufstore.Formatted})
	b, _ := r.Buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "p", Name: "b", Kind: bufstore.Formatted})
	w.DisplayBuffer(a.ID)
	r.Buffers.HotlistAdd(b, bufstore.HotlistMessage)

	r.SwitchToBuffer(w, b)

	if w.BufferID != b.ID {
		t.Fatalf("window buffer = %d, want %d", w.BufferID, b.ID)
	}
	if len(r.Buffers.Hotlist()) != 0 {
		t.Fatal("switching to b must clear its hotlist entry")
	}
}

func TestCycleBufferWrapsThroughStoreOrder(t *testing.T) {
	r, w := newTestRenderer(t)
	a, _ := r.Buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "p", Name: "a", Kind: bufstore.Formatted})
	b, _ := r.Buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "p", Name: "b", Kind: bufstore.Formatted})
	w.DisplayBuffer(a.ID)

	r.CycleBuffer(w, 1)
	if w.BufferID != b.ID {
		t.Fatalf("CycleBuffer(+1) = %d, want b (%d)", w.BufferID, b.ID)
	}

	r.CycleBuffer(w, 1)
	if w.BufferID != a.ID {
		t.Fatalf("CycleBuffer(+1) should wrap back to a, got %d", w.BufferID)
	}
}
