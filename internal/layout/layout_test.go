package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/wintree"
)

func TestLoadMissingFileReturnsEmptyLayout(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "layout.toml"))
	assert.NoError(t, err)
	assert.Empty(t, l.Buffers)
	assert.Empty(t, l.Windows)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")

	hooks := hook.New()
	buffers := bufstore.New(hooks)
	b, err := buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "core", Name: "alpha"})
	assert.NoError(t, err)
	tree := wintree.New(b.ID, 80, 24)

	want := BuildFromState(buffers, tree)
	assert.NoError(t, Save(path, want))

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, want.Buffers, got.Buffers)
	assert.Equal(t, want.Windows, got.Windows)
}

func TestNumberForLooksUpByFullName(t *testing.T) {
	l := &Layout{Buffers: []BufferEntry{{FullName: "core.alpha", Number: 3}}}

	n, ok := l.NumberFor("core.alpha")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = l.NumberFor("core.missing")
	assert.False(t, ok)
}

func TestApplyWindowHintsStampsMatchingWindow(t *testing.T) {
	hooks := hook.New()
	buffers := bufstore.New(hooks)
	b, err := buffers.NewBuffer(bufstore.BufferOptions{PluginOwner: "core", Name: "alpha"})
	assert.NoError(t, err)
	tree := wintree.New(b.ID, 80, 24)

	win := tree.Current()
	l := &Layout{Windows: []WindowEntry{{ID: win.Number, SavedPlugin: "core", SavedBuffer: "alpha"}}}

	ApplyWindowHints(l, tree)

	assert.Equal(t, "core", win.SavedLayoutPlugin)
	assert.Equal(t, "alpha", win.SavedLayoutBuffer)
}
