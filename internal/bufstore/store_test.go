package bufstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termchat/termchat-core/internal/hook"
)

func newTestStore() *Store {
	return New(hook.New())
}

func mustNew(t *testing.T, s *Store, owner, name string) *Buffer {
	t.Helper()
	b, err := s.NewBuffer(BufferOptions{PluginOwner: owner, Name: name, Kind: Formatted})
	if err != nil {
		t.Fatalf("NewBuffer(%s): %v", name, err)
	}
	return b
}

func numbers(s *Store) []int {
	var out []int
	for _, b := range s.All() {
		out = append(out, b.Number)
	}
	return out
}

// TestMergeZoomUnmergeCycle exercises merge, zoom, and unmerge in sequence.
func TestMergeZoomUnmergeCycle(t *testing.T) {
	s := newTestStore()
	a := mustNew(t, s, "p", "a")
	b := mustNew(t, s, "p", "b")
	c := mustNew(t, s, "p", "c")
	require := assert.New(t)
	require.Equal([]int{1, 2, 3}, numbers(s))

	var lastSignal string
	s.hooks.HookSignal("test", "*", 0, func(sig string, data any) error {
		lastSignal = sig
		return nil
	})

	require.NoError(s.Merge(a, b))
	require.Equal(2, a.Number)
	require.Equal(2, b.Number)
	require.Equal(3, c.Number)
	require.Equal("buffer_merged", lastSignal)
	require.True(a.IsMerged())
	require.True(b.IsMerged())

	s.Zoom(a)
	require.Equal(ActiveZoomed, a.Active)
	require.Equal(ActiveHidden, b.Active)
	require.Equal("buffer_zoomed", lastSignal)
	require.Equal(ActiveShown, c.Active)

	s.Zoom(a)
	require.Equal(ActiveShown, a.Active)
	require.Equal(ActiveHidden, b.Active)
	require.Equal("buffer_unzoomed", lastSignal)

	require.NoError(s.Unmerge(a, 0))
	require.Equal(3, a.Number)
	require.Equal(4, c.Number, "auto_renumber shifts c up to make room")
	require.False(a.IsMerged())
	require.Equal(ActiveShown, b.Active, "sole remaining peer reverts to its own lines")
}

func TestZoomOnNonMergedBufferIsNoop(t *testing.T) {
	s := newTestStore()
	a := mustNew(t, s, "p", "solo")
	s.Zoom(a)
	assert.Equal(t, ActiveShown, a.Active, "zoom on a non-merged buffer must not change Active")
}

func TestMergeRequiresTwoBuffers(t *testing.T) {
	s := newTestStore()
	a := mustNew(t, s, "p", "only")
	err := s.Merge(a, a)
	assert.Error(t, err)
	assert.True(t, HasCode(err, CodeNotMergeable))
}

func TestFirstGapPositionPolicy(t *testing.T) {
	s := newTestStore()
	s.Position = PositionFirstGap
	a := mustNew(t, s, "p", "a")
	b := mustNew(t, s, "p", "b")
	s.Close(b, nil)
	assert.Equal(t, 1, a.Number)

	c := mustNew(t, s, "p", "c")
	assert.Equal(t, 2, c.Number, "first_gap policy reuses the number freed by closing b")
}

func TestSearchRanksExactBeforePrefixBeforeSubstring(t *testing.T) {
	s := newTestStore()
	mustNew(t, s, "p", "server")
	exact := mustNew(t, s, "p", "chan")
	mustNew(t, s, "p", "channelfoo")
	mustNew(t, s, "p", "xchanx")

	got := s.Search("p", "chan", nil)
	assert.Equal(t, exact, got)
}

func TestReplaceLocalVars(t *testing.T) {
	b := &Buffer{LocalVars: map[string]string{"nick": "alice", "server": "libera"}}
	got := ReplaceLocalVars(b, "hi $nick on $server, cost is \\$5 and $unknown stays")
	assert.Equal(t, "hi alice on libera, cost is $5 and $unknown stays", got)
}

func TestHotlistIdempotentAfterSwitch(t *testing.T) {
	s := newTestStore()
	b := mustNew(t, s, "p", "chan")
	s.HotlistAdd(b, HotlistMessage)
	assert.Len(t, s.Hotlist(), 1)
	s.HotlistRemove(b)
	assert.Len(t, s.Hotlist(), 0)
	s.HotlistAdd(b, HotlistLow)
	assert.Len(t, s.Hotlist(), 1)
}

// TestRenameRoundTripEmitsSignalTwice covers rename(b, new); rename(b, old)
// emitting buffer_renamed exactly twice with the correct old_full_name.
func TestRenameRoundTripEmitsSignalTwice(t *testing.T) {
	s := newTestStore()
	b := mustNew(t, s, "p", "old")
	signals := 0
	s.hooks.HookSignal("test", "buffer_renamed", 0, func(sig string, data any) error {
		signals++
		return nil
	})

	require := assert.New(t)
	require.NoError(s.Rename(b, "new"))
	require.Equal("p.old", b.OldFullName)
	require.Equal("p.new", b.FullName())

	require.NoError(s.Rename(b, "old"))
	require.Equal("p.new", b.OldFullName)
	require.Equal("p.old", b.FullName())

	require.Equal(2, signals)
}

func TestRenameRejectsCollisionWithoutSideEffects(t *testing.T) {
	s := newTestStore()
	a := mustNew(t, s, "p", "a")
	mustNew(t, s, "p", "b")
	err := s.Rename(a, "b")
	assert.Error(t, err)
	assert.Equal(t, "p.a", a.FullName(), "failed rename must not mutate the buffer")
}

func TestClearResetsLinesAndEmitsSignal(t *testing.T) {
	s := newTestStore()
	b := mustNew(t, s, "p", "chan")
	b.TimeForEachLine = true
	b.Lines.Append(&Line{Message: "hi", Timestamp: 100})

	var lastSignal string
	s.hooks.HookSignal("test", "buffer_cleared", 0, func(sig string, data any) error {
		lastSignal = sig
		return nil
	})

	s.Clear(b)
	assert.Equal(t, "buffer_cleared", lastSignal)
	assert.Equal(t, 0, b.Lines.Len())

	l := b.Lines.Append(&Line{Message: "fresh", Timestamp: 200})
	assert.Equal(t, int64(200), l.PrintTimestamp, "first line after clear becomes the new print_timestamp baseline")
}

func TestSetDispatchesPropertyFamilies(t *testing.T) {
	s := newTestStore()
	b := mustNew(t, s, "p", "chan")
	require := assert.New(t)

	require.True(s.Set(b, "number", "5"))
	require.Equal(5, b.Number)

	require.True(s.Set(b, "name", "renamed"))
	require.Equal("p.renamed", b.FullName())

	require.True(s.Set(b, "nicklist", "0"))
	require.False(b.NicklistEnabled)

	require.True(s.Set(b, "highlight_words", "foo,bar"))
	require.Equal([]string{"foo", "bar"}, b.HighlightWords)
	require.True(s.Set(b, "highlight_words_add", "baz"))
	require.Equal([]string{"foo", "bar", "baz"}, b.HighlightWords)
	require.True(s.Set(b, "highlight_words_del", "bar"))
	require.Equal([]string{"foo", "baz"}, b.HighlightWords)

	require.True(s.Set(b, "hotlist_max_level_nicks_add_alice", "2"))
	require.Equal(2, b.HotlistMaxLevelNicks["alice"])
	require.True(s.Set(b, "hotlist_max_level_nicks_del_alice", ""))
	require.NotContains(b.HotlistMaxLevelNicks, "alice")

	require.True(s.Set(b, "key_bind_meta-j", "/buffer next"))
	v, ok := b.GetString("key_bind_meta-j")
	require.True(ok)
	require.Equal("/buffer next", v)
	require.True(s.Set(b, "key_unbind_*", ""))
	require.Empty(b.KeyBindings)

	require.True(s.Set(b, "hotlist", "-"))
	require.Len(s.Hotlist(), 0)
}

func TestVisitedRingMoveToFrontAndCap(t *testing.T) {
	s := newTestStore()
	s.VisitedCapacity = 2
	a := mustNew(t, s, "p", "a")
	b := mustNew(t, s, "p", "b")
	c := mustNew(t, s, "p", "c")

	s.VisitedAdd(a)
	s.VisitedAdd(b)
	s.VisitedAdd(c)
	assert.Len(t, s.visited, 2)
	assert.Equal(t, c, s.visited[0])
}
