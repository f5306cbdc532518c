package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/wintree"
)

func newTestEngine() (*Engine, *hook.Registry) {
	hooks := hook.New()
	buffers := bufstore.New(hooks)
	windows := wintree.New(1, 80, 24)
	e := New(buffers, windows, hooks)
	e.Now = func() time.Time { return fixedNow }
	return e, hooks
}

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestExpiredTimerFiresAndReschedules(t *testing.T) {
	e, hooks := newTestEngine()
	defer e.Stop()

	calls := 0
	h := hooks.HookTimer("core", time.Second, 0, 0, func() error {
		calls++
		return nil
	})
	h.NextFire = fixedNow.Add(-time.Millisecond)

	e.Tick(fixedNow)
	assert.Equal(t, 1, calls)
	assert.Equal(t, fixedNow.Add(time.Second), h.NextFire)

	e.Tick(fixedNow) // not due yet
	assert.Equal(t, 1, calls)
}

func TestTimerRemovedAfterMaxCalls(t *testing.T) {
	e, hooks := newTestEngine()
	defer e.Stop()

	h := hooks.HookTimer("core", 0, 2, 0, func() error { return nil })
	h.NextFire = fixedNow

	e.Tick(fixedNow)
	assert.Equal(t, 1, hooks.Count(hook.KindTimer))
	e.Tick(fixedNow)
	assert.Equal(t, 0, hooks.Count(hook.KindTimer))
}

func TestSIGWINCHResizesAndSignalsAfterRefresh(t *testing.T) {
	e, hooks := newTestEngine()
	defer e.Stop()

	var sawSignal bool
	hooks.HookSignal("core", "signal_sigwinch", 0, func(string, any) error {
		sawSignal = true
		return nil
	})

	e.RequestSIGWINCH(100, 40)
	e.Tick(fixedNow)

	assert.True(t, sawSignal)
	assert.Equal(t, 100, e.Windows.Current().Rect.Width)
}

func TestSubmitExternalRunsOnNextTick(t *testing.T) {
	e, _ := newTestEngine()
	defer e.Stop()

	ran := false
	e.SubmitExternal(func() { ran = true })
	e.Tick(fixedNow)
	assert.True(t, ran)
}
