// Package engine ties the buffer store, window tree, and hook registry
// into the cooperative single-threaded main loop.
package engine

import (
	"context"
	"time"

	"github.com/boz/go-throttle"
	"github.com/sasha-s/go-deadlock"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/wintree"
)

// RefreshFunc performs one redraw pass over whatever is currently dirty and
// reports whether the pass itself dirtied something new (e.g. a bar
// reacting to a chat-area redraw), so the main loop knows to run a second
// pass when the first one set new dirty flags.
type RefreshFunc func() (dirtiedMore bool)

// FDPoller is supplied by the embedding program (the term package, in this
// module) since actual readiness polling is OS-specific; the engine only
// owns the hook bookkeeping.
type FDPoller func(timeout time.Duration, fire func(fd int, read, write, errReady bool))

// ProcessReaper checks registered child pids for exit and calls fire for
// each that has one.
type ProcessReaper func(fire func(pid int, exited bool, stdout, stderr string))

// Engine is the process-wide coordinator. Every field it touches during
// Tick is mutated only from the goroutine running Run/Tick; externalMu
// guards only the cross-goroutine submission queue, splitting
// single-owner engine state from the one queue other goroutines are
// allowed to touch.
type Engine struct {
	Buffers *bufstore.Store
	Windows *wintree.Tree
	Hooks   *hook.Registry

	Refresh     RefreshFunc
	PollFDs     FDPoller
	ReapProcess ProcessReaper

	ColorPairResetInterval time.Duration
	lastColorPairReset     time.Time
	PairsResetPending      bool

	sigwinchPending     bool
	sigwinchPostRefresh bool
	pendingWidth        int
	pendingHeight       int

	quit bool

	externalMu    deadlock.Mutex
	externalQueue []func()

	wake   throttle.Throttle
	wakeCh chan struct{}

	Now func() time.Time // overridable for deterministic tests
}

// New builds an engine wired to the given buffer store, window tree, and
// hook registry. The caller supplies Refresh/PollFDs/ReapProcess before
// calling Run; Tick works with any subset left nil (useful in tests that
// only want timer/signal behavior).
func New(buffers *bufstore.Store, windows *wintree.Tree, hooks *hook.Registry) *Engine {
	e := &Engine{
		Buffers: buffers,
		Windows: windows,
		Hooks:   hooks,
		Now:     time.Now,
		wakeCh:  make(chan struct{}, 1),
	}
	e.wake = throttle.NewThrottle(10*time.Millisecond, true)
	go func() {
		for e.wake.Next() {
			select {
			case e.wakeCh <- struct{}{}:
			default:
			}
		}
	}()
	return e
}

// Stop releases the wake-coalescing goroutine. Call once, after Run
// returns or instead of Run if the engine is only driven via Tick in tests.
func (e *Engine) Stop() { e.wake.Stop() }

// SubmitExternal queues fn to run on the main loop's goroutine and wakes
// the loop, servicing asynchronous signals captured outside the loop. Safe
// to call from any goroutine — this is the one door into engine state
// that isn't single threaded by construction.
func (e *Engine) SubmitExternal(fn func()) {
	e.externalMu.Lock()
	e.externalQueue = append(e.externalQueue, fn)
	e.externalMu.Unlock()
	e.wake.Trigger()
}

func (e *Engine) drainExternal() {
	e.externalMu.Lock()
	q := e.externalQueue
	e.externalQueue = nil
	e.externalMu.Unlock()
	for _, fn := range q {
		fn()
	}
}

// RequestSIGWINCH records that a terminal resize signal arrived; the next
// Tick resizes the window tree to width×height and marks a full refresh.
func (e *Engine) RequestSIGWINCH(width, height int) {
	e.sigwinchPending = true
	e.pendingWidth, e.pendingHeight = width, height
	e.wake.Trigger()
}

// Quit requests the loop exit after the current Tick.
func (e *Engine) Quit() { e.quit = true }

// Quitting reports whether Quit has been called.
func (e *Engine) Quitting() bool { return e.quit }

// SignalSend fires every signal hook whose pattern matches name.
func (e *Engine) SignalSend(name, sigType string, data any) {
	if e.Hooks == nil {
		return
	}
	e.Hooks.ForEach(hook.KindSignal, func(h *hook.Hook) {
		if matchesSignal(h, name) {
			_ = h.SignalCB(sigType, data)
		}
	})
}

// Run drives the main loop until ctx is cancelled or Quit is called. It
// never busy-waits: absent an expired timer or an external wakeup, it
// blocks until the next timer's deadline or ctx.Done().
func (e *Engine) Run(ctx context.Context) {
	for {
		if e.quit {
			return
		}
		e.Tick(e.Now())
		if e.quit {
			return
		}

		delay := e.nextTimerDelay()
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-e.wakeCh:
			timer.Stop()
		case <-timer.C:
		}
	}
}

func (e *Engine) nextTimerDelay() time.Duration {
	best := time.Duration(1<<63 - 1)
	found := false
	e.Hooks.ForEach(hook.KindTimer, func(h *hook.Hook) {
		d := h.NextFire.Sub(e.Now())
		if !found || d < best {
			best, found = d, true
		}
	})
	if !found {
		return 100 * time.Millisecond
	}
	if best < 0 {
		return 0
	}
	return best
}
