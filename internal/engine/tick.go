package engine

import (
	"time"

	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/strutil"
)

func matchesSignal(h *hook.Hook, name string) bool {
	return strutil.MatchList(name, []string{h.SignalPattern}, true)
}

// Tick runs exactly one main-loop iteration: expired timers, the periodic
// color-pair reset, pending resize handling, cascading refresh passes, the
// post-resize signal, fd polling, process reaping, then draining external
// wakeups.
func (e *Engine) Tick(now time.Time) {
	e.runExpiredTimers(now)
	e.maybeResetColorPairs(now)
	e.handleSIGWINCH()
	e.runRefreshPasses()
	e.sendPostResizeSignal()
	e.pollFDs()
	e.reapProcesses()
	e.drainExternal()
}

// runExpiredTimers fires every timer hook whose next_fire has passed,
// reschedules it, and removes it once max_calls is reached.
func (e *Engine) runExpiredTimers(now time.Time) {
	if e.Hooks == nil {
		return
	}
	var expired []*hook.Hook
	e.Hooks.ForEach(hook.KindTimer, func(h *hook.Hook) {
		if h.NextFire.After(now) {
			return
		}
		_ = h.TimerCB()
		h.NextFire = now.Add(h.Interval)
		if h.TickTimer() {
			expired = append(expired, h)
		}
	})
	for _, h := range expired {
		e.Hooks.Unhook(h)
	}
}

// maybeResetColorPairs performs the periodic terminal color-pair reset
// when ColorPairResetInterval has elapsed; the actual reset mechanics are
// terminal-specific and live in the term package, so this only tracks
// due-ness and a pending flag for it to consume.
func (e *Engine) maybeResetColorPairs(now time.Time) {
	if e.ColorPairResetInterval <= 0 {
		return
	}
	if now.Sub(e.lastColorPairReset) < e.ColorPairResetInterval {
		return
	}
	e.lastColorPairReset = now
	e.PairsResetPending = true
}

func (e *Engine) handleSIGWINCH() {
	if !e.sigwinchPending {
		return
	}
	e.sigwinchPending = false
	if e.Windows != nil {
		e.Windows.Resize(e.pendingWidth, e.pendingHeight)
	}
	e.sigwinchPostRefresh = true
}

// runRefreshPasses walks dirty windows/buffers, running a second pass if
// the first dirtied something new, since bar redraws can cascade.
func (e *Engine) runRefreshPasses() {
	if e.Refresh == nil {
		return
	}
	if e.Refresh() {
		e.Refresh()
	}
}

func (e *Engine) sendPostResizeSignal() {
	if !e.sigwinchPostRefresh {
		return
	}
	e.sigwinchPostRefresh = false
	e.SignalSend("signal_sigwinch", "sigwinch", nil)
}

func (e *Engine) pollFDs() {
	if e.PollFDs == nil || e.Hooks == nil {
		return
	}
	e.PollFDs(e.nextTimerDelay(), func(fd int, read, write, errReady bool) {
		e.Hooks.ForEach(hook.KindFD, func(h *hook.Hook) {
			if h.FD != fd {
				return
			}
			if (read && h.FDFlags.Read) || (write && h.FDFlags.Write) || (errReady && h.FDFlags.Error) {
				_ = h.FDCB(read, write, errReady)
			}
		})
	})
}

func (e *Engine) reapProcesses() {
	if e.ReapProcess == nil || e.Hooks == nil {
		return
	}
	var done []*hook.Hook
	e.ReapProcess(func(pid int, exited bool, stdout, stderr string) {
		e.Hooks.ForEach(hook.KindProcess, func(h *hook.Hook) {
			if h.ChildPID != pid {
				return
			}
			_ = h.ProcessCB(exited, stdout, stderr)
			if exited {
				done = append(done, h)
			}
		})
	})
	for _, h := range done {
		e.Hooks.Unhook(h)
	}
}
