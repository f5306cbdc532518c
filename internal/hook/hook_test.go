package hook

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityThenInsertionOrder(t *testing.T) {
	r := New()
	var order []string

	r.HookSignal("core", "buffer_opened", 0, func(string, any) error {
		order = append(order, "low-a")
		return nil
	})
	r.HookSignal("core", "buffer_opened", 10, func(string, any) error {
		order = append(order, "high")
		return nil
	})
	r.HookSignal("core", "buffer_opened", 0, func(string, any) error {
		order = append(order, "low-b")
		return nil
	})

	r.ForEach(KindSignal, func(h *Hook) {
		_ = h.SignalCB("buffer_opened", nil)
	})

	assert.Equal(t, []string{"high", "low-a", "low-b"}, order)
}

func TestUnhookDuringIterationIsDeferred(t *testing.T) {
	r := New()
	var calls int
	var self *Hook
	self = r.HookSignal("core", "x", 0, func(string, any) error {
		calls++
		r.Unhook(self)
		return nil
	})
	r.HookSignal("core", "x", 0, func(string, any) error {
		calls++
		return nil
	})

	r.ForEach(KindSignal, func(h *Hook) {
		_ = h.SignalCB("x", nil)
	})
	assert.Equal(t, 2, calls, "both hooks should still fire despite mid-walk unhook")
	assert.Equal(t, 1, r.Count(KindSignal))

	calls = 0
	r.ForEach(KindSignal, func(h *Hook) {
		_ = h.SignalCB("x", nil)
	})
	assert.Equal(t, 1, calls, "unhooked hook must not fire on the next walk")
}

func TestUnhookOutsideIterationIsImmediate(t *testing.T) {
	r := New()
	h := r.HookCommand("core", "/quit", 0, func([]string) error { return nil })
	assert.Equal(t, 1, r.Count(KindCommand))
	r.Unhook(h)
	assert.Equal(t, 0, r.Count(KindCommand))
	assert.Len(t, r.All(), 0)
}

func TestTickTimerExpiresAfterMaxCalls(t *testing.T) {
	h := &Hook{MaxCalls: 3}
	assert.False(t, h.TickTimer())
	assert.False(t, h.TickTimer())
	assert.True(t, h.TickTimer())
}

func TestTickTimerUnlimitedNeverExpires(t *testing.T) {
	h := &Hook{MaxCalls: 0}
	for i := 0; i < 100; i++ {
		assert.False(t, h.TickTimer())
	}
}

func TestUnhookSendsSIGTERMToRunningChild(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start test child: %v", err)
	}

	r := New()
	h := r.HookProcess("core", cmd.Process.Pid, 0, func(bool, string, string) error { return nil })

	r.Unhook(h)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("child did not exit after Unhook sent SIGTERM")
	}
}

func TestUnhookOnAlreadyExitedChildIsNoop(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Skipf("cannot run test child: %v", err)
	}

	r := New()
	h := r.HookProcess("core", cmd.Process.Pid, 0, func(bool, string, string) error { return nil })

	assert.NotPanics(t, func() { r.Unhook(h) })
	assert.Equal(t, 0, r.Count(KindProcess))
}

func TestKindsAreIsolated(t *testing.T) {
	r := New()
	r.HookCommand("core", "/help", 0, func([]string) error { return nil })
	r.HookCompletion("core", "nick", 0, func(string) []any { return nil })

	var sawCommand bool
	r.ForEach(KindCommand, func(h *Hook) { sawCommand = true })
	assert.True(t, sawCommand)

	var sawCompletionInCommandWalk bool
	r.ForEach(KindCommand, func(h *Hook) {
		if h.Kind == KindCompletion {
			sawCompletionInCommandWalk = true
		}
	})
	assert.False(t, sawCompletionInCommandWalk)
}
