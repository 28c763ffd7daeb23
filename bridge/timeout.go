package bridge

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teekgo/teek/codec"
	"github.com/teekgo/teek/errors"
)

// TimeoutState tracks a timeout through its life.
type TimeoutState int

const (
	TimeoutPending TimeoutState = iota
	TimeoutCompleted
	TimeoutFailed
	TimeoutCancelled
)

func (s TimeoutState) String() string {
	switch s {
	case TimeoutPending:
		return "pending"
	case TimeoutCompleted:
		return "completed"
	case TimeoutFailed:
		return "failed"
	case TimeoutCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Timeout is a callback scheduled through Tcl's after timer.
type Timeout struct {
	app *App

	mu      sync.Mutex
	state   TimeoutState
	afterID string
	cmd     string
}

// After schedules fn to run on the loop goroutine after d. A failing
// fn marks the timeout failed and logs the error.
func (a *App) After(ctx context.Context, d time.Duration, fn func() error) (*Timeout, error) {
	return a.newTimeout(ctx, strconv.FormatInt(d.Milliseconds(), 10), fn)
}

// AfterIdle schedules fn to run as soon as the loop goroutine is idle.
func (a *App) AfterIdle(ctx context.Context, fn func() error) (*Timeout, error) {
	return a.newTimeout(ctx, "idle", fn)
}

func (a *App) newTimeout(ctx context.Context, afterWhat string, fn func() error) (*Timeout, error) {
	to := &Timeout{app: a, state: TimeoutPending}

	cmd, err := a.CreateCommand(ctx, func([]string) (any, error) {
		to.run(fn)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	to.cmd = cmd

	id, err := a.Call(ctx, codec.Opaque(), "after", afterWhat, cmd)
	if err != nil {
		// the command is orphaned without its timer
		if derr := a.DeleteCommand(ctx, cmd); derr != nil {
			a.log.Warn("cleaning up timeout command failed", zap.Error(derr))
		}
		return nil, err
	}
	to.afterID = id.(string)
	return to, nil
}

// run executes on the loop goroutine when the timer fires.
func (to *Timeout) run(fn func() error) {
	to.mu.Lock()
	if to.state != TimeoutPending {
		to.mu.Unlock()
		return
	}
	to.mu.Unlock()

	err := fn()

	to.mu.Lock()
	if err != nil {
		to.state = TimeoutFailed
	} else {
		to.state = TimeoutCompleted
	}
	cmd := to.cmd
	to.mu.Unlock()

	if err != nil {
		to.app.log.Error("timeout callback failed",
			zap.String("after_id", to.afterID),
			zap.Error(err))
	}
	// the timer fired, the command will not be called again
	if derr := to.app.in.DeleteCommand(cmd); derr != nil {
		to.app.log.Warn("deleting timeout command failed", zap.Error(derr))
	}
}

// State reports where the timeout is in its life.
func (to *Timeout) State() TimeoutState {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.state
}

// Cancel prevents a pending timeout from running. Cancelling a timeout
// that already ran or was already cancelled is an error.
func (to *Timeout) Cancel(ctx context.Context) error {
	to.mu.Lock()
	if to.state != TimeoutPending {
		state := to.state
		to.mu.Unlock()
		return errors.AlreadyDone(errors.PhaseTimeout, "cannot cancel a "+state.String()+" timeout")
	}
	to.state = TimeoutCancelled
	to.mu.Unlock()

	if _, err := to.app.Call(ctx, codec.Ignore(), "after", "cancel", to.afterID); err != nil {
		// the timer is still live, so the timeout is still pending
		to.mu.Lock()
		to.state = TimeoutPending
		to.mu.Unlock()
		return err
	}
	return to.app.DeleteCommand(ctx, to.cmd)
}
