package bridge

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/teekgo/teek"
	"github.com/teekgo/teek/codec"
	"github.com/teekgo/teek/errors"
)

const defaultPollInterval = 50 * time.Millisecond

// App drives one Tcl/Tk interpreter.
type App struct {
	in      teek.Interp
	log     *zap.Logger
	loopGID uint64
	poll    time.Duration

	dispatch   chan *pending
	threadsOn  atomic.Bool
	pollerName string
	afterID    string

	commandSeq atomic.Uint64
	varSeq     atomic.Uint64

	// OnQuit runs on the loop goroutine just before the interpreter is
	// destroyed.
	OnQuit Callback

	quitting bool
	quitCh   chan struct{}
}

type pending struct {
	fn   func() (any, error)
	done chan pendingResult
}

type pendingResult struct {
	value any
	err   error
}

// Option configures New.
type Option func(*App)

// WithLogger sets the logger used for command and timeout failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithPollInterval sets how often the loop goroutine checks for
// queued cross-goroutine calls once EnableThreads is active.
func WithPollInterval(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.poll = d
		}
	}
}

// New wraps an interpreter. It must be called from the goroutine the
// interpreter was created on; that goroutine becomes the loop
// goroutine. The root window is withdrawn until explicitly shown.
func New(in teek.Interp, opts ...Option) (*App, error) {
	a := &App{
		in:      in,
		log:     zap.NewNop(),
		loopGID: goroutineID(),
		poll:    defaultPollInterval,
		quitCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if _, err := in.Call("wm", "withdraw", "."); err != nil {
		return nil, err
	}
	return a, nil
}

// Interp exposes the wrapped interpreter. Use it only from the loop
// goroutine.
func (a *App) Interp() teek.Interp { return a.in }

// Call invokes a Tcl command. Each argument is encoded to exactly one
// string, and the result string is decoded against spec.
func (a *App) Call(ctx context.Context, spec *codec.Spec, cmd string, args ...any) (any, error) {
	if err := codec.Validate(spec); err != nil {
		return nil, err
	}
	encoded, err := codec.EncodeAll(args...)
	if err != nil {
		return nil, err
	}
	words := append([]string{cmd}, encoded...)

	raw, err := a.perform(ctx, errors.PhaseCall, func() (any, error) {
		return a.in.Call(words...)
	})
	if err != nil {
		return nil, err
	}
	return codec.Decode(spec, raw.(string))
}

// Eval runs a string of Tcl code and decodes the result against spec.
// Prefer Call: Eval re-parses its argument as Tcl, so values
// containing spaces need manual quoting.
func (a *App) Eval(ctx context.Context, spec *codec.Spec, code string) (any, error) {
	if err := codec.Validate(spec); err != nil {
		return nil, err
	}
	raw, err := a.perform(ctx, errors.PhaseEval, func() (any, error) {
		return a.in.Eval(code)
	})
	if err != nil {
		return nil, err
	}
	return codec.Decode(spec, raw.(string))
}

// CreateCommand exposes fn to Tcl under a generated command name and
// returns that name. The return value of fn is encoded like a Call
// argument. A failing or panicking fn yields an empty Tcl result, not
// a Tcl error; the failure goes to the logger.
func (a *App) CreateCommand(ctx context.Context, fn func(args []string) (any, error)) (string, error) {
	name := "teek_command_" + strconv.FormatUint(a.commandSeq.Add(1), 10)

	wrapped := func(args []string) (string, error) {
		value, err := fn(args)
		if err != nil {
			a.log.Error("command callback failed",
				zap.String("command", name),
				zap.Error(err))
			return "", nil
		}
		encoded, err := codec.Encode(value)
		if err != nil {
			a.log.Error("command result not encodable",
				zap.String("command", name),
				zap.Error(err))
			return "", nil
		}
		return encoded, nil
	}

	_, err := a.perform(ctx, errors.PhaseCommand, func() (any, error) {
		return nil, a.in.CreateCommand(name, wrapped)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// DeleteCommand removes a command returned by CreateCommand.
func (a *App) DeleteCommand(ctx context.Context, name string) error {
	_, err := a.perform(ctx, errors.PhaseCommand, func() (any, error) {
		return nil, a.in.DeleteCommand(name)
	})
	return err
}

// EnableThreads permits App calls from goroutines other than the loop
// goroutine. It must be called once, from the loop goroutine. Queued
// calls are serviced by a poller command rescheduled through Tcl's
// after timer, so the event loop must be running for them to make
// progress.
func (a *App) EnableThreads(ctx context.Context) error {
	if goroutineID() != a.loopGID {
		return errors.WrongThread(errors.PhaseInit, "EnableThreads")
	}
	if a.threadsOn.Load() {
		return errors.InvalidInput(errors.PhaseInit, "EnableThreads called twice")
	}

	a.dispatch = make(chan *pending, 64)
	a.pollerName = "teek_queue_poller"
	err := a.in.CreateCommand(a.pollerName, func([]string) (string, error) {
		a.drainDispatch()
		a.scheduleAfterPoll()
		return "", nil
	})
	if err != nil {
		return err
	}

	a.drainDispatch()
	a.scheduleAfterPoll()
	a.threadsOn.Store(true)
	return nil
}

func (a *App) scheduleAfterPoll() {
	ms := strconv.FormatInt(a.poll.Milliseconds(), 10)
	id, err := a.in.Call("after", ms, a.pollerName)
	if err != nil {
		a.log.Error("rescheduling dispatch poller failed", zap.Error(err))
		return
	}
	a.afterID = id
}

func (a *App) drainDispatch() {
	for {
		select {
		case p := <-a.dispatch:
			value, err := p.fn()
			p.done <- pendingResult{value: value, err: err}
		default:
			return
		}
	}
}

// perform runs fn on the loop goroutine: directly when already there,
// otherwise queued through the dispatch channel.
func (a *App) perform(ctx context.Context, phase errors.Phase, fn func() (any, error)) (any, error) {
	if goroutineID() == a.loopGID {
		return fn()
	}
	if !a.threadsOn.Load() {
		return nil, errors.NotInitialized(phase, "cross-goroutine dispatch (EnableThreads)")
	}

	p := &pending{fn: fn, done: make(chan pendingResult, 1)}
	select {
	case a.dispatch <- p:
	case <-a.quitCh:
		return nil, errors.AlreadyDone(phase, "interpreter destroyed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-p.done:
		return r.value, r.err
	case <-a.quitCh:
		// the poller may have serviced p in its final drain
		select {
		case r := <-p.done:
			return r.value, r.err
		default:
		}
		return nil, errors.AlreadyDone(phase, "interpreter destroyed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes events until the interpreter is destroyed, no event
// sources remain, or ctx is cancelled. Cancellation is observed
// between events, so with EnableThreads active it takes effect within
// one poll interval.
func (a *App) Run(ctx context.Context) error {
	if goroutineID() != a.loopGID {
		return errors.WrongThread(errors.PhaseEvent, "Run")
	}
	for !a.in.Deleted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !a.in.DoOneEvent(teek.AllEvents) {
			return nil
		}
	}
	return nil
}

// Quit runs the OnQuit callbacks, cancels the dispatch poller and
// destroys the interpreter. It is safe to call more than once. Calls
// still queued from other goroutines fail with already_done instead of
// waiting on a poller that will never run again.
func (a *App) Quit(ctx context.Context) error {
	_, err := a.perform(ctx, errors.PhaseEvent, func() (any, error) {
		if a.quitting || a.in.Deleted() {
			return nil, nil
		}
		a.quitting = true

		a.OnQuit.Run(a.log)

		if a.afterID != "" {
			if _, err := a.in.Call("after", "cancel", a.afterID); err != nil {
				a.log.Warn("cancelling dispatch poller failed", zap.Error(err))
			}
		}
		if _, err := a.in.Call("destroy", "."); err != nil {
			a.log.Warn("destroying root window failed", zap.Error(err))
		}
		a.in.Destroy()
		close(a.quitCh)
		return nil, nil
	})
	return err
}

// goroutineID parses the current goroutine's id from its stack header
// ("goroutine 123 [running]:"). The runtime offers no direct API.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
