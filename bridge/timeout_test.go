package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	teekerrors "github.com/teekgo/teek/errors"
)

func TestTimeoutCompletes(t *testing.T) {
	app, in := newTestApp(t)
	ctx := context.Background()

	ran := false
	to, err := app.After(ctx, 100*time.Millisecond, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if to.State() != TimeoutPending {
		t.Errorf("state = %v, want pending", to.State())
	}

	if !in.fireAfter("after#1") {
		t.Fatal("timer was not scheduled")
	}
	if !ran {
		t.Error("callback did not run")
	}
	if to.State() != TimeoutCompleted {
		t.Errorf("state = %v, want completed", to.State())
	}

	// the command is cleaned up after firing
	if len(in.commands) != 0 {
		t.Errorf("%d commands left registered", len(in.commands))
	}

	// a finished timeout cannot be cancelled
	err = to.Cancel(ctx)
	if !errors.Is(err, &teekerrors.Error{Phase: teekerrors.PhaseTimeout, Kind: teekerrors.KindAlreadyDone}) {
		t.Errorf("Cancel after completion = %v, want already_done", err)
	}
}

func TestTimeoutFails(t *testing.T) {
	app, in := newTestApp(t)

	to, err := app.After(context.Background(), time.Millisecond, func() error {
		return errors.New("boom")
	})
	if err != nil {
		t.Fatal(err)
	}
	in.fireAfter("after#1")
	if to.State() != TimeoutFailed {
		t.Errorf("state = %v, want failed", to.State())
	}
}

func TestTimeoutCancel(t *testing.T) {
	app, in := newTestApp(t)
	ctx := context.Background()

	to, err := app.After(ctx, time.Hour, func() error {
		t.Error("cancelled timeout ran")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := to.Cancel(ctx); err != nil {
		t.Fatal(err)
	}
	if to.State() != TimeoutCancelled {
		t.Errorf("state = %v, want cancelled", to.State())
	}
	if in.fireAfter("after#1") {
		t.Error("timer still scheduled after cancel")
	}
	if len(in.commands) != 0 {
		t.Error("command still registered after cancel")
	}

	err = to.Cancel(ctx)
	if !errors.Is(err, &teekerrors.Error{Phase: teekerrors.PhaseTimeout, Kind: teekerrors.KindAlreadyDone}) {
		t.Errorf("second Cancel = %v, want already_done", err)
	}
}

func TestTimeoutCancelErrorKeepsPending(t *testing.T) {
	app, in := newTestApp(t)
	ctx := context.Background()

	ran := false
	to, err := app.After(ctx, time.Hour, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// the Tcl side refuses to cancel; the timer and command stay live
	in.errs["after cancel "+to.afterID] = teekerrors.Tcl(teekerrors.PhaseCall, "event not found")
	if err := to.Cancel(ctx); err == nil {
		t.Fatal("Cancel succeeded despite after cancel failing")
	}
	if to.State() != TimeoutPending {
		t.Errorf("state = %v, want pending after failed cancel", to.State())
	}

	// the still-pending timeout can fire...
	if !in.fireAfter(to.afterID) {
		t.Fatal("timer no longer scheduled")
	}
	if !ran || to.State() != TimeoutCompleted {
		t.Errorf("state = %v, ran = %v, want a completed run", to.State(), ran)
	}
}

func TestAfterIdle(t *testing.T) {
	app, in := newTestApp(t)

	ran := false
	_, err := app.AfterIdle(context.Background(), func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// scheduled with "idle" instead of a millisecond count
	var scheduled bool
	for _, call := range in.calls {
		if len(call) == 3 && call[0] == "after" && call[1] == "idle" {
			scheduled = true
		}
	}
	if !scheduled {
		t.Fatal("no after idle call recorded")
	}

	in.fireAfter("after#1")
	if !ran {
		t.Error("idle callback did not run")
	}
}
