package bridge

import (
	"context"
	"strconv"

	"github.com/teekgo/teek/codec"
)

// Var is a global Tcl variable. Tk widget options such as
// -textvariable take its Name.
type Var struct {
	app  *App
	name string
}

// NewVar allocates a variable with a generated name.
func (a *App) NewVar() *Var {
	return &Var{
		app:  a,
		name: "teek_var_" + strconv.FormatUint(a.varSeq.Add(1), 10),
	}
}

// VarNamed wraps an existing Tcl variable.
func (a *App) VarNamed(name string) *Var {
	return &Var{app: a, name: name}
}

// Name is the Tcl-side variable name.
func (v *Var) Name() string { return v.name }

// MarshalTcl lets a Var be passed directly as a call argument, e.g.
// as a -textvariable option value.
func (v *Var) MarshalTcl() (string, error) { return v.name, nil }

// Set writes the variable; value is encoded like a call argument.
func (v *Var) Set(ctx context.Context, value any) error {
	_, err := v.app.Call(ctx, codec.Ignore(), "set", v.name, value)
	return err
}

// Get reads the variable, decoded against spec. An unset variable is
// a Tcl error.
func (v *Var) Get(ctx context.Context, spec *codec.Spec) (any, error) {
	return v.app.Call(ctx, spec, "set", v.name)
}

// Unset removes the variable.
func (v *Var) Unset(ctx context.Context) error {
	_, err := v.app.Call(ctx, codec.Ignore(), "unset", v.name)
	return err
}

// Wait blocks in the event loop until the variable is written. Events
// keep being processed while waiting, re-entering Go callbacks as they
// fire. Loop goroutine only.
func (v *Var) Wait(ctx context.Context) error {
	_, err := v.app.Call(ctx, codec.Ignore(), "tkwait", "variable", v.name)
	return err
}

// WriteTrace arranges for fn to run on the loop goroutine with the
// variable's new value, decoded against spec, every time the variable
// is written. It returns the trace command name; deleting that command
// removes the trace.
func (v *Var) WriteTrace(ctx context.Context, spec *codec.Spec, fn func(value any, err error)) (string, error) {
	cmd, err := v.app.CreateCommand(ctx, func([]string) (any, error) {
		raw, err := v.app.in.GetVar(v.name)
		if err != nil {
			fn(nil, err)
			return nil, nil
		}
		value, err := codec.Decode(spec, raw)
		fn(value, err)
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	_, err = v.app.Call(ctx, codec.Ignore(), "trace", "add", "variable", v.name, "write", cmd)
	if err != nil {
		return "", err
	}
	return cmd, nil
}
