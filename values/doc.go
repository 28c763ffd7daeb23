// Package values provides typed wrappers for common Tk value strings.
//
// Each type implements codec.TclMarshaler and codec.TclUnmarshaler, so
// it can be passed directly as a call argument and requested as a
// result via codec.ParseableInto:
//
//	spec := codec.ParseableInto[values.Color]("color")
//	bg, err := app.Call(ctx, spec, "ttk::style", "lookup", ".", "-background")
package values
