// Package teek provides a Go binding to the Tcl/Tk windowing toolkit.
//
// The library wraps a native Tcl interpreter and re-exposes its
// string-based calling convention through typed Go values. Widgets,
// fonts, colors and event bindings are all driven through the same two
// primitives: call a Tcl command with encoded arguments, decode the
// string result against a caller-supplied type specification.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	teek/            Root package with the Interp and CommandFunc contracts
//	├── bridge/      High-level API: Call/Eval with result specs, command
//	│                registry, cross-goroutine dispatch, main loop, timeouts
//	├── codec/       Type-spec driven conversion between Go values and the
//	│                interpreter's list/string grammar
//	├── interp/      cgo binding to libtcl and libtk
//	├── values/      Typed wrapper values (Color, ScreenDistance, Font, ...)
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Create an application, call into Tcl, run the event loop:
//
//	in, err := interp.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app, err := bridge.New(in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Quit(ctx)
//
//	sum, err := app.Eval(ctx, codec.Int(), "expr {1 + 2}")
//	fmt.Println(sum) // 3
//
//	app.Run(ctx)
//
// # Type Specifications
//
// Results are decoded against a composable specification:
//
//	codec.Opaque()                         raw string
//	codec.Ignore()                         discard, return nil
//	codec.Bool(), codec.Int(), codec.Float()
//	codec.List(codec.Int())                []any of int64
//	codec.Tuple(codec.Int(), codec.Float())
//	codec.Map(nil, codec.List(codec.Int()))
//
// Specifications nest arbitrarily: a list of tuples of mappings of
// lists is a valid spec.
//
// # Thread Safety
//
// The codec package is pure and safe for unsynchronized concurrent use.
// The interpreter itself is goroutine-affine: all calls must originate
// from the goroutine running the event loop. After App.EnableThreads,
// calls from other goroutines are marshaled onto the loop goroutine and
// block until the result is available.
package teek
