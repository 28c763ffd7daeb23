// Package bridge is the high-level API for driving a Tcl/Tk
// interpreter from Go.
//
// An App wraps a teek.Interp and layers three things over it: typed
// calls (arguments encoded and results decoded by the codec package),
// a registry of Go functions callable from Tcl, and the goroutine
// affinity contract.
//
//	in, err := interp.New()
//	app, err := bridge.New(in)
//	defer app.Quit(ctx)
//
//	n, err := app.Call(ctx, codec.Int(), "string", "length", "hello")
//
// # Goroutine Affinity
//
// The interpreter belongs to the goroutine that created it; that same
// goroutine must call New and Run. By default every App method must be
// called from it too. After EnableThreads, methods called from other
// goroutines are queued, executed on the loop goroutine between
// events, and their result handed back; without EnableThreads such
// calls fail fast instead of corrupting the interpreter.
package bridge
