// Package interp binds the native Tcl and Tk libraries through cgo.
//
// Interp implements the root teek.Interp contract over a real
// Tcl_Interp: script evaluation, direct command invocation with one
// Tcl_Obj per argument, Go command registration, variable access and
// event dispatch.
//
// The interpreter is thread-affine. New locks the calling goroutine to
// its OS thread, and every other method must be called from that same
// goroutine. The bridge package layers cross-goroutine dispatch on
// top; nothing here is safe for concurrent use.
//
// A Go command that returns an error or panics produces an empty Tcl
// result, never a Tcl error; the failure is recorded on this package's
// logger (a no-op logger unless SetLogger is called).
package interp
