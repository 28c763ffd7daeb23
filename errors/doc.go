// Package errors provides structured error types for the teek library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the raw Tcl string, the
// type specification in force, an element path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindNumericParse).
//		Path("item[2]").
//		Raw("not-a-number").
//		Spec("int").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidBoolean(path, "maybe")
//	err := errors.ArityMismatch(path, raw, 3, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
