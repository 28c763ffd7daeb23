// Package codec converts between Go values and the Tcl string calling
// convention.
//
// Tcl commands take one string per positional argument and return one
// string. This package handles both directions of that boundary:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Go Value ←→ [codec] ←→ Tcl argument / result string  │
//	└──────────────────────────────────────────────────────┘
//
// # Encoding
//
// Encode maps one Go value to one string, with ordered dispatch:
//
//	string              passed through unchanged
//	nil                 "" (Tcl's no-value convention)
//	map                 flattened to a key value key value list
//	bool                "1" / "0"
//	integers, floats    canonical decimal form
//	TclMarshaler        its MarshalTcl result, verbatim
//	slice, array        elements encoded and joined as a Tcl list
//
// Anything else is a programming error and fails with an
// unencodable_value error rather than being stringified.
//
// # Decoding
//
// Decode is driven by a type specification describing the expected
// shape of the result:
//
//	Opaque()                 raw string
//	Ignore()                 discard, return nil
//	Bool()                   Tcl boolean literals
//	Int(), Float()           decimal numbers; "" decodes to nil
//	Parseable(name, parse)   any type with a from-string constructor
//	Tuple(s1, ..., sn)       fixed-arity heterogeneous list
//	List(elem)               variable-length homogeneous list
//	Map(perKey, def)         string-keyed mapping
//
// Specifications compose to arbitrary depth. Malformed specifications
// are rejected eagerly, before the input string is examined.
//
// # List Grammar
//
// SplitList and JoinList implement the Tcl list grammar in pure Go:
// bare words, brace quoting with nesting, double quotes, and the
// standard backslash escapes. JoinList and SplitList are exact
// inverses for every sequence of elements.
//
// # Purity
//
// Everything in this package is stateless and referentially
// transparent. The same (spec, string) pair always yields the same
// value or the same error, and all functions are safe for
// unsynchronized concurrent use.
package codec
