package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // Go to Tcl
	PhaseDecode  Phase = "decode"  // Tcl to Go
	PhaseCall    Phase = "call"    // Tcl command invocation
	PhaseEval    Phase = "eval"    // Tcl script evaluation
	PhaseCommand Phase = "command" // Go command registration/dispatch
	PhaseEvent   Phase = "event"   // event loop
	PhaseTimeout Phase = "timeout" // after/idle timeouts
	PhaseInit    Phase = "init"    // interpreter setup
)

// Kind categorizes the error
type Kind string

const (
	KindUnencodableValue   Kind = "unencodable_value"
	KindInvalidBoolean     Kind = "invalid_boolean"
	KindNumericParse       Kind = "numeric_parse"
	KindArityMismatch      Kind = "arity_mismatch"
	KindOddMappingElements Kind = "odd_mapping_elements"
	KindUnknownTypeSpec    Kind = "unknown_type_spec"
	KindBadListSyntax      Kind = "bad_list_syntax"
	KindTclError           Kind = "tcl_error"
	KindNotInitialized     Kind = "not_initialized"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindWrongThread        Kind = "wrong_thread"
	KindAlreadyDone        Kind = "already_done"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Raw    string
	Spec   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Spec != "" {
		b.WriteString(": spec ")
		b.WriteString(e.Spec)
	}

	if e.Raw != "" {
		if e.Spec != "" {
			b.WriteString(", ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString("input ")
		b.WriteString(fmt.Sprintf("%q", e.Raw))
	}

	if e.Detail != "" {
		if e.Spec != "" || e.Raw != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Raw sets the raw Tcl string being decoded
func (b *Builder) Raw(s string) *Builder {
	b.err.Raw = s
	return b
}

// Spec sets the type specification in force
func (b *Builder) Spec(s string) *Builder {
	b.err.Spec = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unencodable creates an error for a value the encoder has no rule for
func Unencodable(path []string, value any, goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnencodableValue,
		Path:   path,
		Value:  value,
		Detail: fmt.Sprintf("no encoding rule for Go type %s", goType),
	}
}

// InvalidBoolean creates an error for a string outside Tcl's boolean grammar
func InvalidBoolean(path []string, raw string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBoolean,
		Path:   path,
		Raw:    raw,
		Spec:   "bool",
		Detail: "expected 1/0/true/false/yes/no/on/off",
	}
}

// NumericParse creates an error for an unparseable numeric string
func NumericParse(path []string, raw, spec string, cause error) *Error {
	return &Error{
		Phase: PhaseDecode,
		Kind:  KindNumericParse,
		Path:  path,
		Raw:   raw,
		Spec:  spec,
		Cause: cause,
	}
}

// ArityMismatch creates an error for a tuple with the wrong element count
func ArityMismatch(path []string, raw string, want, got int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindArityMismatch,
		Path:   path,
		Raw:    raw,
		Detail: fmt.Sprintf("expected a sequence of %d elements, got %d", want, got),
	}
}

// OddMapping creates an error for a mapping string with an odd element count
func OddMapping(path []string, raw string, count int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOddMappingElements,
		Path:   path,
		Raw:    raw,
		Detail: fmt.Sprintf("cannot divide %d elements into key/value pairs", count),
	}
}

// UnknownSpec creates an error for a malformed type specification
func UnknownSpec(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTypeSpec,
		Detail: detail,
	}
}

// BadListSyntax creates an error for a string that is not a valid Tcl list
func BadListSyntax(raw, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBadListSyntax,
		Raw:    raw,
		Detail: detail,
	}
}

// Tcl wraps an error result from the interpreter
func Tcl(phase Phase, result string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTclError,
		Raw:    result,
		Detail: result,
	}
}

// NotInitialized creates a not-initialized error for a missing setup step
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// WrongThread creates an error for a call from outside the loop goroutine
func WrongThread(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindWrongThread,
		Detail: fmt.Sprintf("%s must be called from the event loop goroutine", what),
	}
}

// AlreadyDone creates an error for an operation on a finished resource
func AlreadyDone(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyDone,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
