package codec

import (
	"sort"
	"strings"

	"github.com/teekgo/teek/errors"
)

// Kind identifies a type specification variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindOpaque
	KindIgnore
	KindBool
	KindInt
	KindFloat
	KindParseable
	KindTuple
	KindList
	KindMap
)

// Spec describes how to decode a Tcl result string into a Go value.
// Specs are immutable after construction and safe to share and reuse.
type Spec struct {
	kind   Kind
	name   string
	parse  func(string) (any, error)
	elem   *Spec
	items  []*Spec
	perKey map[string]*Spec
	def    *Spec
}

// TclMarshaler is implemented by types that know their own Tcl string
// form. The returned string is used verbatim as one argument; the
// implementation owns any quoting.
type TclMarshaler interface {
	MarshalTcl() (string, error)
}

// TclUnmarshaler is implemented by types constructible from a Tcl
// string.
type TclUnmarshaler interface {
	UnmarshalTcl(s string) error
}

var (
	opaqueSpec = &Spec{kind: KindOpaque}
	ignoreSpec = &Spec{kind: KindIgnore}
	boolSpec   = &Spec{kind: KindBool}
	intSpec    = &Spec{kind: KindInt}
	floatSpec  = &Spec{kind: KindFloat}
)

// Opaque returns the raw result string unchanged.
func Opaque() *Spec { return opaqueSpec }

// Ignore discards the result and decodes to nil.
func Ignore() *Spec { return ignoreSpec }

// Bool decodes Tcl boolean literals. The empty string decodes to nil.
func Bool() *Spec { return boolSpec }

// Int decodes a decimal integer as int64. The empty string decodes to
// nil, not zero.
func Int() *Spec { return intSpec }

// Float decodes a decimal floating point number as float64. The empty
// string decodes to nil, not zero.
func Float() *Spec { return floatSpec }

// Parseable decodes via an arbitrary from-string constructor. The
// empty string decodes to nil without invoking parse. name appears in
// error messages.
func Parseable(name string, parse func(string) (any, error)) *Spec {
	return &Spec{kind: KindParseable, name: name, parse: parse}
}

// ParseableInto builds a Parseable spec for any type whose pointer
// implements TclUnmarshaler. The decoded value is a T.
func ParseableInto[T any, PT interface {
	*T
	TclUnmarshaler
}](name string) *Spec {
	return Parseable(name, func(s string) (any, error) {
		var v T
		if err := PT(&v).UnmarshalTcl(s); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Tuple decodes a fixed-arity list, one spec per position. The decoded
// value is a []any of the same length.
func Tuple(items ...*Spec) *Spec {
	return &Spec{kind: KindTuple, items: items}
}

// List decodes a variable-length list of elem. The decoded value is a
// []any, empty for an empty list.
func List(elem *Spec) *Spec {
	return &Spec{kind: KindList, elem: elem}
}

// Map decodes an even-length list of alternating keys and values into
// a map[string]any. perKey assigns specs to known keys and may be nil;
// def decodes values under every other key.
func Map(perKey map[string]*Spec, def *Spec) *Spec {
	return &Spec{kind: KindMap, perKey: perKey, def: def}
}

// Validate checks that s is well formed. Decode runs it implicitly;
// call it directly to reject a bad spec before any strings exist.
func Validate(s *Spec) error {
	if s == nil {
		return errors.UnknownSpec(errors.PhaseDecode, "nil specification")
	}
	switch s.kind {
	case KindOpaque, KindIgnore, KindBool, KindInt, KindFloat:
		return nil
	case KindParseable:
		if s.parse == nil {
			return errors.UnknownSpec(errors.PhaseDecode, "parseable spec without a parse function")
		}
		return nil
	case KindTuple:
		for i, item := range s.items {
			if item == nil {
				return errors.New(errors.PhaseDecode, errors.KindUnknownTypeSpec).
					Detail("tuple member %d is nil", i).
					Build()
			}
			if err := Validate(item); err != nil {
				return err
			}
		}
		return nil
	case KindList:
		return Validate(s.elem)
	case KindMap:
		if s.def == nil {
			return errors.UnknownSpec(errors.PhaseDecode, "map spec without a default value spec")
		}
		for key, vs := range s.perKey {
			if vs == nil {
				return errors.New(errors.PhaseDecode, errors.KindUnknownTypeSpec).
					Detail("map spec for key %q is nil", key).
					Build()
			}
			if err := Validate(vs); err != nil {
				return err
			}
		}
		return Validate(s.def)
	default:
		return errors.New(errors.PhaseDecode, errors.KindUnknownTypeSpec).
			Detail("unknown spec kind %d", s.kind).
			Build()
	}
}

// Kind reports which variant s is.
func (s *Spec) Kind() Kind {
	if s == nil {
		return KindInvalid
	}
	return s.kind
}

// String renders the spec for error messages, e.g. "list(tuple(int, float))".
func (s *Spec) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.kind {
	case KindOpaque:
		return "opaque"
	case KindIgnore:
		return "ignore"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindParseable:
		if s.name != "" {
			return s.name
		}
		return "parseable"
	case KindTuple:
		parts := make([]string, len(s.items))
		for i, item := range s.items {
			parts[i] = item.String()
		}
		return "tuple(" + strings.Join(parts, ", ") + ")"
	case KindList:
		return "list(" + s.elem.String() + ")"
	case KindMap:
		var b strings.Builder
		b.WriteString("map(")
		keys := make([]string, 0, len(s.perKey))
		for key := range s.perKey {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			b.WriteString(key)
			b.WriteByte(':')
			b.WriteString(s.perKey[key].String())
			b.WriteString(", ")
		}
		b.WriteString("default=")
		b.WriteString(s.def.String())
		b.WriteByte(')')
		return b.String()
	default:
		return "invalid"
	}
}
