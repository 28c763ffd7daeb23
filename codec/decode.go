package codec

import (
	"strconv"
	"strings"

	"github.com/teekgo/teek/errors"
)

// Decode converts one raw Tcl result string into a Go value described
// by spec. The spec is validated eagerly: a malformed spec fails
// before raw is examined.
//
// The absent marker is nil: Ignore always decodes to it, and the empty
// string decodes to it under Bool, Int, Float and Parseable specs.
// That empty-string rule is Tcl's "no value" convention, not error
// suppression.
func Decode(spec *Spec, raw string) (any, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}
	return decodeValue(spec, raw, nil)
}

func decodeValue(spec *Spec, raw string, path []string) (any, error) {
	switch spec.kind {
	case KindOpaque:
		return raw, nil

	case KindIgnore:
		return nil, nil

	case KindBool:
		if raw == "" {
			// '' is not a valid boolean but it is Tcl's no-value form
			return nil, nil
		}
		b, ok := parseBoolean(raw)
		if !ok {
			return nil, errors.InvalidBoolean(path, raw)
		}
		return b, nil

	case KindInt:
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, errors.NumericParse(path, raw, "int", err)
		}
		return n, nil

	case KindFloat:
		if raw == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.NumericParse(path, raw, "float", err)
		}
		return f, nil

	case KindParseable:
		if raw == "" {
			return nil, nil
		}
		v, err := spec.parse(raw)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path(path...).
				Raw(raw).
				Spec(spec.String()).
				Cause(err).
				Build()
		}
		return v, nil

	case KindTuple:
		elems, err := SplitList(raw)
		if err != nil {
			return nil, err
		}
		if len(elems) != len(spec.items) {
			return nil, errors.ArityMismatch(path, raw, len(spec.items), len(elems))
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			v, err := decodeValue(spec.items[i], elem, append(path, "item["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindList:
		elems, err := SplitList(raw)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			v, err := decodeValue(spec.elem, elem, append(path, "item["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindMap:
		elems, err := SplitList(raw)
		if err != nil {
			return nil, err
		}
		if len(elems)%2 != 0 {
			return nil, errors.OddMapping(path, raw, len(elems))
		}
		out := make(map[string]any, len(elems)/2)
		for i := 0; i < len(elems); i += 2 {
			key := elems[i]
			vspec, ok := spec.perKey[key]
			if !ok {
				vspec = spec.def
			}
			v, err := decodeValue(vspec, elems[i+1], append(path, "key["+key+"]"))
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil

	default:
		// Validate rejects these before decoding starts
		return nil, errors.New(errors.PhaseDecode, errors.KindUnknownTypeSpec).
			Path(path...).
			Raw(raw).
			Detail("unknown spec kind %d", spec.kind).
			Build()
	}
}

var booleanWords = []struct {
	word  string
	value bool
}{
	{"true", true},
	{"false", false},
	{"yes", true},
	{"no", false},
	{"on", true},
	{"off", false},
}

// parseBoolean implements Tcl's boolean grammar: "0", "1", or any
// case-insensitive unambiguous prefix of true, false, yes, no, on or
// off. "o" alone is ambiguous between on and off and is rejected.
func parseBoolean(s string) (value, ok bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	}
	lower := strings.ToLower(s)
	matched := false
	for _, w := range booleanWords {
		if strings.HasPrefix(w.word, lower) {
			if matched && w.value != value {
				return false, false
			}
			value, matched = w.value, true
		}
	}
	return value, matched
}
