package codec

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/teekgo/teek/errors"
)

// Encode converts one Go value to one Tcl argument string. Dispatch is
// ordered and the first matching rule wins:
//
//  1. string: passed through unchanged
//  2. nil: the empty string, Tcl's convention for "no value"
//  3. map: flattened to alternating keys and values, then rule 7
//  4. bool: "1" or "0"
//  5. integer or float: canonical decimal form
//  6. TclMarshaler: its own string, verbatim
//  7. slice or array: elements encoded recursively and joined as a list
//
// Any other value is a programming error and yields an
// unencodable_value error; nothing is ever stringified by fallback.
func Encode(v any) (string, error) {
	return encodeValue(v, nil)
}

// EncodeAll encodes each value in order, one string per value.
func EncodeAll(values ...any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, err := encodeValue(v, []string{"arg[" + strconv.Itoa(i) + "]"})
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func encodeValue(v any, path []string) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if v == nil {
		return "", nil
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.Map {
		return encodeMapping(rv, path)
	}

	if b, ok := v.(bool); ok {
		if b {
			return "1", nil
		}
		return "0", nil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	}

	if m, ok := v.(TclMarshaler); ok {
		s, err := m.MarshalTcl()
		if err != nil {
			return "", errors.New(errors.PhaseEncode, errors.KindUnencodableValue).
				Path(path...).
				Value(v).
				Cause(err).
				Detail("MarshalTcl failed").
				Build()
		}
		return s, nil
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return encodeSequence(rv, path)
	}

	return "", errors.Unencodable(path, v, fmt.Sprintf("%T", v))
}

// encodeMapping flattens a map into a key value key value list. Go
// maps have no iteration order, so keys are sorted by their encoded
// form to keep output deterministic.
func encodeMapping(rv reflect.Value, path []string) (string, error) {
	type pair struct {
		key   string
		value reflect.Value
	}
	pairs := make([]pair, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		k, err := encodeValue(iter.Key().Interface(), append(path, "key"))
		if err != nil {
			return "", err
		}
		pairs = append(pairs, pair{key: k, value: iter.Value()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	elems := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		v, err := encodeValue(p.value.Interface(), append(path, "key["+p.key+"]"))
		if err != nil {
			return "", err
		}
		elems = append(elems, p.key, v)
	}
	return JoinList(elems...), nil
}

func encodeSequence(rv reflect.Value, path []string) (string, error) {
	elems := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := encodeValue(rv.Index(i).Interface(), append(path, "item["+strconv.Itoa(i)+"]"))
		if err != nil {
			return "", err
		}
		elems[i] = s
	}
	return JoinList(elems...), nil
}
