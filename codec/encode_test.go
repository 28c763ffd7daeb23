package codec

import (
	"errors"
	"fmt"
	"testing"

	teekerrors "github.com/teekgo/teek/errors"
)

type tagValue struct {
	name string
}

func (v tagValue) MarshalTcl() (string, error) {
	if v.name == "" {
		return "", fmt.Errorf("tag has no name")
	}
	return "tag::" + v.name, nil
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string passes through", "hello world", "hello world"},
		{"string is not re-quoted", "{a b}", "{a b}"},
		{"nil is empty string", nil, ""},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(1) << 40, "1099511627776"},
		{"uint8", uint8(255), "255"},
		{"float", 2.5, "2.5"},
		{"float32", float32(0.5), "0.5"},
		{"whole float", 4.0, "4"},
		{"marshaler", tagValue{name: "x"}, "tag::x"},
		{"slice of strings", []string{"a", "b c"}, "a {b c}"},
		{"slice of ints", []int{1, 2, 3}, "1 2 3"},
		{"nested slices", []any{[]int{1, 2}, []int{3}}, "{1 2} 3"},
		{"empty slice", []string{}, ""},
		{"slice with empty string", []string{"a", "", "b"}, "a {} b"},
		{"array", [2]int{8, 9}, "8 9"},
		{"map flattens sorted", map[string]int{"b": 2, "a": 1}, "a 1 b 2"},
		{"map values encoded", map[string][]int{"a": {1}, "b": {2}}, "a 1 b 2"},
		{"map with spacey values", map[string]string{"k": "v w"}, "k {v w}"},
		{"nil slice", []string(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Encode(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeUnencodable(t *testing.T) {
	bad := []any{
		struct{ x int }{1},
		make(chan int),
		func() {},
		map[string]any{"ok": make(chan int)},
		[]any{1, struct{}{}},
	}
	for _, in := range bad {
		_, err := Encode(in)
		if err == nil {
			t.Errorf("Encode(%T) succeeded, want unencodable_value", in)
			continue
		}
		if !errors.Is(err, &teekerrors.Error{Phase: teekerrors.PhaseEncode, Kind: teekerrors.KindUnencodableValue}) {
			t.Errorf("Encode(%T) error = %v, want unencodable_value", in, err)
		}
	}
}

func TestEncodeMarshalerError(t *testing.T) {
	_, err := Encode(tagValue{})
	if err == nil {
		t.Fatal("expected error from failing MarshalTcl")
	}
	var terr *teekerrors.Error
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if terr.Cause == nil {
		t.Error("marshaler failure lost its cause")
	}
}

func TestEncodeAll(t *testing.T) {
	got, err := EncodeAll("set", "x", 42)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"set", "x", "42"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EncodeAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	_, err = EncodeAll("ok", make(chan int))
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *teekerrors.Error
	errors.As(err, &terr)
	if len(terr.Path) == 0 || terr.Path[0] != "arg[1]" {
		t.Errorf("path = %v, want leading arg[1]", terr.Path)
	}
}
