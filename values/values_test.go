package values

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/teekgo/teek/codec"
)

func TestColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", RGB(255, 255, 255)},
		{"#000000", RGB(0, 0, 0)},
		{"#ff0080", RGB(255, 0, 128)},
		{"#ffff00000000", RGB(255, 0, 0)},
		{"red", Named("red")},
		{"light goldenrod yellow", Named("light goldenrod yellow")},
	}
	for _, tt := range tests {
		var c Color
		if err := c.UnmarshalTcl(tt.in); err != nil {
			t.Errorf("UnmarshalTcl(%q): %v", tt.in, err)
			continue
		}
		if c != tt.want {
			t.Errorf("UnmarshalTcl(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}

	for _, bad := range []string{"", "#", "#ff", "#fffg00", "#ffff0"} {
		var c Color
		if err := c.UnmarshalTcl(bad); err == nil {
			t.Errorf("UnmarshalTcl(%q) succeeded, want error", bad)
		}
	}

	s, err := RGB(255, 0, 128).MarshalTcl()
	if err != nil {
		t.Fatal(err)
	}
	if s != "#ff0080" {
		t.Errorf("MarshalTcl = %q", s)
	}
	s, _ = Named("red").MarshalTcl()
	if s != "red" {
		t.Errorf("MarshalTcl = %q", s)
	}
}

func TestScreenDistance(t *testing.T) {
	tests := []struct {
		in   string
		want ScreenDistance
	}{
		{"5", ScreenDistance{Value: 5}},
		{"2.5c", ScreenDistance{Value: 2.5, Unit: Centimeters}},
		{"1i", ScreenDistance{Value: 1, Unit: Inches}},
		{"10m", ScreenDistance{Value: 10, Unit: Millimeters}},
		{"72p", ScreenDistance{Value: 72, Unit: Points}},
	}
	for _, tt := range tests {
		var d ScreenDistance
		if err := d.UnmarshalTcl(tt.in); err != nil {
			t.Errorf("UnmarshalTcl(%q): %v", tt.in, err)
			continue
		}
		if d != tt.want {
			t.Errorf("UnmarshalTcl(%q) = %v, want %v", tt.in, d, tt.want)
		}
	}

	for _, bad := range []string{"", "c", "x5", "5x"} {
		var d ScreenDistance
		if err := d.UnmarshalTcl(bad); err == nil {
			t.Errorf("UnmarshalTcl(%q) succeeded, want error", bad)
		}
	}

	d := ScreenDistance{Value: 1, Unit: Inches}
	if px := d.ToPixels(96); px != 96 {
		t.Errorf("1 inch at 96 dpi = %v px", px)
	}
	d = ScreenDistance{Value: 72, Unit: Points}
	if px := d.ToPixels(96); px != 96 {
		t.Errorf("72 points at 96 dpi = %v px", px)
	}
	d = ScreenDistance{Value: 30}
	if px := d.ToPixels(96); px != 30 {
		t.Errorf("30 px = %v px", px)
	}
}

func TestTextIndex(t *testing.T) {
	var ti TextIndex
	if err := ti.UnmarshalTcl("3.14"); err != nil {
		t.Fatal(err)
	}
	if ti != (TextIndex{Line: 3, Column: 14}) {
		t.Errorf("got %v", ti)
	}

	s, err := TextIndex{Line: 1, Column: 0}.MarshalTcl()
	if err != nil {
		t.Fatal(err)
	}
	if s != "1.0" {
		t.Errorf("MarshalTcl = %q", s)
	}

	for _, bad := range []string{"", "3", "3.", "a.b", "3.x", "end"} {
		var ti TextIndex
		if err := ti.UnmarshalTcl(bad); err == nil {
			t.Errorf("UnmarshalTcl(%q) succeeded, want error", bad)
		}
	}

	if !(TextIndex{1, 5}).Less(TextIndex{2, 0}) {
		t.Error("1.5 should be before 2.0")
	}
	if (TextIndex{2, 0}).Less(TextIndex{2, 0}) {
		t.Error("an index is not before itself")
	}
}

func TestFont(t *testing.T) {
	tests := []struct {
		in   string
		want Font
	}{
		{"Helvetica", Font{Family: "Helvetica"}},
		{"Helvetica 12", Font{Family: "Helvetica", Size: 12}},
		{"Helvetica -14 bold", Font{Family: "Helvetica", Size: -14, Bold: true}},
		{"{DejaVu Sans} 10 italic underline", Font{Family: "DejaVu Sans", Size: 10, Italic: true, Underline: true}},
		{"TkDefaultFont", Font{Family: "TkDefaultFont"}},
	}
	for _, tt := range tests {
		var f Font
		if err := f.UnmarshalTcl(tt.in); err != nil {
			t.Errorf("UnmarshalTcl(%q): %v", tt.in, err)
			continue
		}
		if f != tt.want {
			t.Errorf("UnmarshalTcl(%q) = %v, want %v", tt.in, f, tt.want)
		}
	}

	for _, bad := range []string{"", "Helvetica 12 wavy", "{unbalanced"} {
		var f Font
		if err := f.UnmarshalTcl(bad); err == nil {
			t.Errorf("UnmarshalTcl(%q) succeeded, want error", bad)
		}
	}

	f := Font{Family: "DejaVu Sans", Size: 10, Bold: true}
	s, err := f.MarshalTcl()
	if err != nil {
		t.Fatal(err)
	}
	if s != "{DejaVu Sans} 10 bold" {
		t.Errorf("MarshalTcl = %q", s)
	}

	// marshal and unmarshal agree
	var back Font
	if err := back.UnmarshalTcl(s); err != nil {
		t.Fatal(err)
	}
	if back != f {
		t.Errorf("round trip = %v, want %v", back, f)
	}
}

// values decode through the codec's Parseable machinery
func TestValuesThroughCodec(t *testing.T) {
	spec := codec.Map(map[string]*codec.Spec{
		"-foreground": codec.ParseableInto[Color]("color"),
		"-font":       codec.ParseableInto[Font]("font"),
		"-width":      codec.ParseableInto[ScreenDistance]("distance"),
	}, codec.Opaque())

	raw := "-foreground #ff0080 -font {Helvetica 12 bold} -width 2.5c -junk x"
	got, err := codec.Decode(spec, raw)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"-foreground": RGB(255, 0, 128),
		"-font":       Font{Family: "Helvetica", Size: 12, Bold: true},
		"-width":      ScreenDistance{Value: 2.5, Unit: Centimeters},
		"-junk":       "x",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// values encode as call arguments via their marshaler
	encoded, err := codec.Encode([]any{RGB(1, 2, 3), Font{Family: "Courier", Size: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if encoded != "#010203 {Courier 10}" {
		t.Errorf("encoded = %q", encoded)
	}
}
