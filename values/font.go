package values

import (
	"fmt"
	"strconv"

	"github.com/teekgo/teek/codec"
)

// Font is a Tk font description: family, size and style modifiers.
// Per Tk convention a positive size is in points and a negative size
// in pixels; zero means the platform default.
type Font struct {
	Family     string
	Size       int
	Bold       bool
	Italic     bool
	Underline  bool
	Overstrike bool
}

func (f Font) String() string {
	s, _ := f.MarshalTcl()
	return "Font(" + s + ")"
}

// MarshalTcl renders the {family size ?style ...?} description list.
func (f Font) MarshalTcl() (string, error) {
	elems := []string{f.Family}
	if f.Size != 0 || f.anyStyle() {
		elems = append(elems, strconv.Itoa(f.Size))
	}
	if f.Bold {
		elems = append(elems, "bold")
	}
	if f.Italic {
		elems = append(elems, "italic")
	}
	if f.Underline {
		elems = append(elems, "underline")
	}
	if f.Overstrike {
		elems = append(elems, "overstrike")
	}
	return codec.JoinList(elems...), nil
}

func (f Font) anyStyle() bool {
	return f.Bold || f.Italic || f.Underline || f.Overstrike
}

// UnmarshalTcl parses a font description list. Named fonts such as
// "TkDefaultFont" parse as a bare family with no size.
func (f *Font) UnmarshalTcl(s string) error {
	elems, err := codec.SplitList(s)
	if err != nil {
		return fmt.Errorf("invalid font description %q: %w", s, err)
	}
	if len(elems) == 0 {
		return fmt.Errorf("empty font description")
	}

	out := Font{Family: elems[0]}
	rest := elems[1:]
	if len(rest) > 0 {
		if size, err := strconv.Atoi(rest[0]); err == nil {
			out.Size = size
			rest = rest[1:]
		}
	}
	for _, style := range rest {
		switch style {
		case "bold":
			out.Bold = true
		case "italic":
			out.Italic = true
		case "underline":
			out.Underline = true
		case "overstrike":
			out.Overstrike = true
		case "normal", "roman":
			// explicit defaults
		default:
			return fmt.Errorf("unknown font style %q in %q", style, s)
		}
	}
	*f = out
	return nil
}
