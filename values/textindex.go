package values

import (
	"fmt"
	"strconv"
	"strings"
)

// TextIndex is a position in a Tk text widget: 1-based line, 0-based
// column, rendered as "line.column".
type TextIndex struct {
	Line   int
	Column int
}

func (ti TextIndex) String() string {
	return fmt.Sprintf("TextIndex(%d, %d)", ti.Line, ti.Column)
}

// MarshalTcl renders the "line.column" form.
func (ti TextIndex) MarshalTcl() (string, error) {
	return strconv.Itoa(ti.Line) + "." + strconv.Itoa(ti.Column), nil
}

// UnmarshalTcl parses the "line.column" form. Tk's symbolic indices
// ("end", marks, "1.0 + 2 chars") must be resolved by the widget
// before decoding.
func (ti *TextIndex) UnmarshalTcl(s string) error {
	line, col, ok := strings.Cut(s, ".")
	if !ok {
		return fmt.Errorf("invalid text index %q", s)
	}
	l, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("invalid text index %q", s)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return fmt.Errorf("invalid text index %q", s)
	}
	ti.Line = l
	ti.Column = c
	return nil
}

// Less reports whether ti comes before other in the widget.
func (ti TextIndex) Less(other TextIndex) bool {
	if ti.Line != other.Line {
		return ti.Line < other.Line
	}
	return ti.Column < other.Column
}
