package values

import (
	"fmt"
	"strings"
)

// Color is a Tk color: either 8-bit RGB channels or a named color such
// as "red" that the display resolves. The zero value is black.
type Color struct {
	Name    string
	R, G, B uint8
}

// RGB builds a color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Named builds a color that Tk resolves by name.
func Named(name string) Color {
	return Color{Name: name}
}

func (c Color) String() string {
	if c.Name != "" {
		return fmt.Sprintf("Color(%q)", c.Name)
	}
	return fmt.Sprintf("Color(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalTcl renders the name, or the #rrggbb form for RGB colors.
func (c Color) MarshalTcl() (string, error) {
	if c.Name != "" {
		return c.Name, nil
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// UnmarshalTcl accepts #rgb, #rrggbb and #rrrrggggbbbb hex forms;
// anything else is kept as a named color.
func (c *Color) UnmarshalTcl(s string) error {
	if !strings.HasPrefix(s, "#") {
		if s == "" {
			return fmt.Errorf("empty color string")
		}
		*c = Color{Name: s}
		return nil
	}

	digits := len(s) - 1
	if digits != 3 && digits != 6 && digits != 12 {
		return fmt.Errorf("invalid hex color %q", s)
	}
	per := digits / 3

	channel := func(i int) (uint8, error) {
		var v int
		for _, r := range s[1+i*per : 1+(i+1)*per] {
			d := hexDigit(r)
			if d < 0 {
				return 0, fmt.Errorf("invalid hex color %q", s)
			}
			v = v*16 + d
		}
		// scale to 8 bits per channel
		switch per {
		case 1:
			return uint8(v * 0x11), nil
		case 2:
			return uint8(v), nil
		default:
			return uint8(v >> 8), nil
		}
	}

	var out Color
	var err error
	if out.R, err = channel(0); err != nil {
		return err
	}
	if out.G, err = channel(1); err != nil {
		return err
	}
	if out.B, err = channel(2); err != nil {
		return err
	}
	*c = out
	return nil
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}
