package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a Tk screen distance unit suffix.
type Unit byte

const (
	Pixels      Unit = 0
	Centimeters Unit = 'c'
	Inches      Unit = 'i'
	Millimeters Unit = 'm'
	Points      Unit = 'p'
)

// ScreenDistance is a Tk screen distance: a number with an optional
// unit suffix, e.g. "5", "2.5c" or "1i".
type ScreenDistance struct {
	Value float64
	Unit  Unit
}

func (d ScreenDistance) String() string {
	s, _ := d.MarshalTcl()
	return "ScreenDistance(" + s + ")"
}

// MarshalTcl renders the Tk distance string.
func (d ScreenDistance) MarshalTcl() (string, error) {
	s := strconv.FormatFloat(d.Value, 'g', -1, 64)
	if d.Unit != Pixels {
		s += string(d.Unit)
	}
	return s, nil
}

// UnmarshalTcl parses a number with an optional c/i/m/p suffix.
func (d *ScreenDistance) UnmarshalTcl(s string) error {
	num := s
	unit := Pixels
	if len(s) > 0 {
		switch last := s[len(s)-1]; last {
		case 'c', 'i', 'm', 'p':
			unit = Unit(last)
			num = s[:len(s)-1]
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return fmt.Errorf("invalid screen distance %q", s)
	}
	d.Value = v
	d.Unit = unit
	return nil
}

// ToPixels converts the distance to pixels at the given display
// resolution in dots per inch.
func (d ScreenDistance) ToPixels(dpi float64) float64 {
	switch d.Unit {
	case Centimeters:
		return d.Value * dpi / 2.54
	case Inches:
		return d.Value * dpi
	case Millimeters:
		return d.Value * dpi / 25.4
	case Points:
		return d.Value * dpi / 72
	default:
		return d.Value
	}
}
