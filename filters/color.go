package filters

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses a hex color string into a non-premultiplied color.
//
// Accepted forms are "#RGB", "#RGBA", "#RRGGBB" and "#RRGGBBAA", with
// either a "#" or a "0x" prefix. Colors without an alpha component are
// opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		return color.NRGBA{}, fmt.Errorf("%w %q: expected a '#' or '0x' prefix", ErrInvalidColor, s)
	}

	digits := make([]uint8, len(hex))
	for ii := 0; ii < len(hex); ii++ {
		d, ok := hexDigit(hex[ii])
		if !ok {
			return color.NRGBA{}, fmt.Errorf("%w %q: %q is not a hex digit", ErrInvalidColor, s, hex[ii])
		}
		digits[ii] = d
	}

	c := color.NRGBA{A: 0xff}
	switch len(digits) {
	case 3, 4:
		// Short forms repeat each digit: "#F80" is "#FF8800".
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
	case 6, 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	default:
		return color.NRGBA{}, fmt.Errorf("%w %q: want 3, 4, 6 or 8 hex digits, got %d",
			ErrInvalidColor, s, len(digits))
	}
	return c, nil
}

// FormatColor is the inverse of ParseColor: it returns "#RRGGBB" for
// opaque colors and "#RRGGBBAA" otherwise.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
