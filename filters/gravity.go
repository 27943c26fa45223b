package filters

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGravity is returned when a position string doesn't name a Gravity.
var ErrUnknownGravity = errors.New("unrecognized position")

// Gravity selects where on the icon a ribbon is drawn.
type Gravity int

const (
	TopLeft Gravity = iota
	TopRight
	BottomLeft
	BottomRight
	Top
	Bottom
)

var gravityNames = [...]string{
	TopLeft:     "topleft",
	TopRight:    "topright",
	BottomLeft:  "bottomleft",
	BottomRight: "bottomright",
	Top:         "top",
	Bottom:      "bottom",
}

// String returns the canonical (lower case) name of the gravity.
func (g Gravity) String() string {
	if g < 0 || int(g) >= len(gravityNames) {
		return fmt.Sprintf("Gravity(%d)", int(g))
	}
	return gravityNames[g]
}

// ParseGravity matches s, ignoring case, against the gravity names:
// "topleft", "topright", "bottomleft", "bottomright", "top" and "bottom".
func ParseGravity(s string) (Gravity, error) {
	for g, name := range gravityNames {
		if strings.EqualFold(s, name) {
			return Gravity(g), nil
		}
	}
	return TopLeft, fmt.Errorf("%w %q: valid positions are %s",
		ErrUnknownGravity, s, strings.Join(gravityNames[:], ", "))
}

// corner reports whether the gravity anchors a diagonal ribbon on a corner,
// as opposed to a horizontal band.
func (g Gravity) corner() bool {
	return g != Top && g != Bottom
}
