package filters

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		input string
		want  color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#007200", color.NRGBA{0x00, 0x72, 0x00, 0xff}},
		{"#00720099", color.NRGBA{0x00, 0x72, 0x00, 0x99}},
		{"#f80", color.NRGBA{0xff, 0x88, 0x00, 0xff}},
		{"#f808", color.NRGBA{0xff, 0x88, 0x00, 0x88}},
		{"0xFF7600", color.NRGBA{0xff, 0x76, 0x00, 0xff}},
		{"0Xff760080", color.NRGBA{0xff, 0x76, 0x00, 0x80}},
		{"  #0000ff  ", color.NRGBA{0x00, 0x00, 0xff, 0xff}},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseColor(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, input := range []string{"", "#", "FFFFFF", "#FFFFF", "#GGGGGG", "#12345", "0x", "#FFFFFFFFF", "red"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseColor(input)
			require.ErrorIs(t, err, ErrInvalidColor)
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, input := range []string{"#FFFFFF", "#00720099", "#606060", "#ff760099", "0x0000FF", "#abc", "#abcd"} {
		t.Run(input, func(t *testing.T) {
			c, err := ParseColor(input)
			require.NoError(t, err)
			again, err := ParseColor(FormatColor(c))
			require.NoError(t, err)
			require.Equal(t, c, again)
		})
	}
	require.Equal(t, "#007200", FormatColor(color.NRGBA{0, 0x72, 0, 0xff}))
	require.Equal(t, "#00720099", FormatColor(color.NRGBA{0, 0x72, 0, 0x99}))
}
