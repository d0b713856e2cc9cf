package zxingraster

import (
	"encoding/hex"
	"fmt"
	"image/color"
)

// ParseColour parses "RRGGBB" or "CCMMYYKK" hex strings.
func ParseColour(s string) (color.RGBA, error) {
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want 6 or 8 hex digits: %w", s, ErrConfiguration)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: malformed hex: %w", s, ErrConfiguration)
	}
	if len(b) == 3 {
		return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
	}
	return color.RGBAModel.Convert(color.CMYK{C: b[0], M: b[1], Y: b[2], K: b[3]}).(color.RGBA), nil
}
