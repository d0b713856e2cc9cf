package raster

import "errors"

// ErrAngle is returned for rotations other than 0, 90, 180 and 270 degrees.
var ErrAngle = errors.New("raster: rotation angle must be 0, 90, 180 or 270")

// Rotate returns b turned clockwise by angle degrees. Rotation only moves
// pixels; 90 and 270 swap the dimensions. A zero angle returns b itself.
func Rotate(b *Buffer, angle int) (*Buffer, error) {
	switch angle {
	case 0:
		return b, nil
	case 90, 180, 270:
	default:
		return nil, ErrAngle
	}
	out := &Buffer{Width: b.Width, Height: b.Height, Encoding: b.Encoding, Fg: b.Fg, Bg: b.Bg}
	if angle != 180 {
		out.Width, out.Height = b.Height, b.Width
	}
	bpp := b.Encoding.BytesPerPixel()
	out.Pix = make([]byte, len(b.Pix))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var dx, dy int
			switch angle {
			case 90:
				dx, dy = b.Height-1-y, x
			case 180:
				dx, dy = b.Width-1-x, b.Height-1-y
			case 270:
				dx, dy = y, b.Width-1-x
			}
			src := (y*b.Width + x) * bpp
			dst := (dy*out.Width + dx) * bpp
			copy(out.Pix[dst:dst+bpp], b.Pix[src:src+bpp])
		}
	}
	return out, nil
}
