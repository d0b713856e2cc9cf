package hrt

import (
	"image"
	"unicode"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Variant selects one of the three renderings of the fixed font.
type Variant int

const (
	Normal Variant = iota
	Bold
	Small
)

func (v Variant) String() string {
	switch v {
	case Normal:
		return "normal"
	case Bold:
		return "bold"
	case Small:
		return "small"
	default:
		return "unknown"
	}
}

// Glyph is a 1-bit mask. Bit x of Rows[y] is the pixel at column x.
type Glyph struct {
	Width   int
	Height  int
	Advance int
	Rows    []uint16
}

// Pixel reports whether the mask pixel at (x, y) is set.
func (g *Glyph) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Rows[y]&(1<<uint(x)) != 0
}

// glyphTop is the distance from the top of a text band to the top of its glyphs.
const glyphTop = 2

// BandHeight returns the height in unscaled pixels of a text band.
func BandHeight(v Variant) float64 {
	if v == Small {
		return 12
	}
	return 16
}

type entry struct {
	variants [3]*Glyph
}

var (
	table       = map[rune]*entry{}
	replacement *entry
)

const replacementRune = '\ufffd'

func init() {
	add := func(lo, hi rune) {
		for r := lo; r <= hi; r++ {
			table[r] = newEntry(r)
		}
	}
	add(0x20, 0x7e)
	add(0xa0, 0xff)
	add(replacementRune, replacementRune)
	replacement = table[replacementRune]
}

func newEntry(r rune) *entry {
	normal := faceGlyph(r)
	return &entry{variants: [3]*Glyph{
		Normal: normal,
		Bold:   dilate(normal),
		Small:  smallGlyph(r),
	}}
}

// faceGlyph copies a glyph out of the 7x13 fixed face.
func faceGlyph(r rune) *Glyph {
	face := basicfont.Face7x13
	dr, mask, maskp, advance, _ := face.Glyph(fixed.Point26_6{}, r)
	g := &Glyph{
		Width:   dr.Dx(),
		Height:  dr.Dy(),
		Advance: advance.Round(),
		Rows:    make([]uint16, dr.Dy()),
	}
	if mask == nil {
		return g
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if on(mask, maskp.X+x, maskp.Y+y) {
				g.Rows[y] |= 1 << uint(x)
			}
		}
	}
	return g
}

func on(mask image.Image, x, y int) bool {
	_, _, _, a := mask.At(x, y).RGBA()
	return a >= 0x8000
}

// dilate produces the bold form by OR-ing each row with itself shifted one
// pixel to the right.
func dilate(g *Glyph) *Glyph {
	b := &Glyph{
		Width:   g.Width + 1,
		Height:  g.Height,
		Advance: g.Advance + 1,
		Rows:    make([]uint16, len(g.Rows)),
	}
	for y, row := range g.Rows {
		b.Rows[y] = row | row<<1
	}
	return b
}

const (
	smallWidth   = 5
	smallHeight  = 7
	smallAdvance = 6
)

// smallRows holds 5x7 masks for 0x20-0x5f. Bit 0x10 is the leftmost pixel.
var smallRows = [64][smallHeight]uint8{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // ' '
	{0x04, 0x04, 0x04, 0x04, 0x04, 0x00, 0x04}, // !
	{0x0a, 0x0a, 0x0a, 0x00, 0x00, 0x00, 0x00}, // "
	{0x0a, 0x0a, 0x1f, 0x0a, 0x1f, 0x0a, 0x0a}, // #
	{0x04, 0x0f, 0x14, 0x0e, 0x05, 0x1e, 0x04}, // $
	{0x18, 0x19, 0x02, 0x04, 0x08, 0x13, 0x03}, // %
	{0x0c, 0x12, 0x14, 0x08, 0x15, 0x12, 0x0d}, // &
	{0x0c, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00}, // '
	{0x02, 0x04, 0x08, 0x08, 0x08, 0x04, 0x02}, // (
	{0x08, 0x04, 0x02, 0x02, 0x02, 0x04, 0x08}, // )
	{0x00, 0x04, 0x15, 0x0e, 0x15, 0x04, 0x00}, // *
	{0x00, 0x04, 0x04, 0x1f, 0x04, 0x04, 0x00}, // +
	{0x00, 0x00, 0x00, 0x00, 0x0c, 0x04, 0x08}, // ,
	{0x00, 0x00, 0x00, 0x1f, 0x00, 0x00, 0x00}, // -
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x0c, 0x0c}, // .
	{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x00}, // /
	{0x0e, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0e}, // 0
	{0x04, 0x0c, 0x04, 0x04, 0x04, 0x04, 0x0e}, // 1
	{0x0e, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1f}, // 2
	{0x1f, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0e}, // 3
	{0x02, 0x06, 0x0a, 0x12, 0x1f, 0x02, 0x02}, // 4
	{0x1f, 0x10, 0x1e, 0x01, 0x01, 0x11, 0x0e}, // 5
	{0x06, 0x08, 0x10, 0x1e, 0x11, 0x11, 0x0e}, // 6
	{0x1f, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08}, // 7
	{0x0e, 0x11, 0x11, 0x0e, 0x11, 0x11, 0x0e}, // 8
	{0x0e, 0x11, 0x11, 0x0f, 0x01, 0x02, 0x0c}, // 9
	{0x00, 0x0c, 0x0c, 0x00, 0x0c, 0x0c, 0x00}, // :
	{0x00, 0x0c, 0x0c, 0x00, 0x0c, 0x04, 0x08}, // ;
	{0x02, 0x04, 0x08, 0x10, 0x08, 0x04, 0x02}, // <
	{0x00, 0x00, 0x1f, 0x00, 0x1f, 0x00, 0x00}, // =
	{0x08, 0x04, 0x02, 0x01, 0x02, 0x04, 0x08}, // >
	{0x0e, 0x11, 0x01, 0x02, 0x04, 0x00, 0x04}, // ?
	{0x0e, 0x11, 0x01, 0x0d, 0x15, 0x15, 0x0e}, // @
	{0x0e, 0x11, 0x11, 0x11, 0x1f, 0x11, 0x11}, // A
	{0x1e, 0x11, 0x11, 0x1e, 0x11, 0x11, 0x1e}, // B
	{0x0e, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0e}, // C
	{0x1c, 0x12, 0x11, 0x11, 0x11, 0x12, 0x1c}, // D
	{0x1f, 0x10, 0x10, 0x1e, 0x10, 0x10, 0x1f}, // E
	{0x1f, 0x10, 0x10, 0x1e, 0x10, 0x10, 0x10}, // F
	{0x0e, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0f}, // G
	{0x11, 0x11, 0x11, 0x1f, 0x11, 0x11, 0x11}, // H
	{0x0e, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0e}, // I
	{0x07, 0x02, 0x02, 0x02, 0x02, 0x12, 0x0c}, // J
	{0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11}, // K
	{0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1f}, // L
	{0x11, 0x1b, 0x15, 0x15, 0x11, 0x11, 0x11}, // M
	{0x11, 0x11, 0x19, 0x15, 0x13, 0x11, 0x11}, // N
	{0x0e, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0e}, // O
	{0x1e, 0x11, 0x11, 0x1e, 0x10, 0x10, 0x10}, // P
	{0x0e, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0d}, // Q
	{0x1e, 0x11, 0x11, 0x1e, 0x14, 0x12, 0x11}, // R
	{0x0f, 0x10, 0x10, 0x0e, 0x01, 0x01, 0x1e}, // S
	{0x1f, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04}, // T
	{0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0e}, // U
	{0x11, 0x11, 0x11, 0x11, 0x11, 0x0a, 0x04}, // V
	{0x11, 0x11, 0x11, 0x15, 0x15, 0x15, 0x0a}, // W
	{0x11, 0x11, 0x0a, 0x04, 0x0a, 0x11, 0x11}, // X
	{0x11, 0x11, 0x11, 0x0a, 0x04, 0x04, 0x04}, // Y
	{0x1f, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1f}, // Z
	{0x0e, 0x08, 0x08, 0x08, 0x08, 0x08, 0x0e}, // [
	{0x00, 0x10, 0x08, 0x04, 0x02, 0x01, 0x00}, // backslash
	{0x0e, 0x02, 0x02, 0x02, 0x02, 0x02, 0x0e}, // ]
	{0x04, 0x0a, 0x11, 0x00, 0x00, 0x00, 0x00}, // ^
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1f}, // _
}

var smallReplacement = [smallHeight]uint8{0x1f, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1f}

// smallGlyph folds r onto the upper-case ASCII table: lower case maps to
// upper case and accented letters drop their marks.
func smallGlyph(r rune) *Glyph {
	src, ok := smallSource(unicode.ToUpper(r))
	if !ok {
		if base := []rune(norm.NFD.String(string(r))); len(base) > 0 {
			src, ok = smallSource(unicode.ToUpper(base[0]))
		}
	}
	if !ok {
		src = smallReplacement
	}
	g := &Glyph{Width: smallWidth, Height: smallHeight, Advance: smallAdvance, Rows: make([]uint16, smallHeight)}
	for y, bits := range src {
		for x := 0; x < smallWidth; x++ {
			if bits&(0x10>>uint(x)) != 0 {
				g.Rows[y] |= 1 << uint(x)
			}
		}
	}
	return g
}

func smallSource(r rune) ([smallHeight]uint8, bool) {
	if r < 0x20 || r > 0x5f {
		return [smallHeight]uint8{}, false
	}
	return smallRows[r-0x20], true
}

// Lookup returns the glyph for r in variant v. Runes outside the table
// resolve to the replacement glyph.
func Lookup(r rune, v Variant) *Glyph {
	e, ok := table[r]
	if !ok {
		e = replacement
	}
	if v < Normal || v > Small {
		v = Normal
	}
	return e.variants[v]
}
