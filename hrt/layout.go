// Package hrt lays out human-readable text with a fixed bitmap font. No font
// engine is involved: every glyph is a 1-bit mask placed on the unscaled
// pixel grid.
package hrt

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// Band is a horizontal strip reserved for one run of text. All values are
// unscaled pixels. Min and Max bound the columns glyphs may occupy.
type Band struct {
	Text  string
	X     float64
	Y     float64
	Width float64
	Min   float64
	Max   float64
}

// Placement is one glyph positioned at the top-left corner (X, Y).
type Placement struct {
	X     float64
	Y     float64
	Glyph *Glyph
}

// Width returns the extent in pixels of text set in variant v, from the left
// edge of the first glyph to the right edge of the last.
func Width(text string, v Variant) float64 {
	var w, tail int
	for _, r := range norm.NFC.String(text) {
		g := Lookup(r, v)
		w += g.Advance
		tail = g.Advance - g.Width
	}
	return float64(w - tail)
}

// Layout centres the band's text horizontally and returns one placement per
// visible glyph. Glyphs that would cross Min or Max are dropped.
func Layout(b Band, v Variant) []Placement {
	text := norm.NFC.String(b.Text)
	if text == "" {
		return nil
	}
	x := b.X + math.Floor((b.Width-Width(text, v))/2)
	y := b.Y + glyphTop
	var out []Placement
	for _, r := range text {
		g := Lookup(r, v)
		if x >= b.Min && x+float64(g.Width) <= b.Max {
			out = append(out, Placement{X: x, Y: y, Glyph: g})
		}
		x += float64(g.Advance)
	}
	return out
}
