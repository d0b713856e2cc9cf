package raster

import (
	"image/color"
	"math"

	"github.com/ericlevine/zxingraster/geometry"
	"github.com/ericlevine/zxingraster/hrt"
)

// Options control how a plan is painted.
type Options struct {
	Scale    float64
	Encoding Encoding
	Fg       color.RGBA
	Bg       color.RGBA
	// DotSize is the dot diameter as a fraction of the module, used by
	// dotty plans.
	DotSize float64
}

// px maps an unscaled coordinate to a pixel edge, rounding half up.
func px(v, scale float64) int {
	return int(math.Floor(v*scale + 0.5))
}

// Dimensions returns the pixel size of plan at scale.
func Dimensions(plan *geometry.Plan, scale float64) (int, int) {
	return px(plan.Width, scale), px(plan.Height, scale)
}

// Paint renders plan and the laid out glyphs into a new buffer. Rectangle
// edges are rounded individually so rectangles that share an unscaled edge
// share a pixel edge.
func Paint(plan *geometry.Plan, glyphs []hrt.Placement, opt Options) *Buffer {
	w, h := Dimensions(plan, opt.Scale)
	b := newBuffer(w, h, opt.Encoding, opt.Fg, opt.Bg)
	s := opt.Scale
	for _, r := range plan.Rects {
		x0, y0 := px(r.X, s), px(r.Y, s)
		x1, y1 := px(r.X+r.W, s), px(r.Y+r.H, s)
		if plan.Dotty && r.Kind == geometry.KindModule {
			b.disc(x0, y0, x1, y1, opt.DotSize)
			continue
		}
		b.fill(x0, y0, x1, y1, true)
	}
	for _, g := range glyphs {
		for gy := 0; gy < g.Glyph.Height; gy++ {
			for gx := 0; gx < g.Glyph.Width; gx++ {
				if !g.Glyph.Pixel(gx, gy) {
					continue
				}
				x, y := g.X+float64(gx), g.Y+float64(gy)
				b.fill(px(x, s), px(y, s), px(x+1, s), px(y+1, s), true)
			}
		}
	}
	return b
}

// disc fills a dot centred in the cell [x0, x1) x [y0, y1) with the midpoint
// circle algorithm.
func (b *Buffer) disc(x0, y0, x1, y1 int, dotSize float64) {
	cw, ch := x1-x0, y1-y0
	if cw <= 0 || ch <= 0 {
		return
	}
	d := max(1, int(math.Floor(dotSize*float64(min(cw, ch))+0.5)))
	r := (d - 1) / 2
	even := (d - 1) % 2
	cx := x0 + (cw-d)/2 + r
	cy := y0 + (ch-d)/2 + r

	span := func(xa, xb, y int) {
		b.fill(xa, y, xb+1, y+1, true)
	}
	x, y := r, 0
	e := 1 - r
	for x >= y {
		span(cx-x, cx+x+even, cy+y+even)
		span(cx-x, cx+x+even, cy-y)
		span(cx-y, cx+y+even, cy+x+even)
		span(cx-y, cx+y+even, cy-x)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}
