package geometry

import (
	"errors"
	"math"

	"github.com/ericlevine/zxingraster/bitutil"
	"github.com/ericlevine/zxingraster/hrt"
)

// ErrRows is returned when the row metadata does not describe the grid.
var ErrRows = errors.New("geometry: row metadata does not match grid")

const (
	// guardDescent is how far UPC/EAN guard bars reach below the bars, in modules.
	guardDescent = 5
	// compositeGap is the band between composite and linear rows, in modules.
	compositeGap = 1
	// compositeRowHeight is used for composite rows without an explicit height.
	compositeRowHeight = 2
	maxSeparator       = 4
	// borderUnit is the thickness of one unit of BorderWidth in unscaled
	// pixels, for every class.
	borderUnit = 2
)

// Row is the per-row metadata of a grid.
type Row struct {
	// Height in modules. Zero shares the remaining symbol height equally.
	Height float64
	// Start and Stop are the widths of the start and stop characters.
	Start int
	Stop  int
	// Composite marks rows of a 2D composite layer.
	Composite bool
	// Offset and Width locate the row content inside the grid.
	Offset int
	Width  int
}

// Zone is a run of text anchored to module columns [Start, End). Start may be
// negative to place text in the left quiet zone.
type Zone struct {
	Text  string
	Start int
	End   int
	AddOn bool
}

// Options are the caller's render options, with widths in modules.
type Options struct {
	Whitespace      float64
	VWhitespace     float64
	BorderWidth     float64
	Style           BorderStyle
	SeparatorHeight int
	ShowText        bool
	Font            hrt.Variant
	Dotty           bool
}

// Input is everything Resolve needs.
type Input struct {
	Grid    *bitutil.BitMatrix
	Rows    []Row
	Profile Profile
	// Height is the requested symbol height in modules, 0 for the profile default.
	Height float64
	// Text is laid out across the grid when Zones is empty.
	Text  string
	Zones []Zone
	// Guards are [start, end) columns whose bars extend below the last row.
	Guards [][2]int
	// AddOnStart is the first column of an add-on, 0 when there is none.
	AddOnStart int
	Options
}

// Kind tags what a rectangle represents.
type Kind int

const (
	KindModule Kind = iota
	KindBorder
	KindSeparator
	KindGuard
)

// Rect is a filled foreground rectangle in unscaled pixels.
type Rect struct {
	X    float64
	Y    float64
	W    float64
	H    float64
	Kind Kind
}

// Plan is the unscaled drawing plan of a symbol.
type Plan struct {
	Width  float64
	Height float64
	Rects  []Rect
	Text   []hrt.Band
	Font   hrt.Variant
	// Bars covers every module row.
	Bars Rect
	// TextArea is the band reserved for the main text; zero height when no
	// text is shown.
	TextArea Rect
	// Dotty plans carry one KindModule rect per dark module.
	Dotty bool
}

// SeparatorModules clamps a requested separator height to [0, 4] modules.
// Zero selects the default of one module.
func SeparatorModules(h int) int {
	switch {
	case h == 0:
		return 1
	case h < 0:
		return 0
	case h > maxSeparator:
		return maxSeparator
	default:
		return h
	}
}

// Resolve computes the drawing plan.
func Resolve(in Input) (*Plan, error) {
	if in.Grid == nil || len(in.Rows) != in.Grid.Height() {
		return nil, ErrRows
	}
	prof := in.Profile
	p := prof.Pitch()
	opt := in.Options

	var border, side float64
	if opt.Style != BorderNone {
		border = opt.BorderWidth * borderUnit
	}
	if opt.Style == BorderBox {
		side = border
	}
	bands := opt.Style == BorderBind || opt.Style == BorderBox

	show := opt.ShowText && hasText(in)
	var textBand float64
	if show {
		textBand = hrt.BandHeight(opt.Font)
	}

	// Horizontal.
	cols := float64(in.Grid.Width())
	quietRight := prof.Quiet.Right
	if in.AddOnStart > 0 && prof.QuietAddOn > 0 {
		quietRight = prof.QuietAddOn
	}
	left := side + math.Max(opt.Whitespace, prof.Quiet.Left)*p
	width := left + cols*p + math.Max(opt.Whitespace, quietRight)*p + side

	// Vertical.
	heights := rowHeights(in.Rows, in.Height, prof.DefaultHeight)
	tops := make([]float64, len(in.Rows))
	bottoms := make([]float64, len(in.Rows))
	y := border + math.Max(opt.VWhitespace, prof.Quiet.Top)*p
	barsTop := y
	compositeSep := -1.0
	firstLinear := -1
	for i, row := range in.Rows {
		if !row.Composite && firstLinear < 0 {
			firstLinear = i
			if i > 0 {
				compositeSep = y
				y += compositeGap * p
			}
		}
		tops[i] = y
		y += heights[i] * p
		bottoms[i] = y
	}
	barsBottom := y
	last := len(in.Rows) - 1

	plan := &Plan{Font: opt.Font, Dotty: opt.Dotty}

	bearerTop := -1.0
	if prof.Bearer && bands {
		bearerTop = y
		y += border
	}
	textTop := y
	var descent float64
	if prof.UPCEAN && len(in.Guards) > 0 {
		descent = guardDescent * p
	}
	y += math.Max(math.Max(opt.VWhitespace, prof.Quiet.Bottom)*p, math.Max(descent, textBand))
	bottomBand := -1.0
	if !prof.Bearer && bands {
		bottomBand = y
		y += border
	}
	height := y

	// Borders.
	if border > 0 {
		plan.add(Rect{X: 0, Y: 0, W: width, H: border, Kind: KindBorder})
		switch {
		case bearerTop >= 0:
			plan.add(Rect{X: 0, Y: bearerTop, W: width, H: border, Kind: KindBorder})
		case bottomBand >= 0:
			plan.add(Rect{X: 0, Y: bottomBand, W: width, H: border, Kind: KindBorder})
		}
		if side > 0 {
			sideBottom := height
			if bearerTop >= 0 {
				sideBottom = bearerTop + border
			}
			plan.add(Rect{X: 0, Y: 0, W: side, H: sideBottom, Kind: KindBorder})
			plan.add(Rect{X: width - side, Y: 0, W: side, H: sideBottom, Kind: KindBorder})
		}
	}

	// Modules. The add-on drop and the guard descent do not depend on
	// whether the text is shown.
	addOnDrop := hrt.BandHeight(opt.Font)
	for i := range in.Rows {
		if opt.Dotty {
			for x := 0; x < in.Grid.Width(); x++ {
				if in.Grid.Get(x, i) {
					plan.add(Rect{X: left + float64(x)*p, Y: tops[i], W: p, H: bottoms[i] - tops[i], Kind: KindModule})
				}
			}
			continue
		}
		for _, run := range in.Grid.Runs(i) {
			x, w := left+float64(run[0])*p, float64(run[1]-run[0])*p
			if i == last && in.AddOnStart > 0 && run[0] >= in.AddOnStart {
				top := tops[i] + addOnDrop
				plan.add(Rect{X: x, Y: top, W: w, H: bottoms[i] + descent - top, Kind: KindModule})
				continue
			}
			plan.add(Rect{X: x, Y: tops[i], W: w, H: bottoms[i] - tops[i], Kind: KindModule})
			if i != last || descent == 0 {
				continue
			}
			for _, g := range in.Guards {
				s, e := max(run[0], g[0]), min(run[1], g[1])
				if s < e {
					plan.add(Rect{X: left + float64(s)*p, Y: bottoms[i], W: float64(e-s) * p, H: descent, Kind: KindGuard})
				}
			}
		}
	}

	// Separators.
	if sep := float64(SeparatorModules(opt.SeparatorHeight)) * p; sep > 0 && bands && prof.Class != Matrix {
		for i := 1; i < len(in.Rows); i++ {
			if in.Rows[i].Composite || in.Rows[i-1].Composite {
				continue
			}
			x0, x1 := 0, in.Grid.Width()
			if prof.InsetSeparators {
				x0, x1 = dataSpan(in.Rows[i], in.Grid.Width())
			}
			plan.add(Rect{X: left + float64(x0)*p, Y: tops[i] - sep/2, W: float64(x1-x0) * p, H: sep, Kind: KindSeparator})
		}
	}
	if compositeSep >= 0 {
		x0, x1 := dataSpan(in.Rows[firstLinear], in.Grid.Width())
		plan.add(Rect{X: left + float64(x0)*p, Y: compositeSep, W: float64(x1-x0) * p, H: compositeGap * p, Kind: KindSeparator})
	}

	// Text.
	if show {
		zones := in.Zones
		if len(zones) == 0 {
			zones = []Zone{{Text: in.Text, Start: 0, End: in.Grid.Width()}}
		}
		for _, z := range zones {
			if z.Text == "" {
				continue
			}
			band := hrt.Band{
				Text:  z.Text,
				X:     left + float64(z.Start)*p,
				Y:     textTop,
				Width: float64(z.End-z.Start) * p,
				Min:   side,
				Max:   width - side,
			}
			if z.AddOn {
				band.Y = tops[last]
			}
			plan.Text = append(plan.Text, band)
		}
		plan.TextArea = Rect{X: side, Y: textTop, W: width - 2*side, H: textBand}
	}

	plan.Width, plan.Height = width, height
	plan.Bars = Rect{X: left, Y: barsTop, W: cols * p, H: barsBottom - barsTop, Kind: KindModule}
	return plan, nil
}

func (p *Plan) add(r Rect) {
	if r.W > 0 && r.H > 0 {
		p.Rects = append(p.Rects, r)
	}
}

func hasText(in Input) bool {
	if len(in.Zones) == 0 {
		return in.Text != ""
	}
	for _, z := range in.Zones {
		if z.Text != "" {
			return true
		}
	}
	return false
}

// dataSpan returns the columns between the start and stop characters of row.
func dataSpan(row Row, gridWidth int) (int, int) {
	if row.Width == 0 {
		return row.Start, gridWidth - row.Stop
	}
	return row.Offset + row.Start, row.Offset + row.Width - row.Stop
}

// rowHeights returns every row's height in modules. Flexible rows share what
// the fixed rows leave of the symbol height, at least one module each.
func rowHeights(rows []Row, requested, def float64) []float64 {
	total := requested
	if total <= 0 {
		total = def
	}
	heights := make([]float64, len(rows))
	var fixed float64
	flexible := 0
	linear, composite := false, false
	for i, row := range rows {
		h := row.Height
		if row.Composite {
			composite = true
			if h <= 0 {
				h = compositeRowHeight
			}
		} else {
			linear = true
		}
		heights[i] = h
		if h > 0 {
			fixed += h
		} else {
			flexible++
		}
	}
	if composite && linear {
		fixed += compositeGap
	}
	if flexible == 0 {
		return heights
	}
	share := math.Max(1, (total-fixed)/float64(flexible))
	for i, h := range heights {
		if h <= 0 {
			heights[i] = share
		}
	}
	return heights
}
