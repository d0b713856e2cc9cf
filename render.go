package zxingraster

import (
	"fmt"
	"image"
	"math"

	"github.com/ericlevine/zxingraster/geometry"
	"github.com/ericlevine/zxingraster/hrt"
	"github.com/ericlevine/zxingraster/raster"
)

const (
	maxSide   = 1 << 16
	maxPixels = 1 << 26
)

// Buffer renders the symbol rotated clockwise by angle degrees (0, 90, 180
// or 270) and publishes Bitmap, BitmapWidth, BitmapHeight and Text. On error
// the outputs of the previous render are left untouched.
func (s *Symbol) Buffer(angle int) error {
	buf, text, err := s.render(angle)
	if err != nil {
		return err
	}
	s.buffer = buf
	s.Bitmap = buf.Pix
	s.BitmapWidth, s.BitmapHeight = buf.Width, buf.Height
	s.Text = text
	return nil
}

// Image returns the last rendered bitmap, or nil before the first render.
func (s *Symbol) Image() image.Image {
	if s.buffer == nil {
		return nil
	}
	return s.buffer.Image()
}

func (s *Symbol) render(angle int) (*raster.Buffer, string, error) {
	switch angle {
	case 0, 90, 180, 270:
	default:
		return nil, "", fmt.Errorf("rotation angle %d: %w", angle, ErrConfiguration)
	}
	prof, ok := s.Symbology.Profile()
	if !ok {
		return nil, "", fmt.Errorf("unknown symbology %d: %w", int(s.Symbology), ErrConfiguration)
	}
	if s.merged == nil {
		return nil, "", fmt.Errorf("no encoded data: %w", ErrConfiguration)
	}
	if math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) || s.Scale <= 0 {
		return nil, "", fmt.Errorf("scale %v: %w", s.Scale, ErrConfiguration)
	}
	if s.WhitespaceWidth < 0 || s.VWhitespaceWidth < 0 || s.BorderWidth < 0 {
		return nil, "", fmt.Errorf("negative whitespace or border width: %w", ErrConfiguration)
	}
	fg, err := ParseColour(s.FgColour)
	if err != nil {
		return nil, "", fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColour(s.BgColour)
	if err != nil {
		return nil, "", fmt.Errorf("background: %w", err)
	}
	dotty := s.Output&DottyMode != 0
	if dotty {
		if prof.Class != geometry.Matrix || !prof.DottyEligible {
			return nil, "", fmt.Errorf("dotty mode not supported by %s: %w", s.Symbology, ErrConfiguration)
		}
		if len(s.layers) > 1 || s.hasComposite() {
			return nil, "", fmt.Errorf("dotty mode not supported for stacked or composite symbols: %w", ErrConfiguration)
		}
		if !(s.DotSize > 0 && s.DotSize <= 1) {
			return nil, "", fmt.Errorf("dot size %v: %w", s.DotSize, ErrConfiguration)
		}
	}

	plan, err := geometry.Resolve(s.geometryInput(prof, dotty))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if plan.Width*s.Scale > maxSide || plan.Height*s.Scale > maxSide {
		return nil, "", fmt.Errorf("%.0fx%.0f bitmap: %w", plan.Width*s.Scale, plan.Height*s.Scale, ErrGeometryOverflow)
	}
	w, h := raster.Dimensions(plan, s.Scale)
	if w*h > maxPixels {
		return nil, "", fmt.Errorf("%dx%d bitmap: %w", w, h, ErrGeometryOverflow)
	}
	if w < 1 || h < 1 {
		return nil, "", fmt.Errorf("scale %v leaves an empty bitmap: %w", s.Scale, ErrConfiguration)
	}

	var glyphs []hrt.Placement
	for _, band := range plan.Text {
		glyphs = append(glyphs, hrt.Layout(band, plan.Font)...)
	}
	enc := raster.RGB
	if s.Output&BufferIntermediate != 0 {
		enc = raster.Intermediate
	}
	buf := raster.Paint(plan, glyphs, raster.Options{
		Scale:    s.Scale,
		Encoding: enc,
		Fg:       fg,
		Bg:       bg,
		DotSize:  s.DotSize,
	})
	buf, err = raster.Rotate(buf, angle)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	var text string
	if i := s.hrtLayer(); i >= 0 && s.ShowHRT {
		text = s.layers[i].enc.Text
	}
	return buf, text, nil
}

func (s *Symbol) borderStyle() geometry.BorderStyle {
	switch {
	case s.Output&Box != 0:
		return geometry.BorderBox
	case s.Output&Bind != 0:
		return geometry.BorderBind
	case s.Output&BindTop != 0:
		return geometry.BorderBindTop
	default:
		return geometry.BorderNone
	}
}

func (s *Symbol) font() hrt.Variant {
	switch {
	case s.Output&SmallText != 0:
		return hrt.Small
	case s.Output&BoldText != 0:
		return hrt.Bold
	default:
		return hrt.Normal
	}
}

// geometryInput collects the merged grid and the text of the last linear
// layer, shifted to grid columns.
func (s *Symbol) geometryInput(prof geometry.Profile, dotty bool) geometry.Input {
	in := geometry.Input{
		Grid:    s.merged.Grid,
		Rows:    s.merged.Rows,
		Profile: prof,
		Height:  s.Height,
		Options: geometry.Options{
			Whitespace:      float64(s.WhitespaceWidth),
			VWhitespace:     float64(s.VWhitespaceWidth),
			BorderWidth:     float64(s.BorderWidth),
			Style:           s.borderStyle(),
			SeparatorHeight: s.SeparatorHeight,
			ShowText:        s.ShowHRT,
			Font:            s.font(),
			Dotty:           dotty,
		},
	}
	i := s.hrtLayer()
	if i < 0 {
		return in
	}
	enc, off := s.layers[i].enc, s.merged.Offsets[i]
	in.Text = enc.Text
	if len(enc.Zones) == 0 && enc.Text != "" {
		in.Zones = []geometry.Zone{{Text: enc.Text, Start: off, End: off + enc.Width()}}
	}
	for _, z := range enc.Zones {
		in.Zones = append(in.Zones, geometry.Zone{Text: z.Text, Start: z.Start + off, End: z.End + off, AddOn: z.AddOn})
	}
	for _, g := range enc.Guards {
		in.Guards = append(in.Guards, [2]int{g[0] + off, g[1] + off})
	}
	if enc.AddOnStart > 0 {
		in.AddOnStart = enc.AddOnStart + off
	}
	return in
}
