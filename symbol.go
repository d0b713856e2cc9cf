package zxingraster

import (
	"fmt"

	"github.com/ericlevine/zxingraster/compose"
	"github.com/ericlevine/zxingraster/geometry"
	"github.com/ericlevine/zxingraster/raster"
)

// OutputOptions are render flags.
type OutputOptions uint

const (
	// Bind draws horizontal border bands and separators between rows.
	Bind OutputOptions = 1 << iota
	// Box draws a border on all four sides.
	Box
	// BindTop draws the top border band only.
	BindTop
	// DottyMode paints matrix modules as dots.
	DottyMode
	// BufferIntermediate selects the one byte per pixel '1'/'0' bitmap.
	BufferIntermediate
	// BoldText renders the text in the bold variant.
	BoldText
	// SmallText renders the text in the small variant. It wins over BoldText.
	SmallText
)

const (
	defaultFgColour = "000000"
	defaultBgColour = "ffffff"
	defaultDotSize  = 0.8
)

type layer struct {
	enc       *Encoding
	composite bool
}

// Symbol is a barcode symbol with its render options and the outputs of the
// last successful render. A Symbol is not safe for concurrent use.
type Symbol struct {
	Symbology Symbology

	// Height is the symbol height in modules, 0 for the symbology default.
	Height float64

	// Scale multiplies every unscaled pixel coordinate. It must be finite and
	// greater than zero.
	Scale float64

	// Whitespace, border and separator sizes in modules.
	WhitespaceWidth  int
	VWhitespaceWidth int
	BorderWidth      int
	// SeparatorHeight of 0 selects the default of 1. Values outside [0, 4]
	// are clamped.
	SeparatorHeight int

	Output  OutputOptions
	ShowHRT bool

	// FgColour and BgColour are "RRGGBB" or "CCMMYYKK" hex strings.
	FgColour string
	BgColour string

	// DotSize is the dot diameter in dotty mode as a fraction of a module.
	DotSize float64

	// Outputs of the last successful Buffer call.
	Text         string
	Bitmap       []byte
	BitmapWidth  int
	BitmapHeight int

	layers []layer
	merged *compose.Result
	buffer *raster.Buffer
}

// NewSymbol creates a symbol with the defaults of the symbology.
func NewSymbol(symbology Symbology) *Symbol {
	s := &Symbol{
		Symbology: symbology,
		Scale:     1,
		ShowHRT:   true,
		FgColour:  defaultFgColour,
		BgColour:  defaultBgColour,
		DotSize:   defaultDotSize,
	}
	if prof, ok := symbology.Profile(); ok {
		s.BorderWidth = prof.BorderWidth
		switch prof.Border {
		case geometry.BorderBind:
			s.Output |= Bind
		case geometry.BorderBox:
			s.Output |= Box
		case geometry.BorderBindTop:
			s.Output |= BindTop
		}
	}
	return s
}

// Encode encodes contents with the registered encoder and stacks the rows
// below any existing ones.
func (s *Symbol) Encode(contents string) error {
	enc, err := EncoderFor(s.Symbology)
	if err != nil {
		return err
	}
	e, err := enc.Encode(contents)
	if err != nil {
		return fmt.Errorf("encoding %s: %w: %w", s.Symbology, ErrConfiguration, err)
	}
	return s.Append(e)
}

// Append stacks an encoding below the existing rows.
func (s *Symbol) Append(e *Encoding) error {
	return s.addLayer(layer{enc: e})
}

// AddComposite places a 2D composite encoding above the linear rows.
func (s *Symbol) AddComposite(e *Encoding) error {
	return s.addLayer(layer{enc: e, composite: true})
}

func (s *Symbol) addLayer(l layer) error {
	if l.enc == nil {
		return fmt.Errorf("nil encoding: %w", ErrConfiguration)
	}
	layers := append(append([]layer(nil), s.layers...), l)
	merged, err := s.merge(layers)
	if err != nil {
		return err
	}
	s.layers, s.merged = layers, merged
	return nil
}

func (s *Symbol) merge(layers []layer) (*compose.Result, error) {
	prof, ok := s.Symbology.Profile()
	if !ok {
		return nil, fmt.Errorf("unknown symbology %d: %w", int(s.Symbology), ErrConfiguration)
	}
	in := make([]compose.Layer, len(layers))
	for i, l := range layers {
		in[i].Composite = l.composite
		for _, r := range l.enc.Rows {
			in[i].Rows = append(in[i].Rows, compose.Row{
				Modules: r.Modules,
				Height:  r.Height,
				Start:   r.Start,
				Stop:    r.Stop,
			})
		}
	}
	merged, err := compose.Merge(in, compose.Policy{
		Stackable: prof.Stackable,
		Composite: prof.CompositeCapable,
		Align:     prof.Align,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", s.Symbology, ErrConfiguration, err)
	}
	return merged, nil
}

// Rows returns the number of module rows.
func (s *Symbol) Rows() int {
	if s.merged == nil {
		return 0
	}
	return s.merged.Grid.Height()
}

// Width returns the width of the symbol in modules.
func (s *Symbol) Width() int {
	if s.merged == nil {
		return 0
	}
	return s.merged.Grid.Width()
}

// Module reports whether the module at row, col is dark.
func (s *Symbol) Module(row, col int) bool {
	if s.merged == nil || row < 0 || col < 0 || row >= s.Rows() || col >= s.Width() {
		return false
	}
	return s.merged.Grid.Get(col, row)
}

// RowHeight returns the declared height of a row in modules, 0 for a
// flexible row.
func (s *Symbol) RowHeight(row int) float64 {
	if s.merged == nil || row < 0 || row >= len(s.merged.Rows) {
		return 0
	}
	return s.merged.Rows[row].Height
}

// Layers returns the number of encodings added to the symbol.
func (s *Symbol) Layers() int {
	return len(s.layers)
}

// hrtLayer returns the index of the last linear layer, -1 if there is none.
func (s *Symbol) hrtLayer() int {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if !s.layers[i].composite {
			return i
		}
	}
	return -1
}

func (s *Symbol) hasComposite() bool {
	for _, l := range s.layers {
		if l.composite {
			return true
		}
	}
	return false
}
