// Package geometry turns a module grid and its render options into an
// unscaled drawing plan. Everything symbology specific is expressed through a
// Profile, so Resolve never switches on a symbology.
package geometry

// Class is the broad family of a symbology. It fixes the module pitch.
type Class int

const (
	Linear Class = iota
	Stacked
	Matrix
)

func (c Class) String() string {
	switch c {
	case Linear:
		return "linear"
	case Stacked:
		return "stacked"
	case Matrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Pitch returns the number of unscaled pixels per module side.
func (c Class) Pitch() float64 {
	if c == Matrix {
		return 1
	}
	return 2
}

// BorderStyle selects which border bands are drawn.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	// BorderBind draws horizontal bands above and below the symbol and
	// separators between rows.
	BorderBind
	// BorderBox draws bind bands plus left and right sides.
	BorderBox
	// BorderBindTop draws the top band only.
	BorderBindTop
)

func (s BorderStyle) String() string {
	switch s {
	case BorderNone:
		return "none"
	case BorderBind:
		return "bind"
	case BorderBox:
		return "box"
	case BorderBindTop:
		return "bind-top"
	default:
		return "unknown"
	}
}

// Align positions layers that are narrower than the widest one.
type Align int

const (
	AlignCentre Align = iota
	AlignLeft
)

// Quiet holds mandatory quiet zones in modules.
type Quiet struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Profile carries the geometry hooks of one symbology.
type Profile struct {
	Class Class

	DottyEligible    bool
	Stackable        bool
	CompositeCapable bool

	Quiet Quiet
	// QuietAddOn replaces Quiet.Right when an add-on is present.
	QuietAddOn float64

	// Border and BorderWidth are the defaults a new symbol starts with.
	Border      BorderStyle
	BorderWidth int

	// Bearer symbologies frame the bars only; text sits outside the frame.
	Bearer bool
	// UPCEAN symbologies extend guard bars below the bars and drop the
	// add-on below its own text.
	UPCEAN bool
	// InsetSeparators limits row separators to the data region between the
	// start and stop characters.
	InsetSeparators bool

	Align Align

	// DefaultHeight in modules. Zero means the sum of the row heights.
	DefaultHeight float64
}

// Pitch returns the number of unscaled pixels per module side.
func (p Profile) Pitch() float64 {
	return p.Class.Pitch()
}
