package zxingraster

// Row is one row of modules produced by an encoder.
type Row struct {
	// Modules holds true for dark modules, left to right.
	Modules []bool

	// Height in modules. Zero shares the symbol height with the other
	// flexible rows.
	Height float64

	// Start and Stop are the module widths of the start and stop
	// characters, used to inset separators.
	Start, Stop int
}

// TextZone anchors a piece of human-readable text to module columns
// [Start, End) of its encoding. Start may be negative to place text in the
// left quiet zone.
type TextZone struct {
	Text       string
	Start, End int

	// AddOn zones sit above the add-on bars instead of below the symbol.
	AddOn bool
}

// Encoding is the output of one encode call.
type Encoding struct {
	Rows []Row

	// Text is the human-readable text of the encoding.
	Text string

	// Zones optionally splits Text into independently placed pieces.
	Zones []TextZone

	// Guards are [start, end) module columns whose bars extend below the
	// symbol.
	Guards [][2]int

	// AddOnStart is the first column of an EAN-2/EAN-5 add-on, 0 if none.
	AddOnStart int
}

// Width returns the width in modules of the encoding.
func (e *Encoding) Width() int {
	if len(e.Rows) == 0 {
		return 0
	}
	return len(e.Rows[0].Modules)
}

// Encoder encodes contents into rows of modules.
type Encoder interface {
	// Encode encodes the given contents.
	Encode(contents string) (*Encoding, error)
}
