// Package symfile parses textual symbol descriptions.
//
// A description names a symbology and then lists layers:
//
//	# Code 16K style stack
//	symbology CODE_16K
//	height 20
//	stack {
//	    row "11010010000100110111011" height 10 start 7 stop 7
//	    row "11010010000110011100101" height 10 start 7 stop 7
//	    text "HELLO"
//	}
//
// Linear symbologies with a registered encoder can encode data and carry a
// composite layer:
//
//	symbology CODE_128
//	encode "1234567890"
//	composite { row "1111" row "1001" }
//
// Inside a layer, row strings use '1' or 'X' for dark modules and '0' or '.'
// for light ones. "zone TEXT START END [addon]" places a piece of text at
// module columns, "guard START END" marks guard columns and "addon-start COLUMN"
// sets the add-on start. "encode" runs the registered encoder of the
// symbology.
package symfile

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ericlevine/zxingraster"
	_ "github.com/ericlevine/zxingraster/oned"
)

// ErrModules is returned for a row string with characters other than module
// markers.
var ErrModules = errors.New("symfile: bad module character")

var (
	symLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(symLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root of a symbol description.
type File struct {
	Pos        lexer.Position
	Symbology  string       `parser:"'symbology' @Ident"`
	Statements []*Statement `parser:"@@*"`
}

// Statement is one top level statement.
type Statement struct {
	Pos       lexer.Position
	Height    *float64       `parser:"  'height' @Number"`
	Encode    *StringLiteral `parser:"| 'encode' @String"`
	Stack     *Layer         `parser:"| 'stack' @@"`
	Composite *Layer         `parser:"| 'composite' @@"`
}

// Layer is a braced list of rows and text declarations.
type Layer struct {
	Items []*Item `parser:"'{' @@* '}'"`
}

// Item is one declaration inside a layer.
type Item struct {
	Pos   lexer.Position
	Row   *RowDecl       `parser:"  'row' @@"`
	Text  *StringLiteral `parser:"| 'text' @String"`
	Zone  *ZoneDecl      `parser:"| 'zone' @@"`
	Guard *GuardDecl     `parser:"| 'guard' @@"`
	AddOn *int           `parser:"| 'addon-start' @Number"`
}

// RowDecl declares one row of modules.
type RowDecl struct {
	Modules StringLiteral `parser:"@String"`
	Height  float64       `parser:"( 'height' @Number )?"`
	Start   int           `parser:"( 'start' @Number )?"`
	Stop    int           `parser:"( 'stop' @Number )?"`
}

// ZoneDecl anchors text to module columns [Start, End).
type ZoneDecl struct {
	Text  StringLiteral `parser:"@String"`
	Start int           `parser:"@Number"`
	End   int           `parser:"@Number"`
	AddOn bool          `parser:"@'addon'?"`
}

// GuardDecl marks columns [Start, End) as guard bars.
type GuardDecl struct {
	Start int `parser:"@Number"`
	End   int `parser:"@Number"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a description from r. name is used in error positions.
func Parse(r io.Reader, name string) (*File, error) {
	return fileParser.Parse(name, r)
}

// ParseString parses a description held in a string.
func ParseString(name, input string) (*File, error) {
	return fileParser.ParseString(name, input)
}

// Build creates the symbol the description declares.
func (f *File) Build() (*zxingraster.Symbol, error) {
	sym, err := zxingraster.ParseSymbology(f.Symbology)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Pos, err)
	}
	s := zxingraster.NewSymbol(sym)
	for _, st := range f.Statements {
		switch {
		case st.Height != nil:
			s.Height = *st.Height
		case st.Encode != nil:
			err = s.Encode(string(*st.Encode))
		case st.Stack != nil:
			var enc *zxingraster.Encoding
			if enc, err = st.Stack.encoding(); err == nil {
				err = s.Append(enc)
			}
		case st.Composite != nil:
			var enc *zxingraster.Encoding
			if enc, err = st.Composite.encoding(); err == nil {
				err = s.AddComposite(enc)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st.Pos, err)
		}
	}
	return s, nil
}

func (l *Layer) encoding() (*zxingraster.Encoding, error) {
	enc := &zxingraster.Encoding{}
	for _, it := range l.Items {
		switch {
		case it.Row != nil:
			modules, err := parseModules(string(it.Row.Modules))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", it.Pos, err)
			}
			enc.Rows = append(enc.Rows, zxingraster.Row{
				Modules: modules,
				Height:  it.Row.Height,
				Start:   it.Row.Start,
				Stop:    it.Row.Stop,
			})
		case it.Text != nil:
			enc.Text = string(*it.Text)
		case it.Zone != nil:
			enc.Zones = append(enc.Zones, zxingraster.TextZone{
				Text:  string(it.Zone.Text),
				Start: it.Zone.Start,
				End:   it.Zone.End,
				AddOn: it.Zone.AddOn,
			})
		case it.Guard != nil:
			enc.Guards = append(enc.Guards, [2]int{it.Guard.Start, it.Guard.End})
		case it.AddOn != nil:
			enc.AddOnStart = *it.AddOn
		}
	}
	return enc, nil
}

func parseModules(s string) ([]bool, error) {
	modules := make([]bool, 0, len(s))
	for i, c := range s {
		switch c {
		case '1', 'X', 'x':
			modules = append(modules, true)
		case '0', '.':
			modules = append(modules, false)
		default:
			return nil, fmt.Errorf("%q at offset %d: %w", c, i, ErrModules)
		}
	}
	return modules, nil
}
