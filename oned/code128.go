package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/zxingraster"
)

// Escape characters used to specify FNC codes in Code 128 input.
const (
	Code128EscapeFNC1 = '\u00f1'
	Code128EscapeFNC2 = '\u00f2'
	Code128EscapeFNC3 = '\u00f3'
	Code128EscapeFNC4 = '\u00f4'
)

// Symbol values of the code set switches, function characters and start and
// stop characters. Switching to code set A shares its value with FNC4 in code
// set A, and likewise for B.
const (
	code128CodeC  = 99
	code128CodeB  = 100
	code128CodeA  = 101
	code128FNC1   = 102
	code128FNC2   = 97
	code128FNC3   = 96
	code128StartA = 103
	code128StartB = 104
	code128StartC = 105
	code128Stop   = 106

	code128StartWidth = 11
	code128StopWidth  = 13
)

// Code128Patterns contains the bar patterns for Code 128.
var Code128Patterns = [107][]int{
	{2, 1, 2, 2, 2, 2}, // 0
	{2, 2, 2, 1, 2, 2},
	{2, 2, 2, 2, 2, 1},
	{1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2},
	{1, 3, 1, 2, 2, 2}, // 5
	{1, 2, 2, 2, 1, 3},
	{1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2},
	{2, 2, 1, 2, 1, 3},
	{2, 2, 1, 3, 1, 2}, // 10
	{2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2},
	{1, 2, 2, 1, 3, 2},
	{1, 2, 2, 2, 3, 1},
	{1, 1, 3, 2, 2, 2}, // 15
	{1, 2, 3, 1, 2, 2},
	{1, 2, 3, 2, 2, 1},
	{2, 2, 3, 2, 1, 1},
	{2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, // 20
	{2, 1, 3, 2, 1, 2},
	{2, 2, 3, 1, 1, 2},
	{3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2},
	{3, 2, 1, 1, 2, 2}, // 25
	{3, 2, 1, 2, 2, 1},
	{3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2},
	{3, 2, 2, 2, 1, 1},
	{2, 1, 2, 1, 2, 3}, // 30
	{2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1},
	{1, 1, 1, 3, 2, 3},
	{1, 3, 1, 1, 2, 3},
	{1, 3, 1, 3, 2, 1}, // 35
	{1, 1, 2, 3, 1, 3},
	{1, 3, 2, 1, 1, 3},
	{1, 3, 2, 3, 1, 1},
	{2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, // 40
	{2, 3, 1, 3, 1, 1},
	{1, 1, 2, 1, 3, 3},
	{1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1},
	{1, 1, 3, 1, 2, 3}, // 45
	{1, 1, 3, 3, 2, 1},
	{1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1},
	{2, 1, 1, 3, 3, 1},
	{2, 3, 1, 1, 3, 1}, // 50
	{2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1},
	{2, 1, 3, 1, 3, 1},
	{3, 1, 1, 1, 2, 3},
	{3, 1, 1, 3, 2, 1}, // 55
	{3, 3, 1, 1, 2, 1},
	{3, 1, 2, 1, 1, 3},
	{3, 1, 2, 3, 1, 1},
	{3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, // 60
	{2, 2, 1, 4, 1, 1},
	{4, 3, 1, 1, 1, 1},
	{1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2},
	{1, 2, 1, 1, 2, 4}, // 65
	{1, 2, 1, 4, 2, 1},
	{1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1},
	{1, 1, 2, 2, 1, 4},
	{1, 1, 2, 4, 1, 2}, // 70
	{1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1},
	{1, 4, 2, 1, 1, 2},
	{1, 4, 2, 2, 1, 1},
	{2, 4, 1, 2, 1, 1}, // 75
	{2, 2, 1, 1, 1, 4},
	{4, 1, 3, 1, 1, 1},
	{2, 4, 1, 1, 1, 2},
	{1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, // 80
	{1, 2, 1, 1, 4, 2},
	{1, 2, 1, 2, 4, 1},
	{1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2},
	{1, 2, 4, 2, 1, 1}, // 85
	{4, 1, 1, 2, 1, 2},
	{4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1},
	{2, 1, 2, 1, 4, 1},
	{2, 1, 4, 1, 2, 1}, // 90
	{4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3},
	{1, 1, 1, 3, 4, 1},
	{1, 3, 1, 1, 4, 1},
	{1, 1, 4, 1, 1, 3}, // 95
	{1, 1, 4, 3, 1, 1},
	{4, 1, 1, 1, 1, 3},
	{4, 1, 1, 3, 1, 1},
	{1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, // 100
	{3, 1, 1, 1, 4, 1},
	{4, 1, 1, 1, 3, 1},
	{2, 1, 1, 4, 1, 2}, // START_A
	{2, 1, 1, 2, 1, 4}, // START_B
	{2, 1, 1, 2, 3, 2}, // START_C
	{2, 3, 3, 1, 1, 1, 2}, // STOP
}

// Code128Encoder encodes Code 128 symbols. Characters U+0080 to U+00FF are
// encoded as extended ASCII behind FNC4, except the four escape runes.
type Code128Encoder struct {
	// ForceCodeSet pins the encoder to code set "A", "B" or "C".
	ForceCodeSet string
}

// NewCode128Encoder creates a new Code 128 encoder.
func NewCode128Encoder() *Code128Encoder {
	return &Code128Encoder{}
}

// Encode encodes the given contents into one Code 128 row.
func (e *Code128Encoder) Encode(contents string) (*zxingraster.Encoding, error) {
	forced := 0
	switch e.ForceCodeSet {
	case "":
	case "A":
		forced = code128CodeA
	case "B":
		forced = code128CodeB
	case "C":
		forced = code128CodeC
	default:
		return nil, fmt.Errorf("unsupported code set hint: %s", e.ForceCodeSet)
	}

	value := []rune(contents)
	if len(value) == 0 {
		return nil, fmt.Errorf("found empty contents")
	}
	pl := &code128Plan{input: value, forced: forced}
	if err := pl.run(); err != nil {
		return nil, err
	}
	return &zxingraster.Encoding{
		Rows: singleRow(pl.modules(), code128StartWidth, code128StopWidth),
		Text: code128Text(value),
	}, nil
}

// code128Text drops FNC escapes and blanks control characters.
func code128Text(value []rune) string {
	var sb strings.Builder
	for _, c := range value {
		switch {
		case isCode128Escape(c):
		case c < ' ' || (c >= 0x7f && c < 0xa0):
			sb.WriteByte(' ')
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func isCode128Escape(c rune) bool {
	return c >= Code128EscapeFNC1 && c <= Code128EscapeFNC4
}

// code128Plan turns the input into symbol values, switching code sets as it
// goes.
type code128Plan struct {
	input  []rune
	forced int
	set    int
	values []int
}

func (pl *code128Plan) run() error {
	for _, c := range pl.input {
		if c > 0xff {
			return fmt.Errorf("bad character in input: %U is outside Latin-1", c)
		}
	}
	pl.start()
	for i := 0; i < len(pl.input); {
		n, err := pl.next(i)
		if err != nil {
			return err
		}
		i += n
	}
	return nil
}

// digits counts the decimal digits starting at i.
func (pl *code128Plan) digits(i int) int {
	n := 0
	for i+n < len(pl.input) && pl.input[i+n] >= '0' && pl.input[i+n] <= '9' {
		n++
	}
	return n
}

// setFor returns the code set A or B that can hold c, preferring the current
// one.
func (pl *code128Plan) setFor(c rune) int {
	if isCode128Escape(c) {
		if pl.set == code128CodeA {
			return code128CodeA
		}
		return code128CodeB
	}
	base := c & 0x7f
	switch {
	case base < ' ':
		return code128CodeA
	case base >= '`':
		return code128CodeB
	case pl.set == code128CodeA:
		return code128CodeA
	default:
		return code128CodeB
	}
}

func (pl *code128Plan) start() {
	set := pl.forced
	if set == 0 {
		first := 0
		for first < len(pl.input) && pl.input[first] == Code128EscapeFNC1 {
			first++
		}
		run := pl.digits(first)
		switch {
		case run >= 4 || (run == 2 && first+run == len(pl.input)):
			set = code128CodeC
		case first < len(pl.input):
			set = pl.setFor(pl.input[first])
		default:
			set = code128CodeB
		}
	}
	pl.set = set
	switch set {
	case code128CodeA:
		pl.values = append(pl.values, code128StartA)
	case code128CodeB:
		pl.values = append(pl.values, code128StartB)
	default:
		pl.values = append(pl.values, code128StartC)
	}
}

func (pl *code128Plan) switchTo(set int) {
	if set != pl.set {
		pl.values = append(pl.values, set)
		pl.set = set
	}
}

// next encodes the input at i and returns how many runes it consumed.
func (pl *code128Plan) next(i int) (int, error) {
	c := pl.input[i]
	if pl.forced == 0 {
		pl.chooseSet(i)
	}

	if pl.set == code128CodeC {
		switch {
		case c == Code128EscapeFNC1:
			pl.values = append(pl.values, code128FNC1)
			return 1, nil
		case pl.digits(i) >= 2:
			pl.values = append(pl.values, int(c-'0')*10+int(pl.input[i+1]-'0'))
			return 2, nil
		default:
			return 0, fmt.Errorf("bad character in input for code set C at offset %d: %q", i, c)
		}
	}

	switch c {
	case Code128EscapeFNC1:
		pl.values = append(pl.values, code128FNC1)
		return 1, nil
	case Code128EscapeFNC2:
		pl.values = append(pl.values, code128FNC2)
		return 1, nil
	case Code128EscapeFNC3:
		pl.values = append(pl.values, code128FNC3)
		return 1, nil
	case Code128EscapeFNC4:
		pl.values = append(pl.values, pl.set)
		return 1, nil
	}

	base := c
	if c >= 0x80 {
		// FNC4 shares its value with the switch to the current code set.
		pl.values = append(pl.values, pl.set)
		base = c - 0x80
	}
	switch {
	case pl.set == code128CodeA && base >= '`':
		return 0, fmt.Errorf("bad character in input for code set A at offset %d: %q", i, c)
	case pl.set == code128CodeB && base < ' ':
		return 0, fmt.Errorf("bad character in input for code set B at offset %d: %q", i, c)
	case base < ' ':
		pl.values = append(pl.values, int(base)+64)
	default:
		pl.values = append(pl.values, int(base)-' ')
	}
	return 1, nil
}

// chooseSet switches code sets before the input at i. Runs of at least six
// digits, or four at the end of the input, go to code set C. An odd run
// leaves its first digit in the current set.
func (pl *code128Plan) chooseSet(i int) {
	c := pl.input[i]
	run := pl.digits(i)
	if pl.set == code128CodeC {
		if run >= 2 || c == Code128EscapeFNC1 {
			return
		}
		pl.switchTo(pl.setFor(c))
		return
	}
	if run%2 == 0 && (run >= 6 || (run >= 4 && i+run == len(pl.input))) {
		pl.switchTo(code128CodeC)
		return
	}
	pl.switchTo(pl.setFor(c))
}

// modules appends the check character and the stop character and lays out
// the bars.
func (pl *code128Plan) modules() []bool {
	check := pl.values[0]
	for i, v := range pl.values[1:] {
		check += v * (i + 1)
	}
	values := append(append([]int(nil), pl.values...), check%103, code128Stop)

	width := 0
	for _, v := range values {
		for _, w := range Code128Patterns[v] {
			width += w
		}
	}
	result := make([]bool, width)
	pos := 0
	for _, v := range values {
		pos += AppendPattern(result, pos, Code128Patterns[v], true)
	}
	return result
}
