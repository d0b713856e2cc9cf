package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/zxingraster"
)

// itfPatterns are the wide (3x) bar/space widths of each digit.
var itfPatterns = [10][5]int{
	{1, 1, 3, 3, 1}, // 0
	{3, 1, 1, 1, 3}, // 1
	{1, 3, 1, 1, 3}, // 2
	{3, 3, 1, 1, 1}, // 3
	{1, 1, 3, 1, 3}, // 4
	{3, 1, 3, 1, 1}, // 5
	{1, 3, 3, 1, 1}, // 6
	{1, 1, 1, 3, 3}, // 7
	{3, 1, 1, 3, 1}, // 8
	{1, 3, 1, 3, 1}, // 9
}

var (
	itfStartPattern = []int{1, 1, 1, 1}
	itfEndPattern   = []int{3, 1, 1}
)

const itf14Digits = 14

// ITF14Encoder encodes ITF-14 (SSCC/GTIN-14 Interleaved 2 of 5) symbols.
// Up to 13 digits are zero padded and completed with the check digit.
type ITF14Encoder struct{}

// NewITF14Encoder creates a new ITF-14 encoder.
func NewITF14Encoder() *ITF14Encoder {
	return &ITF14Encoder{}
}

// Encode encodes the given contents into one ITF-14 row.
func (e *ITF14Encoder) Encode(contents string) (*zxingraster.Encoding, error) {
	if err := CheckNumeric(contents); err != nil {
		return nil, err
	}
	if len(contents) == 0 || len(contents) > itf14Digits-1 {
		return nil, fmt.Errorf("requested contents should be 1 to %d digits long, but got %d", itf14Digits-1, len(contents))
	}
	digits := strings.Repeat("0", itf14Digits-1-len(contents)) + contents
	digits += string(rune('0' + GetStandardUPCEANChecksum(digits)))
	return &zxingraster.Encoding{
		Rows: singleRow(encodeITF(digits), 4, 5),
		Text: digits,
	}, nil
}

// encodeITF interleaves digit pairs: the first digit of a pair sets the bar
// widths, the second the space widths.
func encodeITF(contents string) []bool {
	width := 4 + 5
	for i := 0; i < len(contents); i++ {
		for _, w := range itfPatterns[contents[i]-'0'] {
			width += w
		}
	}
	result := make([]bool, width)
	pos := AppendPattern(result, 0, itfStartPattern, true)
	encoding := make([]int, 10)
	for i := 0; i < len(contents); i += 2 {
		d1, d2 := contents[i]-'0', contents[i+1]-'0'
		for j := 0; j < 5; j++ {
			encoding[2*j] = itfPatterns[d1][j]
			encoding[2*j+1] = itfPatterns[d2][j]
		}
		pos += AppendPattern(result, pos, encoding, true)
	}
	AppendPattern(result, pos, itfEndPattern, true)
	return result
}
