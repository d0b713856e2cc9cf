package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/zxingraster"
)

const code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code39CharacterEncodings holds the narrow/wide pattern of each alphabet
// character, one bit per element with wide elements set.
var code39CharacterEncodings = [43]int{
	0x034, 0x121, 0x061, 0x160, 0x031, 0x130, 0x070, 0x025, 0x124, 0x064, // 0-9
	0x109, 0x049, 0x148, 0x019, 0x118, 0x058, 0x00D, 0x10C, 0x04C, 0x01C, // A-J
	0x103, 0x043, 0x142, 0x013, 0x112, 0x052, 0x007, 0x106, 0x046, 0x016, // K-T
	0x181, 0x0C1, 0x1C0, 0x091, 0x190, 0x0D0, 0x085, 0x184, 0x0C4, 0x0A8, // U-$
	0x0A2, 0x08A, 0x02A, // /-%
}

const (
	code39AsteriskEncoding = 0x094
	code39MaxLength        = 80
	// code39CharWidth is one character plus its inter-character gap.
	code39CharWidth = 13
)

// Code39Encoder encodes Code 39 symbols. Characters outside the Code 39
// alphabet are written in Full ASCII (extended) form.
type Code39Encoder struct{}

// NewCode39Encoder creates a new Code 39 encoder.
func NewCode39Encoder() *Code39Encoder {
	return &Code39Encoder{}
}

// Encode encodes the given contents into one Code 39 row.
func (e *Code39Encoder) Encode(contents string) (*zxingraster.Encoding, error) {
	if contents == "" {
		return nil, fmt.Errorf("found empty contents")
	}
	for _, c := range contents {
		if c > 127 {
			return nil, fmt.Errorf("bad character in input: ASCII value=%d", c)
		}
	}
	encoded := contents
	for i := 0; i < len(contents); i++ {
		if strings.IndexByte(code39Alphabet, contents[i]) < 0 {
			encoded = tryConvertToCode39Extended(contents)
			break
		}
	}
	if len(encoded) > code39MaxLength {
		return nil, fmt.Errorf("requested contents should be less than %d digits long, but got %d", code39MaxLength, len(encoded))
	}
	return &zxingraster.Encoding{
		Rows: singleRow(encodeCode39(encoded), code39CharWidth, code39CharWidth-1),
		Text: "*" + contents + "*",
	}, nil
}

func encodeCode39(contents string) []bool {
	widths := make([]int, 9)
	result := make([]bool, 24+1+code39CharWidth*len(contents))
	narrowWhite := []int{1}

	code39ToIntArray(code39AsteriskEncoding, widths)
	pos := AppendPattern(result, 0, widths, true)
	pos += AppendPattern(result, pos, narrowWhite, false)
	for i := 0; i < len(contents); i++ {
		idx := strings.IndexByte(code39Alphabet, contents[i])
		code39ToIntArray(code39CharacterEncodings[idx], widths)
		pos += AppendPattern(result, pos, widths, true)
		pos += AppendPattern(result, pos, narrowWhite, false)
	}
	code39ToIntArray(code39AsteriskEncoding, widths)
	AppendPattern(result, pos, widths, true)
	return result
}

func code39ToIntArray(a int, toReturn []int) {
	for i := 0; i < 9; i++ {
		if a&(1<<uint(8-i)) != 0 {
			toReturn[i] = 2
		} else {
			toReturn[i] = 1
		}
	}
}

func tryConvertToCode39Extended(contents string) string {
	var ext strings.Builder
	for i := 0; i < len(contents); i++ {
		c := contents[i]
		switch {
		case c == 0:
			ext.WriteString("%U")
		case c == ' ' || c == '-' || c == '.':
			ext.WriteByte(c)
		case c == '@':
			ext.WriteString("%V")
		case c == '`':
			ext.WriteString("%W")
		case c <= 26:
			ext.WriteByte('$')
			ext.WriteByte('A' + c - 1)
		case c < ' ':
			ext.WriteByte('%')
			ext.WriteByte('A' + c - 27)
		case c <= ',' || c == '/' || c == ':':
			ext.WriteByte('/')
			ext.WriteByte('A' + c - 33)
		case c <= '9':
			ext.WriteByte('0' + c - 48)
		case c <= '?':
			ext.WriteByte('%')
			ext.WriteByte('F' + c - 59)
		case c <= 'Z':
			ext.WriteByte('A' + c - 65)
		case c <= '_':
			ext.WriteByte('%')
			ext.WriteByte('K' + c - 91)
		case c <= 'z':
			ext.WriteByte('+')
			ext.WriteByte('A' + c - 97)
		default:
			ext.WriteByte('%')
			ext.WriteByte('P' + c - 123)
		}
	}
	return ext.String()
}
