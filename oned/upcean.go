package oned

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlevine/zxingraster"
)

// UPC/EAN guard patterns.
var (
	UPCEANStartEndPattern = []int{1, 1, 1}
	UPCEANMiddlePattern   = []int{1, 1, 1, 1, 1}
	UPCEANEndPattern      = []int{1, 1, 1, 1, 1, 1}
)

// LPatterns contains the "odd" or "L" patterns for encoding UPC/EAN digits.
var LPatterns = [10][]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// LAndGPatterns includes both the L and G patterns.
// Indices 0-9 are L patterns, 10-19 are G patterns (reversed L patterns).
var LAndGPatterns [20][]int

func init() {
	for i := 0; i < 10; i++ {
		LAndGPatterns[i] = LPatterns[i]
	}
	for i := 10; i < 20; i++ {
		widths := LPatterns[i-10]
		reversed := make([]int, len(widths))
		for j := 0; j < len(widths); j++ {
			reversed[j] = widths[len(widths)-j-1]
		}
		LAndGPatterns[i] = reversed
	}
}

var ean13FirstDigitEncodings = [10]int{
	0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A,
}

var upceNumSysAndCheckDigitPatterns = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}

var (
	extensionStartPattern     = []int{1, 1, 2}
	extensionSeparatorPattern = []int{1, 1}
)

var checkDigitEncodings = [10]int{
	0x18, 0x14, 0x12, 0x11, 0x0C, 0x06, 0x03, 0x0A, 0x09, 0x05,
}

const (
	ean13CodeWidth = 3 + (7 * 6) + 5 + (7 * 6) + 3 // = 95
	ean8CodeWidth  = 3 + (7 * 4) + 5 + (7 * 4) + 3 // = 67
	upceCodeWidth  = 3 + (7 * 6) + 6               // = 51

	// Gap between the main symbol and its add-on, in modules. Only UPC-A
	// uses the wider gap.
	eanAddOnGap = 7
	upcAddOnGap = 9
)

// CheckStandardUPCEANChecksum verifies the UPC/EAN checksum.
func CheckStandardUPCEANChecksum(s string) bool {
	length := len(s)
	if length == 0 {
		return false
	}
	check := int(s[length-1] - '0')
	return GetStandardUPCEANChecksum(s[:length-1]) == check
}

// GetStandardUPCEANChecksum computes the UPC/EAN check digit for a string of digits
// (without the check digit itself).
func GetStandardUPCEANChecksum(s string) int {
	length := len(s)
	sum := 0
	for i := length - 1; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return -1
		}
		sum += d
	}
	sum *= 3
	for i := length - 2; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return -1
		}
		sum += d
	}
	return (1000 - sum) % 10
}

// CheckUPCEANLength validates the length and optionally computes/validates the check digit.
// expectedWithout is the length without check digit, expectedWith is the length with check digit.
func CheckUPCEANLength(contents string, expectedWithout, expectedWith int) (string, error) {
	if err := CheckNumeric(contents); err != nil {
		return "", err
	}
	switch len(contents) {
	case expectedWithout:
		contents += string(rune('0' + GetStandardUPCEANChecksum(contents)))
	case expectedWith:
		if !CheckStandardUPCEANChecksum(contents) {
			return "", fmt.Errorf("contents do not pass checksum")
		}
	default:
		return "", fmt.Errorf("requested contents should be %d or %d digits long, but got %d",
			expectedWithout, expectedWith, len(contents))
	}
	return contents, nil
}

// ConvertUPCEtoUPCA expands a zero-suppressed UPC-E number to its UPC-A form.
func ConvertUPCEtoUPCA(upce string) string {
	if len(upce) < 7 {
		return upce
	}
	upceChars := upce[1:7]
	var result strings.Builder
	result.WriteByte(upce[0])

	lastChar := upceChars[5]
	switch lastChar {
	case '0', '1', '2':
		result.WriteString(upceChars[0:2])
		result.WriteByte(lastChar)
		result.WriteString("0000")
		result.WriteString(upceChars[2:5])
	case '3':
		result.WriteString(upceChars[0:3])
		result.WriteString("00000")
		result.WriteString(upceChars[3:5])
	case '4':
		result.WriteString(upceChars[0:4])
		result.WriteString("00000")
		result.WriteByte(upceChars[4])
	default:
		result.WriteString(upceChars[0:5])
		result.WriteString("0000")
		result.WriteByte(lastChar)
	}
	if len(upce) >= 8 {
		result.WriteByte(upce[7])
	}
	return result.String()
}

type upceanKind int

const (
	kindEAN13 upceanKind = iota
	kindEAN8
	kindUPCA
	kindUPCE
)

// UPCEANEncoder encodes EAN-13, EAN-8, UPC-A and UPC-E symbols. Contents
// may carry a two or five digit add-on after a '+', as in "123456789012+12".
type UPCEANEncoder struct {
	kind upceanKind
}

// NewEAN13Encoder creates an EAN-13 encoder.
func NewEAN13Encoder() *UPCEANEncoder { return &UPCEANEncoder{kind: kindEAN13} }

// NewEAN8Encoder creates an EAN-8 encoder.
func NewEAN8Encoder() *UPCEANEncoder { return &UPCEANEncoder{kind: kindEAN8} }

// NewUPCAEncoder creates a UPC-A encoder.
func NewUPCAEncoder() *UPCEANEncoder { return &UPCEANEncoder{kind: kindUPCA} }

// NewUPCEEncoder creates a UPC-E encoder.
func NewUPCEEncoder() *UPCEANEncoder { return &UPCEANEncoder{kind: kindUPCE} }

// Encode encodes the main symbol and its optional add-on into one row.
func (e *UPCEANEncoder) Encode(contents string) (*zxingraster.Encoding, error) {
	main, addOn, hasAddOn := strings.Cut(contents, "+")
	var (
		enc *zxingraster.Encoding
		err error
	)
	switch e.kind {
	case kindEAN13:
		enc, err = encodeEAN13(main)
	case kindEAN8:
		enc, err = encodeEAN8(main)
	case kindUPCA:
		enc, err = encodeUPCA(main)
	case kindUPCE:
		enc, err = encodeUPCE(main)
	default:
		return nil, fmt.Errorf("unknown UPC/EAN variant %d", e.kind)
	}
	if err != nil {
		return nil, err
	}
	if !hasAddOn {
		return enc, nil
	}

	addOn, err = padAddOn(addOn)
	if err != nil {
		return nil, fmt.Errorf("add-on: %w", err)
	}
	ext, err := encodeExtension(addOn)
	if err != nil {
		return nil, fmt.Errorf("add-on: %w", err)
	}
	gap := eanAddOnGap
	if e.kind == kindUPCA {
		gap = upcAddOnGap
	}
	row := &enc.Rows[0]
	mainWidth := len(row.Modules)
	start := mainWidth + gap
	modules := make([]bool, start+len(ext))
	copy(modules, row.Modules)
	copy(modules[start:], ext)
	row.Stop += len(modules) - mainWidth
	row.Modules = modules

	enc.Text += "+" + addOn
	enc.Zones = append(enc.Zones, zxingraster.TextZone{Text: addOn, Start: start, End: len(modules), AddOn: true})
	enc.AddOnStart = start
	return enc, nil
}

func encodeEAN13(contents string) (*zxingraster.Encoding, error) {
	contents, err := CheckUPCEANLength(contents, 12, 13)
	if err != nil {
		return nil, err
	}
	enc := &zxingraster.Encoding{
		Rows: singleRow(ean13Modules(contents), 3, 3),
		Text: contents,
		Zones: []zxingraster.TextZone{
			{Text: contents[:1], Start: -9, End: -2},
			{Text: contents[1:7], Start: 3, End: 45},
			{Text: contents[7:], Start: 50, End: 92},
		},
		Guards: [][2]int{{0, 3}, {45, 50}, {92, 95}},
	}
	return enc, nil
}

func ean13Modules(contents string) []bool {
	firstDigit := int(contents[0] - '0')
	parities := ean13FirstDigitEncodings[firstDigit]
	result := make([]bool, ean13CodeWidth)
	pos := 0

	pos += AppendPattern(result, pos, UPCEANStartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit], false)
	}

	pos += AppendPattern(result, pos, UPCEANMiddlePattern, false)

	for i := 7; i <= 12; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit], true)
	}

	AppendPattern(result, pos, UPCEANStartEndPattern, true)
	return result
}

// encodeUPCA writes UPC-A as EAN-13 with a leading zero. The outer digits
// sit in the quiet zones and the outer digit bars join the guards.
func encodeUPCA(contents string) (*zxingraster.Encoding, error) {
	if err := CheckNumeric(contents); err != nil {
		return nil, err
	}
	if len(contents) != 11 && len(contents) != 12 {
		return nil, fmt.Errorf("requested contents should be 11 or 12 digits long, but got %d", len(contents))
	}
	full, err := CheckUPCEANLength("0"+contents, 12, 13)
	if err != nil {
		return nil, err
	}
	digits := full[1:]
	return &zxingraster.Encoding{
		Rows: singleRow(ean13Modules(full), 3, 3),
		Text: digits,
		Zones: []zxingraster.TextZone{
			{Text: digits[:1], Start: -9, End: -2},
			{Text: digits[1:6], Start: 10, End: 45},
			{Text: digits[6:11], Start: 50, End: 85},
			{Text: digits[11:], Start: 97, End: 104},
		},
		Guards: [][2]int{{0, 10}, {45, 50}, {85, 95}},
	}, nil
}

func encodeEAN8(contents string) (*zxingraster.Encoding, error) {
	contents, err := CheckUPCEANLength(contents, 7, 8)
	if err != nil {
		return nil, err
	}

	result := make([]bool, ean8CodeWidth)
	pos := 0

	pos += AppendPattern(result, pos, UPCEANStartEndPattern, true)

	for i := 0; i <= 3; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit], false)
	}

	pos += AppendPattern(result, pos, UPCEANMiddlePattern, false)

	for i := 4; i <= 7; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit], true)
	}

	AppendPattern(result, pos, UPCEANStartEndPattern, true)
	return &zxingraster.Encoding{
		Rows: singleRow(result, 3, 3),
		Text: contents,
		Zones: []zxingraster.TextZone{
			{Text: contents[:4], Start: 3, End: 31},
			{Text: contents[4:], Start: 36, End: 64},
		},
		Guards: [][2]int{{0, 3}, {31, 36}, {64, 67}},
	}, nil
}

func encodeUPCE(contents string) (*zxingraster.Encoding, error) {
	if err := CheckNumeric(contents); err != nil {
		return nil, err
	}
	switch len(contents) {
	case 7:
		contents += string(rune('0' + GetStandardUPCEANChecksum(ConvertUPCEtoUPCA(contents))))
	case 8:
		if !CheckStandardUPCEANChecksum(ConvertUPCEtoUPCA(contents)) {
			return nil, fmt.Errorf("contents do not pass checksum")
		}
	default:
		return nil, fmt.Errorf("requested contents should be 7 or 8 digits long, but got %d", len(contents))
	}

	firstDigit := int(contents[0] - '0')
	if firstDigit != 0 && firstDigit != 1 {
		return nil, fmt.Errorf("number system must be 0 or 1")
	}

	checkDigit := int(contents[7] - '0')
	parities := upceNumSysAndCheckDigitPatterns[firstDigit][checkDigit]

	result := make([]bool, upceCodeWidth)
	pos := AppendPattern(result, 0, UPCEANStartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit], false)
	}

	AppendPattern(result, pos, UPCEANEndPattern, false)
	return &zxingraster.Encoding{
		Rows: singleRow(result, 3, 6),
		Text: contents,
		Zones: []zxingraster.TextZone{
			{Text: contents[:1], Start: -9, End: -2},
			{Text: contents[1:7], Start: 3, End: 45},
			{Text: contents[7:], Start: 53, End: 60},
		},
		Guards: [][2]int{{0, 3}, {45, 51}},
	}, nil
}

// EANAddOnEncoder encodes a standalone EAN-2 or EAN-5 add-on.
type EANAddOnEncoder struct{}

// NewEANAddOnEncoder creates a standalone add-on encoder.
func NewEANAddOnEncoder() *EANAddOnEncoder {
	return &EANAddOnEncoder{}
}

// Encode encodes up to five digits into one add-on row. One or two digits
// make an EAN-2, three to five an EAN-5, left padded with zeros.
func (e *EANAddOnEncoder) Encode(contents string) (*zxingraster.Encoding, error) {
	contents, err := padAddOn(contents)
	if err != nil {
		return nil, err
	}
	modules, err := encodeExtension(contents)
	if err != nil {
		return nil, err
	}
	return &zxingraster.Encoding{
		Rows: singleRow(modules, len(extensionStartPattern), 0),
		Text: contents,
	}, nil
}

// padAddOn left pads add-on digits to the EAN-2 or EAN-5 length.
func padAddOn(contents string) (string, error) {
	switch n := len(contents); {
	case n >= 1 && n <= 2:
		return strings.Repeat("0", 2-n) + contents, nil
	case n >= 3 && n <= 5:
		return strings.Repeat("0", 5-n) + contents, nil
	default:
		return "", fmt.Errorf("add-on should be 1 to 5 digits long, but got %d", n)
	}
}

// encodeExtension writes the supplemental digits. The parity of each digit
// encodes the EAN-2 value mod 4 or the EAN-5 checksum.
func encodeExtension(contents string) ([]bool, error) {
	if err := CheckNumeric(contents); err != nil {
		return nil, err
	}
	var parities int
	switch len(contents) {
	case 2:
		val, err := strconv.Atoi(contents)
		if err != nil {
			return nil, err
		}
		parities = (val % 4) << 3
	case 5:
		parities = checkDigitEncodings[ext5Checksum(contents)]
	default:
		return nil, fmt.Errorf("add-on should be 2 or 5 digits long, but got %d", len(contents))
	}

	n := len(contents)
	result := make([]bool, 4+7*n+2*(n-1))
	pos := AppendPattern(result, 0, extensionStartPattern, true)
	for i := 0; i < n; i++ {
		if i > 0 {
			pos += AppendPattern(result, pos, extensionSeparatorPattern, false)
		}
		digit := int(contents[i] - '0')
		// parities holds n significant bits, most significant first.
		if (parities>>(4-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit], false)
	}
	return result, nil
}

func ext5Checksum(s string) int {
	length := len(s)
	sum := 0
	for i := length - 2; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	for i := length - 1; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	return sum % 10
}
