// Package bitutil holds the packed module grid shared by the compositor and
// the geometry resolver.
package bitutil

import (
	"strings"
)

// BitMatrix is a rows x columns grid of modules. x is the column, y is the
// row, and the origin is the top-left module. A matrix is filled once by
// whoever builds it and treated as read-only afterwards.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrixWithSize creates an empty matrix of the given width and height.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseBoolMatrix creates a matrix from rows of booleans. All rows must have
// the same length.
func ParseBoolMatrix(image [][]bool) *BitMatrix {
	height := len(image)
	if height == 0 {
		panic("bitmatrix: no rows")
	}
	width := len(image[0])
	bm := NewBitMatrixWithSize(width, height)
	for y, row := range image {
		if len(row) != width {
			panic("bitmatrix: row lengths do not match")
		}
		for x, on := range row {
			if on {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// ParseStringMatrix creates a matrix from a textual picture in which setStr
// marks a dark module and unsetStr a light one. Rows are separated by
// newlines; blank lines are ignored.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", ""), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for pos := 0; pos < len(line); {
			switch {
			case strings.HasPrefix(line[pos:], setStr):
				row = append(row, true)
				pos += len(setStr)
			case strings.HasPrefix(line[pos:], unsetStr):
				row = append(row, false)
				pos += len(unsetStr)
			default:
				panic("bitmatrix: illegal character encountered")
			}
		}
		rows = append(rows, row)
	}
	return ParseBoolMatrix(rows)
}

// Get returns true if the module at (x, y) is dark.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set marks the module at (x, y) dark.
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Paste copies every dark module of src into bm with src's origin at
// (left, top). src must fit inside bm.
func (bm *BitMatrix) Paste(src *BitMatrix, left, top int) {
	if left < 0 || top < 0 || left+src.width > bm.width || top+src.height > bm.height {
		panic("bitmatrix: pasted matrix must fit inside the target")
	}
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			if src.Get(x, y) {
				bm.Set(left+x, top+y)
			}
		}
	}
}

// Runs returns the [start, end) column ranges of consecutive dark modules in
// row y, left to right.
func (bm *BitMatrix) Runs(y int) [][2]int {
	var runs [][2]int
	start := -1
	for x := 0; x < bm.width; x++ {
		on := bm.Get(x, y)
		switch {
		case on && start < 0:
			start = x
		case !on && start >= 0:
			runs = append(runs, [2]int{start, x})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, bm.width})
	}
	return runs
}

// Width returns the number of columns.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the number of rows.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a picture using "1" for dark and "0" for light modules.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("1", "0")
}

// StringWithChars returns a picture using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals reports whether both matrices have the same size and modules.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
