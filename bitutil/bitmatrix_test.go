package bitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrixWithSize(40, 3)
	bm.Set(3, 1)
	bm.Set(35, 2)
	assert.True(t, bm.Get(3, 1))
	assert.True(t, bm.Get(35, 2))
	assert.False(t, bm.Get(1, 3%3))
	assert.Equal(t, 40, bm.Width())
	assert.Equal(t, 3, bm.Height())
}

func TestBitMatrixInvalidSize(t *testing.T) {
	assert.Panics(t, func() { NewBitMatrixWithSize(0, 4) })
}

func TestParseStringMatrix(t *testing.T) {
	bm := ParseStringMatrix("X X\n XX\n\n", "X", " ")
	require.Equal(t, 3, bm.Width())
	require.Equal(t, 2, bm.Height())
	assert.Equal(t, "101\n011\n", bm.String())
}

func TestParseStringMatrixRagged(t *testing.T) {
	assert.Panics(t, func() { ParseStringMatrix("10\n1\n", "1", "0") })
	assert.Panics(t, func() { ParseStringMatrix("12\n", "1", "0") })
}

func TestBitMatrixRuns(t *testing.T) {
	bm := ParseStringMatrix("1100111010\n0000000000\n", "1", "0")
	assert.Equal(t, [][2]int{{0, 2}, {4, 7}, {8, 9}}, bm.Runs(0))
	assert.Empty(t, bm.Runs(1))

	tail := ParseStringMatrix("0011\n", "1", "0")
	assert.Equal(t, [][2]int{{2, 4}}, tail.Runs(0))
}

func TestBitMatrixPaste(t *testing.T) {
	dst := NewBitMatrixWithSize(6, 3)
	src := ParseStringMatrix("11\n01\n", "1", "0")
	dst.Paste(src, 3, 1)
	assert.Equal(t, "000000\n000110\n000010\n", dst.String())
	assert.Panics(t, func() { dst.Paste(src, 5, 0) })
}

func TestBitMatrixCloneEquals(t *testing.T) {
	bm := NewBitMatrixWithSize(8, 8)
	bm.Set(1, 1)
	clone := bm.Clone()
	assert.True(t, bm.Equals(clone))
	clone.Set(2, 2)
	assert.False(t, bm.Get(2, 2), "modifying clone should not affect original")
	assert.False(t, bm.Equals(clone))
	assert.False(t, bm.Equals(NewBitMatrixWithSize(8, 7)))
}
