// Package oned encodes one-dimensional symbologies into module rows. The
// encoders register themselves with the root package so that
// Symbol.Encode can find them.
package oned

import (
	"fmt"

	"github.com/ericlevine/zxingraster"
)

// AppendPattern appends a pattern of bars/spaces to a boolean array.
// If startColor is true, the first element is a bar (black); otherwise space (white).
// Returns the total width appended.
func AppendPattern(target []bool, pos int, pattern []int, startColor bool) int {
	color := startColor
	numAdded := 0
	for _, p := range pattern {
		for j := 0; j < p; j++ {
			target[pos] = color
			pos++
		}
		numAdded += p
		color = !color
	}
	return numAdded
}

// CheckNumeric returns an error if s contains anything but ASCII digits.
func CheckNumeric(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("contents contain non-digit character: %c", s[i])
		}
	}
	return nil
}

// singleRow wraps one row of modules with flexible height.
func singleRow(modules []bool, start, stop int) []zxingraster.Row {
	return []zxingraster.Row{{Modules: modules, Start: start, Stop: stop}}
}
