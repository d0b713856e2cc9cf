// Package compose merges the layers accumulated on a symbol into one module
// grid: stacked encode calls in call order, with an optional 2D composite
// layer on top.
package compose

import (
	"errors"
	"fmt"

	"github.com/ericlevine/zxingraster/bitutil"
	"github.com/ericlevine/zxingraster/geometry"
)

var (
	ErrUnsupported = errors.New("compose: unsupported layer combination")
	ErrEmpty       = errors.New("compose: empty layer")
)

// Row is one row of modules as handed over by an encoder.
type Row struct {
	Modules []bool
	// Height in modules, 0 for a flexible row.
	Height float64
	Start  int
	Stop   int
}

// Layer is the output of one encode call.
type Layer struct {
	Rows      []Row
	Composite bool
}

// Width returns the module width of the layer.
func (l Layer) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0].Modules)
}

// Policy states what the target symbology accepts.
type Policy struct {
	Stackable bool
	Composite bool
	Align     geometry.Align
}

// Result is the merged grid plus its row metadata. Offsets holds the column
// offset of every input layer, indexed like the input.
type Result struct {
	Grid    *bitutil.BitMatrix
	Rows    []geometry.Row
	Offsets []int
}

// Merge validates the layers against the policy and lays them out.
func Merge(layers []Layer, policy Policy) (*Result, error) {
	if len(layers) == 0 {
		return nil, ErrEmpty
	}
	composite := -1
	var linear []int
	width, height := 0, 0
	for i, l := range layers {
		if err := check(l); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if l.Composite {
			if !policy.Composite {
				return nil, fmt.Errorf("composite layer not supported: %w", ErrUnsupported)
			}
			if composite >= 0 {
				return nil, fmt.Errorf("more than one composite layer: %w", ErrUnsupported)
			}
			composite = i
		} else {
			linear = append(linear, i)
		}
		width = max(width, l.Width())
		height += len(l.Rows)
	}
	if len(linear) == 0 {
		return nil, fmt.Errorf("composite layer without a linear layer: %w", ErrUnsupported)
	}
	if len(linear) > 1 && !policy.Stackable {
		return nil, fmt.Errorf("stacking not supported: %w", ErrUnsupported)
	}

	order := linear
	if composite >= 0 {
		order = append([]int{composite}, linear...)
	}
	res := &Result{
		Grid:    bitutil.NewBitMatrixWithSize(width, height),
		Rows:    make([]geometry.Row, 0, height),
		Offsets: make([]int, len(layers)),
	}
	y := 0
	for _, i := range order {
		l := layers[i]
		offset := 0
		if policy.Align == geometry.AlignCentre {
			offset = (width - l.Width()) / 2
		}
		res.Offsets[i] = offset
		modules := make([][]bool, len(l.Rows))
		for r, row := range l.Rows {
			modules[r] = row.Modules
			res.Rows = append(res.Rows, geometry.Row{
				Height:    row.Height,
				Start:     row.Start,
				Stop:      row.Stop,
				Composite: l.Composite,
				Offset:    offset,
				Width:     l.Width(),
			})
		}
		res.Grid.Paste(bitutil.ParseBoolMatrix(modules), offset, y)
		y += len(l.Rows)
	}
	return res, nil
}

func check(l Layer) error {
	w := l.Width()
	if w == 0 {
		return ErrEmpty
	}
	for r, row := range l.Rows {
		if len(row.Modules) != w {
			return fmt.Errorf("row %d has %d modules, want %d: %w", r, len(row.Modules), w, ErrUnsupported)
		}
	}
	return nil
}
