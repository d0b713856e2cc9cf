package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/zxingraster/geometry"
)

func layer(composite bool, rows ...string) Layer {
	l := Layer{Composite: composite}
	for _, s := range rows {
		modules := make([]bool, len(s))
		for i, c := range s {
			modules[i] = c == '1'
		}
		l.Rows = append(l.Rows, Row{Modules: modules})
	}
	return l
}

var stackable = Policy{Stackable: true, Composite: true}

func TestMergeStacksInCallOrder(t *testing.T) {
	res, err := Merge([]Layer{layer(false, "1101"), layer(false, "111111", "100001")}, stackable)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{"011010", "111111", "100001", ""}, "\n"), res.Grid.String())
	assert.Equal(t, []int{1, 0}, res.Offsets)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, geometry.Row{Offset: 1, Width: 4}, res.Rows[0])
	assert.Equal(t, geometry.Row{Offset: 0, Width: 6}, res.Rows[1])
}

func TestMergeLeftAlign(t *testing.T) {
	policy := stackable
	policy.Align = geometry.AlignLeft
	res, err := Merge([]Layer{layer(false, "11"), layer(false, "1111")}, policy)
	require.NoError(t, err)
	assert.Equal(t, "1100\n1111\n", res.Grid.String())
	assert.Equal(t, []int{0, 0}, res.Offsets)
}

func TestMergeCompositeGoesFirst(t *testing.T) {
	res, err := Merge([]Layer{layer(false, "1010101"), layer(true, "111", "101")}, stackable)
	require.NoError(t, err)
	assert.Equal(t, "0011100\n0010100\n1010101\n", res.Grid.String())
	assert.True(t, res.Rows[0].Composite)
	assert.True(t, res.Rows[1].Composite)
	assert.False(t, res.Rows[2].Composite)
	assert.Equal(t, []int{0, 2}, res.Offsets)
}

func TestMergeCarriesRowMetadata(t *testing.T) {
	l := layer(false, "1101")
	l.Rows[0].Height, l.Rows[0].Start, l.Rows[0].Stop = 8, 2, 1
	res, err := Merge([]Layer{l}, Policy{})
	require.NoError(t, err)
	assert.Equal(t, geometry.Row{Height: 8, Start: 2, Stop: 1, Width: 4}, res.Rows[0])
}

func TestMergeRejects(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		policy Policy
		err    error
	}{
		{"no layers", nil, stackable, ErrEmpty},
		{"empty layer", []Layer{{}}, stackable, ErrEmpty},
		{"ragged rows", []Layer{layer(false, "101", "10")}, stackable, ErrUnsupported},
		{"stack not allowed", []Layer{layer(false, "1"), layer(false, "1")}, Policy{}, ErrUnsupported},
		{"composite not allowed", []Layer{layer(false, "1"), layer(true, "1")}, Policy{Stackable: true}, ErrUnsupported},
		{"two composites", []Layer{layer(true, "1"), layer(false, "1"), layer(true, "1")}, stackable, ErrUnsupported},
		{"composite alone", []Layer{layer(true, "1")}, stackable, ErrUnsupported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Merge(tc.layers, tc.policy)
			assert.ErrorIs(t, err, tc.err)
			assert.Nil(t, res)
		})
	}
}
