package symfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/zxingraster"
)

const stackedSource = `
# two row stack with inset separators
symbology CODE_16K
stack {
    row "10100000000101" height 10 start 3 stop 3
    row "1.1........1.1" height 10 start 3 stop 3 // same row
    text "HI"
}
`

func TestBuildStacked(t *testing.T) {
	f, err := Parse(strings.NewReader(stackedSource), "stacked.sym")
	require.NoError(t, err)
	assert.Equal(t, "CODE_16K", f.Symbology)
	require.Len(t, f.Statements, 1)

	s, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, zxingraster.Code16K, s.Symbology)
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 14, s.Width())
	assert.Equal(t, 10.0, s.RowHeight(1))
	assert.True(t, s.Module(1, 2))
	assert.False(t, s.Module(1, 1))

	s.Output |= zxingraster.BufferIntermediate
	require.NoError(t, s.Buffer(0))
	// 10 module quiet zone on the left, 1 on the right.
	assert.Equal(t, 50, s.BitmapWidth)
	assert.Equal(t, 60, s.BitmapHeight)
	assert.Equal(t, "HI", s.Text)

	dark := func(x, y int) bool { return s.Bitmap[y*s.BitmapWidth+x] == '1' }
	// Separator between the start and stop characters only.
	assert.True(t, dark(30, 21))
	assert.True(t, dark(30, 22))
	assert.False(t, dark(30, 20))
	assert.False(t, dark(30, 23))
	assert.False(t, dark(22, 21))
	assert.False(t, dark(2, 21))
	// Bind border top and bottom.
	assert.True(t, dark(2, 0))
	assert.True(t, dark(2, 59))
}

func TestBuildEncodeAndComposite(t *testing.T) {
	f, err := ParseString("composite.sym", `
symbology code-128
height 30
encode "1234567890"
composite { row "1111" row "1001" }
`)
	require.NoError(t, err)
	s, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.Height)
	assert.Equal(t, 2, s.Layers())
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 90, s.Width())
	// Composite centred over the 90 module row.
	assert.True(t, s.Module(0, 43))
	assert.False(t, s.Module(1, 44))
}

func TestLayerEncoding(t *testing.T) {
	f, err := ParseString("zones.sym", `
symbology EAN_13
stack {
    row "X.X" start 1 stop 1
    zone "5" -9 -2
    zone "12" 102 122 addon
    guard 0 3
    addon-start 102
}
`)
	require.NoError(t, err)
	enc, err := f.Statements[0].Stack.encoding()
	require.NoError(t, err)
	assert.Equal(t, []zxingraster.Row{{Modules: []bool{true, false, true}, Start: 1, Stop: 1}}, enc.Rows)
	assert.Equal(t, []zxingraster.TextZone{
		{Text: "5", Start: -9, End: -2},
		{Text: "12", Start: 102, End: 122, AddOn: true},
	}, enc.Zones)
	assert.Equal(t, [][2]int{{0, 3}}, enc.Guards)
	assert.Equal(t, 102, enc.AddOnStart)
}

func TestStringEscapes(t *testing.T) {
	f, err := ParseString("text.sym", "symbology CODE_16K stack { row \"1\" text \"caf\u00e9 \\\"x\\\"\" }")
	require.NoError(t, err)
	enc, err := f.Statements[0].Stack.encoding()
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9 \"x\"", enc.Text)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"missing symbology": `stack { row "1" }`,
		"unclosed layer":    `symbology CODE_16K stack { row "1"`,
		"unknown statement": `symbology CODE_16K scale 2`,
		"bad number":        `symbology CODE_16K height tall`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString("bad.sym", src)
			assert.Error(t, err)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown symbology", `symbology MAXICODE`, zxingraster.ErrConfiguration},
		{"no encoder", `symbology QR_CODE encode "HELLO"`, zxingraster.ErrConfiguration},
		{"invalid contents", `symbology EAN_13 encode "ABC"`, zxingraster.ErrConfiguration},
		{"bad module", `symbology QR_CODE stack { row "10Z" }`, ErrModules},
		{"ragged rows", `symbology QR_CODE stack { row "10" row "1" }`, zxingraster.ErrConfiguration},
		{"composite unsupported", `symbology CODE_39 encode "A" composite { row "1" }`, zxingraster.ErrConfiguration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseString("build.sym", tc.src)
			require.NoError(t, err)
			_, err = f.Build()
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "build.sym:")
		})
	}
}
