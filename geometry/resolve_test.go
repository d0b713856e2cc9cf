package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/zxingraster/bitutil"
	"github.com/ericlevine/zxingraster/hrt"
)

var linear = Profile{Class: Linear, Stackable: true, DefaultHeight: 50}

func grid(t *testing.T, repr string) *bitutil.BitMatrix {
	t.Helper()
	return bitutil.ParseStringMatrix(repr, "1", "0")
}

func rowsFor(bm *bitutil.BitMatrix) []Row {
	rows := make([]Row, bm.Height())
	for i := range rows {
		rows[i] = Row{Width: bm.Width()}
	}
	return rows
}

func rectsOf(plan *Plan, kind Kind) []Rect {
	var out []Rect
	for _, r := range plan.Rects {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func TestResolveSingleRow(t *testing.T) {
	bm := grid(t, "11010010000\n")
	plan, err := Resolve(Input{Grid: bm, Rows: rowsFor(bm), Profile: linear})
	require.NoError(t, err)
	assert.Equal(t, 22.0, plan.Width)
	assert.Equal(t, 100.0, plan.Height)
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, W: 4, H: 100},
		{X: 6, Y: 0, W: 2, H: 100},
		{X: 12, Y: 0, W: 2, H: 100},
	}, plan.Rects)
	assert.Empty(t, plan.Text)
	assert.Zero(t, plan.TextArea.H)
}

func TestResolveTextBand(t *testing.T) {
	bm := grid(t, "11010010000\n")
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: linear, Text: "A"}
	in.ShowText = true

	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 116.0, plan.Height)
	assert.Equal(t, Rect{X: 0, Y: 100, W: 22, H: 16}, plan.TextArea)
	require.Len(t, plan.Text, 1)
	assert.Equal(t, hrt.Band{Text: "A", X: 0, Y: 100, Width: 22, Min: 0, Max: 22}, plan.Text[0])

	in.Font = hrt.Small
	plan, err = Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 112.0, plan.Height)

	in.ShowText = false
	plan, err = Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 100.0, plan.Height)

	// A quiet zone taller than the text band already reserves its space.
	in.VWhitespace = 10
	plan, err = Resolve(in)
	require.NoError(t, err)
	hidden := plan.Height
	in.ShowText = true
	plan, err = Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, hidden, plan.Height)
}

func TestResolveBorders(t *testing.T) {
	bm := grid(t, "11010010000\n")
	tests := []struct {
		name   string
		style  BorderStyle
		width  float64
		height float64
		rects  int
	}{
		{"none", BorderNone, 22, 116, 0},
		{"bind", BorderBind, 22, 124, 2},
		{"box", BorderBox, 30, 124, 4},
		{"bind-top", BorderBindTop, 22, 120, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := Input{Grid: bm, Rows: rowsFor(bm), Profile: linear, Text: "A"}
			in.ShowText = true
			in.Style = tc.style
			in.BorderWidth = 2
			plan, err := Resolve(in)
			require.NoError(t, err)
			assert.Equal(t, tc.width, plan.Width)
			assert.Equal(t, tc.height, plan.Height)
			assert.Len(t, rectsOf(plan, KindBorder), tc.rects)
		})
	}
}

func TestResolveBoxPositions(t *testing.T) {
	bm := grid(t, "11010010000\n")
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: linear}
	in.Style = BorderBox
	in.BorderWidth = 1
	in.Whitespace = 3
	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 2+6+22+6+2.0, plan.Width)
	assert.Equal(t, 104.0, plan.Height)
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, W: 38, H: 2, Kind: KindBorder},
		{X: 0, Y: 102, W: 38, H: 2, Kind: KindBorder},
		{X: 0, Y: 0, W: 2, H: 104, Kind: KindBorder},
		{X: 36, Y: 0, W: 2, H: 104, Kind: KindBorder},
	}, rectsOf(plan, KindBorder))
	assert.Equal(t, 8.0, rectsOf(plan, KindModule)[0].X)
	assert.Equal(t, 2.0, rectsOf(plan, KindModule)[0].Y)
}

func TestResolveBearer(t *testing.T) {
	bm := grid(t, "1010\n")
	prof := Profile{Class: Linear, Bearer: true, Quiet: Quiet{Left: 10, Right: 10}, DefaultHeight: 50}
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: prof, Text: "1"}
	in.ShowText = true
	in.Style = BorderBox
	in.BorderWidth = 5
	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 10+20+8+20+10.0, plan.Width)
	assert.Equal(t, 136.0, plan.Height)
	borders := rectsOf(plan, KindBorder)
	require.Len(t, borders, 4)
	assert.Equal(t, Rect{X: 0, Y: 110, W: plan.Width, H: 10, Kind: KindBorder}, borders[1])
	assert.Equal(t, 120.0, borders[2].H, "box sides end at the bottom bearer")
	assert.Equal(t, 120.0, plan.Text[0].Y)
	assert.Equal(t, 10.0, plan.Text[0].Min)
}

func TestResolveStackSeparator(t *testing.T) {
	bm := grid(t, "11011\n11011\n")
	tests := []struct {
		sep   int
		wantY float64
		wantH float64
	}{
		{0, 49, 2},
		{1, 49, 2},
		{2, 48, 4},
		{9, 46, 8},
		{-1, 0, 0},
	}
	for _, tc := range tests {
		in := Input{Grid: bm, Rows: rowsFor(bm), Profile: linear}
		in.Style = BorderBind
		in.SeparatorHeight = tc.sep
		plan, err := Resolve(in)
		require.NoError(t, err)
		seps := rectsOf(plan, KindSeparator)
		if tc.wantH == 0 {
			assert.Empty(t, seps, "separator %d", tc.sep)
			continue
		}
		require.Len(t, seps, 1, "separator %d", tc.sep)
		assert.Equal(t, Rect{X: 0, Y: tc.wantY, W: 10, H: tc.wantH, Kind: KindSeparator}, seps[0])
		assert.Equal(t, 100.0, plan.Height)
	}

	// No bind, no separator.
	plan, err := Resolve(Input{Grid: bm, Rows: rowsFor(bm), Profile: linear})
	require.NoError(t, err)
	assert.Empty(t, rectsOf(plan, KindSeparator))
}

func TestResolveInsetSeparators(t *testing.T) {
	bm := grid(t, "1101011\n1101011\n1101011\n")
	prof := Profile{Class: Stacked, InsetSeparators: true}
	rows := rowsFor(bm)
	for i := range rows {
		rows[i].Height = 10
		rows[i].Start, rows[i].Stop = 2, 1
	}
	in := Input{Grid: bm, Rows: rows, Profile: prof}
	in.Style = BorderBind
	in.BorderWidth = 1
	plan, err := Resolve(in)
	require.NoError(t, err)
	seps := rectsOf(plan, KindSeparator)
	require.Len(t, seps, 2)
	assert.Equal(t, Rect{X: 4, Y: 21, W: 8, H: 2, Kind: KindSeparator}, seps[0])
	assert.Equal(t, Rect{X: 4, Y: 41, W: 8, H: 2, Kind: KindSeparator}, seps[1])
	assert.Equal(t, 64.0, plan.Height)
}

func TestResolveMatrixHasNoSeparators(t *testing.T) {
	bm := grid(t, "101\n010\n101\n")
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: Profile{Class: Matrix}}
	in.Style = BorderBind
	in.BorderWidth = 1
	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.Empty(t, rectsOf(plan, KindSeparator))
	assert.Equal(t, 3.0, plan.Width)
	assert.Equal(t, 7.0, plan.Height)
}

func TestResolveMatrixBorderThickness(t *testing.T) {
	bm := grid(t, "101\n010\n101\n")
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: Profile{Class: Matrix}}
	in.Style = BorderBox
	in.BorderWidth = 3
	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, 15.0, plan.Width)
	assert.Equal(t, 15.0, plan.Height)
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, W: 15, H: 6, Kind: KindBorder},
		{X: 0, Y: 9, W: 15, H: 6, Kind: KindBorder},
		{X: 0, Y: 0, W: 6, H: 15, Kind: KindBorder},
		{X: 9, Y: 0, W: 6, H: 15, Kind: KindBorder},
	}, rectsOf(plan, KindBorder))
	assert.Equal(t, 6.0, rectsOf(plan, KindModule)[0].X)
	assert.Equal(t, 6.0, rectsOf(plan, KindModule)[0].Y)
}

func TestResolveDotty(t *testing.T) {
	bm := grid(t, "110\n011\n")
	in := Input{Grid: bm, Rows: rowsFor(bm), Profile: Profile{Class: Matrix, DottyEligible: true}}
	in.Dotty = true
	plan, err := Resolve(in)
	require.NoError(t, err)
	assert.True(t, plan.Dotty)
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 1, Y: 0, W: 1, H: 1},
		{X: 1, Y: 1, W: 1, H: 1},
		{X: 2, Y: 1, W: 1, H: 1},
	}, plan.Rects)
}

func TestResolveGuardsAndAddOn(t *testing.T) {
	bm := grid(t, "1010001000101101\n")
	prof := Profile{Class: Linear, UPCEAN: true, DefaultHeight: 50}
	in := Input{
		Grid:       bm,
		Rows:       rowsFor(bm),
		Profile:    prof,
		Zones:      []Zone{{Text: "12", Start: 0, End: 10}, {Text: "5", Start: 12, End: 16, AddOn: true}},
		Guards:     [][2]int{{0, 3}},
		AddOnStart: 12,
	}
	in.ShowText = true
	plan, err := Resolve(in)
	require.NoError(t, err)

	assert.Equal(t, []Rect{
		{X: 0, Y: 100, W: 2, H: 10, Kind: KindGuard},
		{X: 4, Y: 100, W: 2, H: 10, Kind: KindGuard},
	}, rectsOf(plan, KindGuard))

	modules := rectsOf(plan, KindModule)
	require.Len(t, modules, 6)
	assert.Equal(t, Rect{X: 20, Y: 0, W: 2, H: 100}, modules[3])
	assert.Equal(t, Rect{X: 24, Y: 16, W: 4, H: 94}, modules[4])
	assert.Equal(t, Rect{X: 30, Y: 16, W: 2, H: 94}, modules[5])

	require.Len(t, plan.Text, 2)
	assert.Equal(t, 100.0, plan.Text[0].Y)
	assert.Equal(t, 0.0, plan.Text[1].Y)
	assert.Equal(t, 24.0, plan.Text[1].X)

	// Hiding the text keeps the guards and the add-on drop.
	shown := plan.Rects
	in.ShowText = false
	plan, err = Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, shown, plan.Rects)
	assert.Equal(t, 110.0, plan.Height)
	assert.Empty(t, plan.Text)
}

func TestResolveComposite(t *testing.T) {
	bm := grid(t, "0111100\n1101011\n")
	rows := []Row{
		{Composite: true, Offset: 1, Width: 4},
		{Start: 2, Stop: 1, Width: 7},
	}
	plan, err := Resolve(Input{Grid: bm, Rows: rows, Profile: linear})
	require.NoError(t, err)
	assert.Equal(t, 100.0, plan.Height)
	seps := rectsOf(plan, KindSeparator)
	require.Len(t, seps, 1)
	assert.Equal(t, Rect{X: 4, Y: 4, W: 8, H: 2, Kind: KindSeparator}, seps[0])
	modules := rectsOf(plan, KindModule)
	assert.Equal(t, Rect{X: 2, Y: 0, W: 8, H: 4}, modules[0])
	assert.Equal(t, 6.0, modules[1].Y)
	assert.Equal(t, 94.0, modules[1].H)
}

func TestResolveRowMismatch(t *testing.T) {
	bm := grid(t, "101\n")
	_, err := Resolve(Input{Grid: bm, Rows: nil, Profile: linear})
	assert.ErrorIs(t, err, ErrRows)
	_, err = Resolve(Input{Profile: linear})
	assert.ErrorIs(t, err, ErrRows)
}

func TestSeparatorModules(t *testing.T) {
	for in, want := range map[int]int{-3: 0, 0: 1, 1: 1, 3: 3, 4: 4, 5: 4, 100: 4} {
		assert.Equal(t, want, SeparatorModules(in), "input %d", in)
	}
}

func TestClassPitch(t *testing.T) {
	assert.Equal(t, 2.0, Linear.Pitch())
	assert.Equal(t, 2.0, Stacked.Pitch())
	assert.Equal(t, 1.0, Matrix.Pitch())
}
