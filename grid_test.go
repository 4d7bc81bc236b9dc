package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/mosaic/examine"
	"github.com/submersibletoaster/mosaic/match"
	"github.com/submersibletoaster/mosaic/palette"
)

func fillPixels(p examine.Pixels, x0, y0, w, h int, r, g, b uint8) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			p.Set(x, y, r, g, b)
		}
	}
}

func TestBuildGridUniformRed(t *testing.T) {
	px := examine.NewPixels(3, 3)
	fillPixels(px, 0, 0, 3, 3, 196, 30, 58)

	g, err := BuildGrid(px, 1, 1, nil)
	require.NoError(t, err)
	require.Len(t, g.Detailed, 1)
	require.Len(t, g.Detailed[0], 1)

	unit := g.Detailed[0][0]
	assert.Equal(t, Position{X: 0, Y: 0}, unit.Position)
	for _, row := range unit.Faces {
		for _, f := range row {
			assert.Equal(t, Face{Color: "#C41E3A", Name: "red"}, f)
		}
	}
	assert.Equal(t, "#C41E3A", unit.Dominant)
	assert.Equal(t, ColorCount{"#C41E3A": 9}, g.Counts)
	assert.Equal(t, Dimensions{
		Width: 1, Height: 1, DisplayWidth: 3, DisplayHeight: 3,
		Total: 1, TotalFaces: 9, PixelResolution: "3x3",
	}, g.Dimensions)
	assert.Equal(t, [][]string{{"#C41E3A"}}, g.Dominant)
}

func TestBuildGridCheckerboard(t *testing.T) {
	px := examine.NewPixels(6, 6)
	fillPixels(px, 0, 0, 3, 3, 255, 255, 255)
	fillPixels(px, 3, 3, 3, 3, 255, 255, 255)
	// the other two blocks stay black

	black := match.Closest(0, 0, 0).Color.Hex
	for run := 0; run < 3; run++ {
		g, err := BuildGrid(px, 2, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, "#FFFFFF", g.Detailed[0][0].Dominant)
		assert.Equal(t, "#FFFFFF", g.Detailed[1][1].Dominant)
		assert.Equal(t, black, g.Detailed[0][1].Dominant)
		assert.Equal(t, black, g.Detailed[1][0].Dominant)
		assert.Equal(t, ColorCount{"#FFFFFF": 18, black: 18}, g.Counts)
	}
}

func TestBuildGridPositionsAndOrder(t *testing.T) {
	all := palette.All()
	px := examine.NewPixels(9, 6)
	for uy := 0; uy < 2; uy++ {
		for ux := 0; ux < 3; ux++ {
			c := all[uy*3+ux].RGB
			fillPixels(px, ux*3, uy*3, 3, 3, c.R, c.G, c.B)
		}
	}

	g, err := BuildGrid(px, 3, 2, nil)
	require.NoError(t, err)
	require.Len(t, g.Detailed, 2)
	for y, row := range g.Detailed {
		require.Len(t, row, 3)
		for x, unit := range row {
			assert.Equal(t, Position{X: x, Y: y}, unit.Position)
			assert.Equal(t, all[y*3+x].Hex, unit.Dominant)
			assert.Equal(t, all[y*3+x].Name, unit.Faces[2][2].Name)
		}
	}
	assert.Equal(t, 54, g.Counts.Total())
}

func TestBuildGridZero(t *testing.T) {
	g, err := BuildGrid(examine.NewPixels(0, 0), 0, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Detailed)
	assert.Equal(t, 0, g.Counts.Total())
	assert.Equal(t, 0, g.Dimensions.TotalFaces)
	assert.Empty(t, ExpandDisplay(g.Detailed, 0, 0))
}

func TestBuildGridShape(t *testing.T) {
	_, err := BuildGrid(examine.NewPixels(6, 5), 2, 2, nil)
	assert.ErrorIs(t, err, ErrPixelShape)

	_, err = BuildGrid(examine.NewPixels(0, 0), -1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBuildGridProgress(t *testing.T) {
	var calls [][2]int
	_, err := BuildGrid(examine.NewPixels(6, 9), 2, 3, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestDominantTieFirstToReachMax(t *testing.T) {
	f := func(c string) Face { return Face{Color: c} }
	faces := [3][3]Face{
		{f("A"), f("B"), f("B")},
		{f("A"), f("C"), f("C")},
		{f("D"), f("E"), f("F")},
	}
	// A, B and C all reach 2; B gets there first at the third face
	assert.Equal(t, "B", dominant(faces))

	faces[2][2] = f("C")
	assert.Equal(t, "C", dominant(faces))
}

func TestBuildGridDominantTie(t *testing.T) {
	px := examine.NewPixels(3, 3)
	for i, c := range [][3]uint8{
		{196, 30, 58}, {0, 81, 186}, {0, 81, 186},
		{196, 30, 58}, {255, 255, 255}, {255, 255, 255},
		{255, 213, 0}, {255, 88, 0}, {0, 158, 96},
	} {
		px.Set(i%3, i/3, c[0], c[1], c[2])
	}

	g, err := BuildGrid(px, 1, 1, nil)
	require.NoError(t, err)
	// red, blue and white tie at 2; blue reaches 2 first
	assert.Equal(t, "#0051BA", g.Detailed[0][0].Dominant)
	assert.Equal(t, [][]string{{"#0051BA"}}, g.Dominant)
}
