package mosaic

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/examine"
	"github.com/submersibletoaster/mosaic/match"
)

// ErrPixelShape reports a pixel array whose size is not exactly three
// pixels per unit in each direction.
var ErrPixelShape = errors.New("pixel array does not match unit grid")

// ProgressFunc is told how many unit rows of total are finished.
type ProgressFunc func(done, total int)

// Grid is the structured half of a Result.
type Grid struct {
	Detailed   DetailedGrid
	Counts     ColorCount
	Dimensions Dimensions
	Dominant   [][]string
}

// BuildGrid matches every face of a width x height unit grid cut from px.
// px must be exactly width*3 by height*3. Zero sizes yield empty grids.
func BuildGrid(px examine.Pixels, width, height int, progress ProgressFunc) (Grid, error) {
	if width < 0 || height < 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d units", ErrInvalidDimensions, width, height)
	}
	if px.W != width*examine.UnitSize || px.H != height*examine.UnitSize {
		return Grid{}, fmt.Errorf("%w: %dx%d pixels for %dx%d units", ErrPixelShape, px.W, px.H, width, height)
	}

	g := Grid{
		Detailed:   make(DetailedGrid, 0, height),
		Counts:     ColorCount{},
		Dimensions: NewDimensions(width, height),
		Dominant:   make([][]string, 0, height),
	}
	if width == 0 || height == 0 {
		return g, nil
	}

	var row []Unit
	var domRow []string
	for _, cel := range examine.ImageToCels(px, width, height) {
		unit := Unit{Position: Position{X: cel.CharPos.X, Y: cel.CharPos.Y}}
		for fy := range cel.Pix {
			for fx, p := range cel.Pix[fy] {
				m := match.Closest(int(p[0]), int(p[1]), int(p[2]))
				unit.Faces[fy][fx] = Face{Color: m.Color.Hex, Name: m.Color.Name}
				g.Counts[m.Color.Hex]++
			}
		}
		unit.Dominant = dominant(unit.Faces)
		row = append(row, unit)
		domRow = append(domRow, unit.Dominant)

		if cel.CharPos.X == width-1 {
			g.Detailed = append(g.Detailed, row)
			g.Dominant = append(g.Dominant, domRow)
			row, domRow = nil, nil

			done := cel.CharPos.Y + 1
			if done%10 == 0 || done == height {
				log.Debugf("Processed %d/%d rows", done, height)
			}
			if progress != nil {
				progress(done, height)
			}
		}
	}
	return g, nil
}

// dominant is the most frequent colour among the faces. On a tie the
// colour that reaches the winning count first, scanning faces in
// row-major order, wins.
func dominant(faces [examine.UnitSize][examine.UnitSize]Face) string {
	counts := make(map[string]int, examine.UnitSize*examine.UnitSize)
	best, bestN := "", 0
	for _, row := range faces {
		for _, f := range row {
			counts[f.Color]++
			if counts[f.Color] > bestN {
				best, bestN = f.Color, counts[f.Color]
			}
		}
	}
	return best
}
