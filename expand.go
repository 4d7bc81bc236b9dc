package mosaic

import (
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/examine"
)

// ExpandDisplay flattens detailed into the raster face view: for each unit
// row, sub-row 0 across every unit column, then sub-row 1, then sub-row 2.
// It satisfies
//
//	display[y*3+fy][x*3+fx] == detailed[y][x].Faces[fy][fx].Color
func ExpandDisplay(detailed DetailedGrid, width, height int) DisplayGrid {
	if width <= 0 || height <= 0 {
		return DisplayGrid{}
	}
	out := make(DisplayGrid, 0, height*examine.UnitSize)
	for y := 0; y < height; y++ {
		for fy := 0; fy < examine.UnitSize; fy++ {
			line := make([]string, 0, width*examine.UnitSize)
			for x := 0; x < width; x++ {
				faces := detailed[y][x].Faces
				for fx := 0; fx < examine.UnitSize; fx++ {
					line = append(line, faces[fy][fx].Color)
				}
			}
			out = append(out, line)
		}
	}
	log.Debugf("Created display grid: %dx%d faces", width*examine.UnitSize, len(out))
	return out
}
