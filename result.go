package mosaic

import (
	"fmt"

	"github.com/submersibletoaster/mosaic/examine"
)

// Face is one matched sub-cell of a unit.
type Face struct {
	Color string `json:"color"` // palette hex, "#RRGGBB" upper case
	Name  string `json:"name"`
}

// Position is a unit's column and row in the unit grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Unit is one cube: nine faces in row-major order.
type Unit struct {
	Faces    [examine.UnitSize][examine.UnitSize]Face `json:"faces"`
	Position Position                                 `json:"position"`
	Dominant string                                   `json:"dominant"`
}

// DetailedGrid holds height rows of width units.
type DetailedGrid [][]Unit

// DisplayGrid is the flattened face view, height*3 rows of width*3 hex strings.
type DisplayGrid [][]string

// ColorCount maps a palette hex to the number of faces using it.
type ColorCount map[string]int

// Total sums every count.
func (c ColorCount) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Dimensions summarises the size of a mosaic.
type Dimensions struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	DisplayWidth    int    `json:"display_width"`
	DisplayHeight   int    `json:"display_height"`
	Total           int    `json:"total"`
	TotalFaces      int    `json:"total_faces"`
	PixelResolution string `json:"pixel_resolution"`
}

// NewDimensions derives every field from the unit grid size.
func NewDimensions(width, height int) Dimensions {
	return Dimensions{
		Width:           width,
		Height:          height,
		DisplayWidth:    width * examine.UnitSize,
		DisplayHeight:   height * examine.UnitSize,
		Total:           width * height,
		TotalFaces:      width * height * examine.UnitSize * examine.UnitSize,
		PixelResolution: fmt.Sprintf("%dx%d", width*examine.UnitSize, height*examine.UnitSize),
	}
}

// Result is the complete output for one image.
type Result struct {
	Grid         DisplayGrid  `json:"grid"`
	DetailedGrid DetailedGrid `json:"detailed_grid"`
	ColorCount   ColorCount   `json:"colorCount"`
	Dimensions   Dimensions   `json:"dimensions"`
	DominantGrid [][]string   `json:"dominant_grid"`
}
