package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/submersibletoaster/pixfont"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/examine"
)

// SheetOptions control SheetImage.
type SheetOptions struct {
	FaceSize int  // pixels per face edge
	Gap      int  // pixels between units
	Labels   bool // print each cube's 1-based number in its top-left face
}

// DefaultSheetOptions returns 12 px faces, 2 px gaps and no labels.
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{FaceSize: 12, Gap: 2}
}

var gapColor = color.RGBA{0x20, 0x20, 0x20, 0xff}

// SheetImage paints the display grid with a gap around every unit.
func SheetImage(res *mosaic.Result, o SheetOptions) *image.RGBA {
	if o.FaceSize < 1 {
		o.FaceSize = 1
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	rows := len(res.Grid)
	cols := 0
	if rows > 0 {
		cols = len(res.Grid[0])
	}
	unitsX, unitsY := cols/examine.UnitSize, rows/examine.UnitSize

	w := cols*o.FaceSize + (unitsX+1)*o.Gap
	h := rows*o.FaceSize + (unitsY+1)*o.Gap
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(gapColor), image.ZP, draw.Src)

	for y, row := range res.Grid {
		for x, hex := range row {
			r, g, b := hexRGB(hex)
			cell := faceRect(x, y, o)
			draw.Draw(out, cell, image.NewUniform(color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}), image.ZP, draw.Src)
		}
	}

	if o.Labels {
		n := 0
		for _, row := range res.DetailedGrid {
			for _, unit := range row {
				n++
				origin := faceRect(unit.Position.X*examine.UnitSize, unit.Position.Y*examine.UnitSize, o).Min
				label := fmt.Sprint(n)
				r, g, b := textOn(faceColor(unit.Faces[0][0]))
				pixfont.DrawString(out, origin.X+1, origin.Y+1, label, color.RGBA{uint8(r), uint8(g), uint8(b), 0xff})
			}
		}
	}
	return out
}

// faceRect is the pixel rectangle of display face x,y.
func faceRect(x, y int, o SheetOptions) image.Rectangle {
	px := x*o.FaceSize + (x/examine.UnitSize+1)*o.Gap
	py := y*o.FaceSize + (y/examine.UnitSize+1)*o.Gap
	return image.Rect(px, py, px+o.FaceSize, py+o.FaceSize)
}
