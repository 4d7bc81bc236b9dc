// Package report renders a finished mosaic for people to build from: a
// printable PDF guide, a PNG sheet and a terminal preview.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/palette"
)

// Settings are the unit grid size the user asked for.
type Settings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const (
	pageMargin = 15.0 // mm
	maxCellPt  = 8.0
	ptPerMM    = 72.0 / 25.4

	// instructions: 3 columns by 4 rows of cubes per page
	cubesPerRow  = 3
	cubesPerPage = 12
	cubeBlockW   = 62.0
	cubeBlockH   = 40.0
	faceCellW    = 18.0
	faceCellH    = 8.0

	// room kept below the mosaic for the specification lines
	specBlockHeight = 40.0
)

// WritePDF writes the build guide for res to w: the mosaic with its
// specification, then a 3x3 colour table for every cube.
func WritePDF(w io.Writer, res *mosaic.Result, s Settings) error {
	if res == nil {
		res = &mosaic.Result{}
	}
	if s.Width <= 0 {
		s.Width = orDefault(res.Dimensions.Width)
	}
	if s.Height <= 0 {
		s.Height = orDefault(res.Dimensions.Height)
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Your Rubik's Cube Mosaic", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	drawMosaic(pdf, res.Grid)
	pdf.Ln(6)
	writeSpecification(pdf, res.Dimensions, s)

	pdf.AddPage()
	writeInstructions(pdf, res.DetailedGrid)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	log.Debugf("PDF guide written for %dx%d cubes", s.Width, s.Height)
	return nil
}

func orDefault(v int) int {
	if v <= 0 {
		return mosaic.DefaultUnits
	}
	return v
}

func drawMosaic(pdf *gofpdf.Fpdf, grid mosaic.DisplayGrid) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No mosaic data available", "", 1, "L", false, 0, "")
		return
	}
	pageW, pageH := pdf.GetPageSize()
	y0 := pdf.GetY()
	avail := pageW - 2*pageMargin
	availH := pageH - pageMargin - y0 - specBlockHeight
	cell := math.Min(avail/float64(len(grid[0])), maxCellPt/ptPerMM)
	cell = math.Min(cell, availH/float64(len(grid)))

	x0 := pageMargin + (avail-cell*float64(len(grid[0])))/2
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5 / ptPerMM)
	for y, row := range grid {
		for x, hex := range row {
			r, g, b := hexRGB(hex)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(x0+float64(x)*cell, y0+float64(y)*cell, cell, cell, "FD")
		}
	}
	pdf.SetY(y0 + cell*float64(len(grid)))
}

func writeSpecification(pdf *gofpdf.Fpdf, d mosaic.Dimensions, s Settings) {
	total := d.Total
	if total == 0 {
		total = s.Width * s.Height
	}
	na := func(v int) string {
		if v == 0 {
			return "N/A"
		}
		return fmt.Sprint(v)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Mosaic Specifications:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("- Cube Grid: %dx%d cubes", s.Width, s.Height),
		fmt.Sprintf("- Total Cubes: %d", total),
		fmt.Sprintf("- Total Faces: %s", na(d.TotalFaces)),
		fmt.Sprintf("- Display Resolution: %sx%s pixels", na(d.DisplayWidth), na(d.DisplayHeight)),
	} {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
}

func writeInstructions(pdf *gofpdf.Fpdf, detailed mosaic.DetailedGrid) {
	if len(detailed) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No detailed cube data available", "", 1, "L", false, 0, "")
		return
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Detailed Cube Instructions", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	top := pdf.GetY()
	n := 0
	for rowIdx, row := range detailed {
		for colIdx, unit := range row {
			slot := n % cubesPerPage
			if n > 0 && slot == 0 {
				pdf.AddPage()
				top = pdf.GetY()
			}
			n++
			x := pageMargin + float64(slot%cubesPerRow)*cubeBlockW
			y := top + float64(slot/cubesPerRow)*cubeBlockH

			pdf.SetXY(x, y)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(cubeBlockW, 7, fmt.Sprintf("Cube %d (Row %d, Col %d)", n, rowIdx+1, colIdx+1), "", 0, "L", false, 0, "")
			writeFaces(pdf, unit, x, y+8)
		}
	}
	log.Debugf("Added instructions for %d cubes", n)
}

// writeFaces draws the 3x3 name table of unit with its top-left at x,y.
func writeFaces(pdf *gofpdf.Fpdf, unit mosaic.Unit, x, y float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1 / ptPerMM)
	for fy, row := range unit.Faces {
		pdf.SetXY(x, y+float64(fy)*faceCellH)
		for _, face := range row {
			c := faceColor(face)
			r, g, b := c.RGB255()
			pdf.SetFillColor(int(r), int(g), int(b))
			pdf.SetTextColor(textOn(c))
			pdf.CellFormat(faceCellW, faceCellH, palette.TitleFor(face.Color, face.Name), "1", 0, "CM", true, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// faceColor parses a face's hex, treating an unreadable one as white.
func faceColor(f mosaic.Face) colorful.Color {
	c, err := colorful.Hex(f.Color)
	if err != nil {
		return palette.Default().Colorful()
	}
	return c
}

func hexRGB(hex string) (int, int, int) {
	r, g, b := faceColor(mosaic.Face{Color: hex}).RGB255()
	return int(r), int(g), int(b)
}

// textOn picks black or white text for legibility on c.
func textOn(c colorful.Color) (int, int, int) {
	l, _, _ := c.Lab()
	if l < 0.55 {
		return 255, 255, 255
	}
	return 0, 0, 0
}
