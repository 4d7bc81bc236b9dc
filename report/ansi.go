package report

import (
	"fmt"
	"io"
	"sort"

	ansi "github.com/gookit/color"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/palette"
)

// WriteANSI prints the display grid as 24-bit coloured blocks, two
// columns per face so faces look square.
func WriteANSI(w io.Writer, grid mosaic.DisplayGrid) error {
	for _, row := range grid {
		for _, hex := range row {
			if _, err := io.WriteString(w, toANSI(hex).Sprint("  ")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\033[0m\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the per-colour face counts in palette order,
// followed by cube and face totals.
func WriteSummary(w io.Writer, res *mosaic.Result) error {
	hexes := make([]string, 0, len(res.ColorCount))
	for hex := range res.ColorCount {
		hexes = append(hexes, hex)
	}
	order := map[string]int{}
	for i, c := range palette.All() {
		order[c.Hex] = i
	}
	sort.Slice(hexes, func(i, j int) bool {
		return order[hexes[i]] < order[hexes[j]]
	})

	for _, hex := range hexes {
		swatch := toANSI(hex).Sprint("  ")
		if _, err := fmt.Fprintf(w, "%s %-7s %d faces\n", swatch, palette.TitleFor(hex, ""), res.ColorCount[hex]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total Cubes: %d\nTotal Faces: %d\n", res.Dimensions.Total, res.Dimensions.TotalFaces)
	return err
}

func toANSI(hex string) *ansi.RGBStyle {
	r, g, b := hexRGB(hex)
	fg := ansi.RGB(0, 0, 0)
	bg := ansi.RGB(uint8(r), uint8(g), uint8(b), true)
	return ansi.NewRGBStyle(fg, bg)
}
