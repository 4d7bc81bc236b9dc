// Package match finds the palette colour nearest to a pixel in Lab space.
package match

import (
	"image/color"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/colorspace"
	"github.com/submersibletoaster/mosaic/palette"
)

// Match - scored match of a palette colour against a pixel
type Match struct {
	Score float64       // Score - squared Lab distance, zero for an exact palette colour
	Color palette.Color // Color - the matched palette entry
}

// Results - Sortable slice of Match
type Results []Match

func (r Results) Swap(i, j int) {
	r[j], r[i] = r[i], r[j]
}
func (r Results) Less(i, j int) bool {
	return r[i].Score < r[j].Score
}
func (r Results) Len() int {
	return len(r)
}

// Closest returns the palette entry nearest to r,g,b. Components are
// clamped to 0-255 first. The palette is scanned in order with a strict
// less-than, so ties keep the earlier entry.
func Closest(r, g, b int) Match {
	lab := pixelLab(r, g, b)

	best := -1
	bestScore := math.Inf(1)
	all := palette.All()
	for i, c := range all {
		d := lab.DistanceSq(c.Lab)
		if d < bestScore {
			bestScore = d
			best = i
		}
	}
	if best < 0 {
		log.WithFields(log.Fields{"r": r, "g": g, "b": b}).Warn("no palette distance could be computed, using default")
		return Match{Score: math.Inf(1), Color: palette.Default()}
	}
	return Match{Score: bestScore, Color: all[best]}
}

// ClosestColor is Closest for an image/color value. Alpha is ignored.
func ClosestColor(c color.Color) Match {
	r, g, b := rgb8(c)
	return Closest(r, g, b)
}

// Query - every palette entry ranked by distance to r,g,b, nearest first.
// Equal scores stay in palette order, so Query(...)[0] == Closest(...).
func Query(r, g, b int) Results {
	lab := pixelLab(r, g, b)
	all := palette.All()
	out := make(Results, 0, len(all))
	for _, c := range all {
		out = append(out, Match{Score: lab.DistanceSq(c.Lab), Color: c})
	}
	sort.Stable(out)
	return out
}

func pixelLab(r, g, b int) colorspace.Lab {
	r, g, b = clamp8(r), clamp8(g), clamp8(b)
	lab, err := colorspace.ToLab(float64(r), float64(g), float64(b))
	if err != nil {
		log.WithFields(log.Fields{"r": r, "g": g, "b": b}).WithError(err).Warn("lab conversion fell back to scaled rgb")
	}
	return lab
}

func rgb8(c color.Color) (int, int, int) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B)
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
