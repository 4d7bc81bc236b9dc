// Package palette holds the six fixed cube sticker colours.
//
// The table is built once during package initialisation and only ever
// handed out by value, so concurrent readers need no locking.
package palette

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/submersibletoaster/mosaic/colorspace"
)

// Size is the number of palette entries.
const Size = 6

// Color is one palette entry.
type Color struct {
	Name  string // lower-case identifier, e.g. "red"
	Title string // display name used by renderers, e.g. "Red"
	RGB   color.RGBA
	Hex   string // "#RRGGBB", upper case
	Lab   colorspace.Lab
}

// Colorful returns the entry as a go-colorful value.
func (c Color) Colorful() colorful.Color {
	cc, _ := colorful.MakeColor(c.RGB)
	return cc
}

// iteration order is significant: ties in matching keep the earlier entry
var table = [Size]Color{
	newColor("white", "White", 255, 255, 255),
	newColor("yellow", "Yellow", 255, 213, 0),
	newColor("orange", "Orange", 255, 88, 0),
	newColor("red", "Red", 196, 30, 58),
	newColor("green", "Green", 0, 158, 96),
	newColor("blue", "Blue", 0, 81, 186),
}

func newColor(name, title string, r, g, b uint8) Color {
	rgb := color.RGBA{R: r, G: g, B: b, A: 0xff}
	lab, _ := colorspace.ToLab(float64(r), float64(g), float64(b))
	cc, _ := colorful.MakeColor(rgb)
	return Color{
		Name:  name,
		Title: title,
		RGB:   rgb,
		Hex:   strings.ToUpper(cc.Hex()),
		Lab:   lab,
	}
}

// All returns a copy of the palette in matching order.
func All() [Size]Color {
	return table
}

// Default is the entry used when matching cannot produce a result.
func Default() Color {
	return table[0]
}

// ByName looks up an entry by its identifier.
func ByName(name string) (Color, bool) {
	for _, c := range table {
		if c.Name == name {
			return c, true
		}
	}
	return Color{}, false
}

// ByHex looks up an entry by "#RRGGBB", ignoring case.
func ByHex(hex string) (Color, bool) {
	for _, c := range table {
		if strings.EqualFold(c.Hex, hex) {
			return c, true
		}
	}
	return Color{}, false
}

// Contains reports whether hex names a palette colour.
func Contains(hex string) bool {
	_, ok := ByHex(hex)
	return ok
}

// TitleFor returns the display name for hex, falling back to fallback and
// then to "Unknown".
func TitleFor(hex, fallback string) string {
	if c, ok := ByHex(hex); ok {
		return c.Title
	}
	if fallback != "" {
		return fallback
	}
	return "Unknown"
}

// Palette returns the entries as an image/color palette.
func Palette() color.Palette {
	p := make(color.Palette, 0, Size)
	for _, c := range table {
		p = append(p, c.RGB)
	}
	return p
}
