package mosaic

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/examine"
)

// Enhancement is the fixed perceptual boost applied after resizing.
type Enhancement struct {
	Contrast   float64 // multiplier, 1 leaves the image unchanged
	Saturation float64 // multiplier, 1 leaves the image unchanged

	// Unsharp mask
	SharpenRadius    float64
	SharpenPercent   float64
	SharpenThreshold int
}

// DefaultEnhancement returns the enhancement every mosaic uses.
func DefaultEnhancement() Enhancement {
	return Enhancement{
		Contrast:         1.2,
		Saturation:       1.3,
		SharpenRadius:    1,
		SharpenPercent:   110,
		SharpenThreshold: 1,
	}
}

// Enhance applies contrast, then saturation, then an unsharp mask.
func Enhance(src image.Image, e Enhancement) *image.RGBA {
	img := adjust.Contrast(src, e.Contrast-1)
	img = adjust.Saturation(img, e.Saturation-1)
	return unsharpMask(img, e.SharpenRadius, e.SharpenPercent, e.SharpenThreshold)
}

// unsharpMask adds percent% of the difference between src and its
// gaussian blur to every channel whose difference reaches threshold.
func unsharpMask(src *image.RGBA, radius, percent float64, threshold int) *image.RGBA {
	if radius <= 0 || percent == 0 {
		return src
	}
	blurred := blur.Gaussian(src, radius)
	b := src.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			so := src.PixOffset(x, y)
			bo := blurred.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := int(src.Pix[so+c])
				diff := v - int(blurred.Pix[bo+c])
				if diff >= threshold || -diff >= threshold {
					v += int(float64(diff) * percent / 100)
				}
				out.Pix[so+c] = clampByte(v)
			}
			out.Pix[so+3] = src.Pix[so+3]
		}
	}
	return out
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Prepare converts src to RGB, resizes it to exactly three pixels per
// unit face row and column, and enhances it.
func Prepare(src image.Image, width, height int, r Resampler, e Enhancement) (examine.Pixels, error) {
	if src == nil {
		return examine.Pixels{}, ErrNilImage
	}
	if width < 1 || height < 1 {
		return examine.Pixels{}, fmt.Errorf("%w: %dx%d units", ErrInvalidDimensions, width, height)
	}
	tw, th := width*examine.UnitSize, height*examine.UnitSize
	log.Debugf("Target resolution: %dx%d pixels", tw, th)

	rgb := examine.ToNRGBA(src)
	resized, err := r.Resize(rgb, tw, th)
	if err != nil {
		return examine.Pixels{}, err
	}
	px := examine.FromImage(Enhance(resized, e))
	if px.W != tw || px.H != th {
		return examine.Pixels{}, fmt.Errorf("%w: resampler %s produced %dx%d, want %dx%d",
			ErrPixelShape, r, px.W, px.H, tw, th)
	}
	return px, nil
}
