package mosaic

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// ErrResampler reports an unknown or unsuitable resampling filter.
var ErrResampler = errors.New("unsupported resampler")

// Resampler names the filter used to shrink the source image. Every
// filter averages over an area. Nearest-neighbour is not offered.
type Resampler string

const (
	Lanczos    Resampler = "lanczos"    // bild
	Box        Resampler = "box"        // imaging, area averaging
	Lanczos3   Resampler = "lanczos3"   // nfnt/resize
	Mitchell   Resampler = "mitchell"   // nfnt/resize
	CatmullRom Resampler = "catmullrom" // x/image/draw
)

// Resamplers lists every supported filter.
var Resamplers = []Resampler{Lanczos, Box, Lanczos3, Mitchell, CatmullRom}

// ParseResampler accepts a filter name, ignoring case. Empty means Lanczos.
func ParseResampler(s string) (Resampler, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Lanczos, nil
	}
	for _, r := range Resamplers {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrResampler, s)
}

// Resize scales img to exactly w x h.
func (r Resampler) Resize(img image.Image, w, h int) (image.Image, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrInvalidDimensions, w, h)
	}
	switch r {
	case Lanczos, "":
		return transform.Resize(img, w, h, transform.Lanczos), nil
	case Box:
		return imaging.Resize(img, w, h, imaging.Box), nil
	case Lanczos3:
		return resize.Resize(uint(w), uint(h), img, resize.Lanczos3), nil
	case Mitchell:
		return resize.Resize(uint(w), uint(h), img, resize.MitchellNetravali), nil
	case CatmullRom:
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		return dst, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrResampler, string(r))
}

func (r Resampler) String() string {
	if r == "" {
		return string(Lanczos)
	}
	return string(r)
}
