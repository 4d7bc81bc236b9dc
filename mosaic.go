// Package mosaic turns a raster image into a grid of 3x3 cube faces drawn
// from the six sticker colours in package palette.
//
// The pipeline is Prepare (resize and enhance to 3 pixels per face row
// and column), BuildGrid (match every face, count colours, pick each
// unit's dominant colour) and ExpandDisplay (flatten to a face raster).
// Generator runs all three and returns a complete Result or an error.
package mosaic

import (
	"errors"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrInvalidDimensions reports a unit grid narrower or shorter than one unit.
	ErrInvalidDimensions = errors.New("invalid unit grid dimensions")
	// ErrTooLarge reports a unit grid above Options.MaxUnits on either side.
	ErrTooLarge = errors.New("unit grid too large")
	// ErrNilImage reports a missing source image.
	ErrNilImage = errors.New("no source image")
)

// DefaultUnits is the width and height used when a caller gives none.
const DefaultUnits = 16

// Options configures a Generator.
type Options struct {
	// Resampling filter used to shrink the source. Empty means Lanczos.
	Resampler Resampler
	// Enhancement applied after resizing.
	Enhance Enhancement
	// Largest accepted width or height in units. Zero means unbounded.
	MaxUnits int
	// Optional per-row progress callback.
	Progress ProgressFunc
}

// DefaultOptions returns Lanczos resampling, the fixed enhancement and a
// 128 unit bound.
func DefaultOptions() Options {
	return Options{
		Resampler: Lanczos,
		Enhance:   DefaultEnhancement(),
		MaxUnits:  128,
	}
}

// Generator produces mosaics. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator returns a Generator using opts. Start from DefaultOptions.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Options returns the generator's configuration.
func (g *Generator) Options() Options {
	return g.opts
}

// Validate checks a requested unit grid against the generator's bounds.
func (g *Generator) Validate(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d units", ErrInvalidDimensions, width, height)
	}
	if m := g.opts.MaxUnits; m > 0 && (width > m || height > m) {
		return fmt.Errorf("%w: %dx%d units, limit %d", ErrTooLarge, width, height, m)
	}
	return nil
}

// Generate builds the mosaic of img on a width x height unit grid.
func (g *Generator) Generate(img image.Image, width, height int) (*Result, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := g.Validate(width, height); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"width": width, "height": height, "resampler": g.opts.Resampler}).
		Debug("Starting mosaic generation")

	px, err := Prepare(img, width, height, g.opts.Resampler, g.opts.Enhance)
	if err != nil {
		return nil, fmt.Errorf("preparing image: %w", err)
	}
	grid, err := BuildGrid(px, width, height, g.opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	res := &Result{
		Grid:         ExpandDisplay(grid.Detailed, width, height),
		DetailedGrid: grid.Detailed,
		ColorCount:   grid.Counts,
		Dimensions:   grid.Dimensions,
		DominantGrid: grid.Dominant,
	}
	log.WithFields(log.Fields{"colors": len(res.ColorCount), "faces": res.Dimensions.TotalFaces}).
		Debug("Mosaic complete")
	return res, nil
}

// Generate runs a Generator with DefaultOptions.
func Generate(img image.Image, width, height int) (*Result, error) {
	return NewGenerator(DefaultOptions()).Generate(img, width, height)
}
