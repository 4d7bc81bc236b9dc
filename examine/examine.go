package examine

import (
	"image"
	"image/color"

	log "github.com/sirupsen/logrus"
)

// UnitSize is the edge length, in pixels, of one unit cel.
const UnitSize = 3

// Pixels - row-major RGB array, three 0-255 channels per pixel
type Pixels struct {
	W, H int
	Pix  []uint8 // len = W*H*3
}

// NewPixels allocates a black w x h array.
func NewPixels(w, h int) Pixels {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Pixels{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// FromImage copies src into a fresh Pixels array. Any colour model is
// accepted; alpha is dropped without compositing.
func FromImage(src image.Image) Pixels {
	b := src.Bounds()
	rgb := ToNRGBA(src)
	p := NewPixels(b.Dx(), b.Dy())
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			c := rgb.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			off := p.offset(x, y)
			p.Pix[off] = c.R
			p.Pix[off+1] = c.G
			p.Pix[off+2] = c.B
		}
	}
	return p
}

// ToNRGBA converts src to an opaque NRGBA image with the same bounds,
// keeping the straight colour of translucent pixels.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

func (p Pixels) offset(x, y int) int {
	return (y*p.W + x) * 3
}

// At returns the channels of the pixel at x,y.
func (p Pixels) At(x, y int) (r, g, b uint8) {
	off := p.offset(x, y)
	return p.Pix[off], p.Pix[off+1], p.Pix[off+2]
}

// Set stores the channels of the pixel at x,y.
func (p Pixels) Set(x, y int, r, g, b uint8) {
	off := p.offset(x, y)
	p.Pix[off], p.Pix[off+1], p.Pix[off+2] = r, g, b
}

// Image returns the array as an opaque RGBA image.
func (p Pixels) Image() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			r, g, b := p.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return out
}

// Cel - one UnitSize x UnitSize block of a Pixels array
type Cel struct {
	Pix     [UnitSize][UnitSize][3]uint8 // [row][column][channel]
	Origin  image.Rectangle              // pixel rectangle the block was cut from
	CharPos image.Point                  // unit column and row
}

// ImageToCels - slice src into width x height unit cels in row-major
// order. src must hold at least width*UnitSize x height*UnitSize pixels;
// anything to the right or below is ignored. A zero size yields no cels.
func ImageToCels(src Pixels, width, height int) []*Cel {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]*Cel, 0, width*height)
	for uy := 0; uy < height; uy++ {
		for ux := 0; ux < width; ux++ {
			x0, y0 := ux*UnitSize, uy*UnitSize
			cel := &Cel{
				Origin:  image.Rect(x0, y0, x0+UnitSize, y0+UnitSize),
				CharPos: image.Point{ux, uy},
			}
			for fy := 0; fy < UnitSize; fy++ {
				for fx := 0; fx < UnitSize; fx++ {
					r, g, b := src.At(x0+fx, y0+fy)
					cel.Pix[fy][fx] = [3]uint8{r, g, b}
				}
			}
			out = append(out, cel)
		}
	}
	log.Debugf("ImageToCels: %d cels from %dx%d pixels", len(out), src.W, src.H)
	return out
}
