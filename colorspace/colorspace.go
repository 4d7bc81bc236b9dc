// Package colorspace converts 8-bit sRGB values into CIE L*a*b* (D65).
//
// Every intermediate value is clamped to its valid domain before and after
// each nonlinear step so out-of-range input never propagates. When a step
// still produces a non-finite value, ToLab returns a degraded fallback
// together with ErrNonFinite and leaves the decision to log to the caller.
package colorspace

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite reports that the conversion produced NaN or Inf and the
// returned Lab is the scaled RGB fallback.
var ErrNonFinite = errors.New("colorspace: non-finite value during conversion")

// Lab is a CIE L*a*b* triple. L is in [0,100], A and B in [-128,127].
type Lab struct {
	L, A, B float64
}

// D65 reference white
var whiteD65 = [3]float64{0.95047, 1.00000, 1.08883}

// linear sRGB -> XYZ. Shared read-only; MulVec does not mutate it.
var srgbToXYZ = mat.NewDense(3, 3, []float64{
	0.4124564, 0.3575761, 0.1804375,
	0.2126729, 0.7151522, 0.0721750,
	0.0193339, 0.1191920, 0.9503041,
})

const (
	gammaThreshold = 0.04045
	labEpsilon     = 0.008856
	labKappa       = 903.3
)

// ToLab converts r, g, b (nominally 0-255, clamped if not) to Lab.
func ToLab(r, g, b float64) (Lab, error) {
	norm := [3]float64{clamp(r/255, 0, 1), clamp(g/255, 0, 1), clamp(b/255, 0, 1)}
	if !finite(norm[:]...) {
		return Fallback(r, g, b), ErrNonFinite
	}

	lin := make([]float64, 3)
	for i, c := range norm {
		lin[i] = linearize(c)
	}

	var xyz mat.VecDense
	xyz.MulVec(srgbToXYZ, mat.NewVecDense(3, lin))

	var f [3]float64
	for i := range f {
		t := clamp(xyz.AtVec(i)/whiteD65[i], 0, 100)
		f[i] = compand(t)
	}
	if !finite(f[:]...) {
		return Fallback(r, g, b), ErrNonFinite
	}

	lab := Lab{
		L: clamp(116*f[1]-16, 0, 100),
		A: clamp(500*(f[0]-f[1]), -128, 127),
		B: clamp(200*(f[1]-f[2]), -128, 127),
	}
	if !finite(lab.L, lab.A, lab.B) {
		return Fallback(r, g, b), ErrNonFinite
	}
	return lab, nil
}

// Fallback is the degraded result of a failed conversion: the normalized
// RGB triple scaled by 100. NaN channels become 0.
func Fallback(r, g, b float64) Lab {
	return Lab{
		L: sanitize(clamp(r/255, 0, 1)) * 100,
		A: sanitize(clamp(g/255, 0, 1)) * 100,
		B: sanitize(clamp(b/255, 0, 1)) * 100,
	}
}

// DistanceSq is the squared Euclidean distance between two Lab values.
func (l Lab) DistanceSq(o Lab) float64 {
	dl := l.L - o.L
	da := l.A - o.A
	db := l.B - o.B
	return dl*dl + da*da + db*db
}

// Distance is the CIE76 colour difference.
func (l Lab) Distance(o Lab) float64 {
	return math.Sqrt(l.DistanceSq(o))
}

func linearize(c float64) float64 {
	c = clamp(c, 0, 1)
	if c > gammaThreshold {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func compand(t float64) float64 {
	t = clamp(t, 0, 100)
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
