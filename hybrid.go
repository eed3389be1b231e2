package levelset

import (
	"math"

	"github.com/shikarl/levelset/raster"
)

// hybridField is the local-region speed field. It holds no cross-
// iteration statistics: every query recomputes local means inside a
// square window around the point, per spec 4.2.2.
type hybridField struct {
	noStats
	img    *raster.Image
	radius int
}

// newHybridField optionally applies the intensity pre-filter
// I -> I / sqrt(1 + (I/c)^2) once at construction when cutoff > 0, then
// stores the (possibly filtered) image for use at query time.
func newHybridField(img *raster.Image, mask *raster.Mask, p Params) (*hybridField, error) {
	radius := p.NeighbourhoodRadius
	if radius < 1 {
		return nil, &ConfigurationError{Msg: "hybrid neighbourhoodRadius must be >= 1"}
	}
	working := img
	if p.CutoffIntensity > 0 {
		working = prefilter(img, p.CutoffIntensity)
	}
	return &hybridField{img: working, radius: radius}, nil
}

// prefilter returns a new image with each pixel replaced by
// I / sqrt(1 + (I/c)^2), truncated to an integer.
func prefilter(img *raster.Image, c int) *raster.Image {
	w, h := img.Width(), img.Height()
	out := raster.NewImage(w, h)
	fc := float64(c)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := float64(img.At(x, y))
			v := i / math.Sqrt(1+(i/fc)*(i/fc))
			out.Set(x, y, int(v))
		}
	}
	return out
}

// computeSign partitions the window [x-r, x+r) x [y-r, y+r), clipped to
// the image, by the sign of phi (< 0 inside, >= 0 outside), derives local
// means, and applies the Chan-Vese formula to those local means. If
// either partition is empty, sign 0 is returned rather than dividing by
// zero -- a deliberate deviation from the unguarded reference, per the
// spec's open question on this exact case.
func (f *hybridField) computeSign(phi *grid, p Point) int8 {
	r := f.radius
	x0, x1 := clip(p.X-r, 0, phi.w), clip(p.X+r, 0, phi.w)
	y0, y1 := clip(p.Y-r, 0, phi.h), clip(p.Y+r, 0, phi.h)

	var ain, aout, tin, tout int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v := f.img.At(x, y)
			if phi.get(Point{x, y}) < 0 {
				ain++
				tin += v
			} else {
				aout++
				tout += v
			}
		}
	}
	if ain == 0 || aout == 0 {
		return 0
	}
	muIn := float64(tin) / float64(ain)
	muOut := float64(tout) / float64(aout)
	i := float64(f.img.At(p.X, p.Y))
	s := (muIn - muOut) * (-2*i + muIn + muOut)
	return -signum(s)
}

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
