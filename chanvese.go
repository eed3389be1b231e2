package levelset

import "github.com/shikarl/levelset/raster"

// chanVeseField is the global region-based speed field. It maintains
// incremental inside/outside pixel counts and intensity sums, recomputing
// its derived mean sum/difference only when applyPendingUpdates drains the
// switch queues accumulated during a speed sub-iteration.
type chanVeseField struct {
	img       *raster.Image
	ain, aout int     // pixel counts
	tin, tout int     // intensity sums
	sum, diff float64 // mu_in + mu_out, mu_in - mu_out

	in2out, out2in []Point
}

// newChanVeseField traverses mask once to seed Ain, Aout, Tin, Tout, per
// spec 4.2.1. An all-foreground or all-background mask leaves one of the
// counts at zero, which is reported as a DomainError before the engine is
// ever constructed.
func newChanVeseField(img *raster.Image, mask *raster.Mask) (*chanVeseField, error) {
	f := &chanVeseField{img: img}
	w, h := img.Width(), img.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := img.At(x, y)
			if mask.At(x, y) {
				f.ain++
				f.tin += v
			} else {
				f.aout++
				f.tout += v
			}
		}
	}
	if f.ain == 0 || f.aout == 0 {
		return nil, &DomainError{Msg: "chan-vese requires a non-empty, non-full initialization mask"}
	}
	f.recompute()
	return f, nil
}

func (f *chanVeseField) recompute() {
	muIn := float64(f.tin) / float64(f.ain)
	muOut := float64(f.tout) / float64(f.aout)
	f.sum = muIn + muOut
	f.diff = muIn - muOut
}

// computeSign implements s = (mu_in - mu_out)*(-2*I(x,y) + mu_in + mu_out),
// engine sign = -signum(s).
func (f *chanVeseField) computeSign(phi *grid, p Point) int8 {
	i := float64(f.img.At(p.X, p.Y))
	return -signum(f.diff * (-2*i + f.sum))
}

func (f *chanVeseField) requiresUpdate() bool {
	return len(f.in2out) > 0 || len(f.out2in) > 0
}

func (f *chanVeseField) notifySwitchIn(img *raster.Image, p Point) {
	f.out2in = append(f.out2in, p)
}

func (f *chanVeseField) notifySwitchOut(img *raster.Image, p Point) {
	f.in2out = append(f.in2out, p)
}

// applyPendingUpdates drains both queues exactly once, adjusting area and
// intensity-sum counters by each point's original-image intensity, then
// recomputes the derived sum/difference. Per spec 4.2.1 this runs at most
// once per speed sub-iteration prelude.
func (f *chanVeseField) applyPendingUpdates(img *raster.Image) {
	for _, p := range f.out2in {
		v := img.At(p.X, p.Y)
		f.aout--
		f.tout -= v
		f.ain++
		f.tin += v
	}
	for _, p := range f.in2out {
		v := img.At(p.X, p.Y)
		f.ain--
		f.tin -= v
		f.aout++
		f.tout += v
	}
	f.out2in = f.out2in[:0]
	f.in2out = f.in2out[:0]
	f.recompute()
}

// recomputeFromScratch rebuilds Ain/Aout/Tin/Tout by re-partitioning the
// image using the current sign of phi, independent of the incremental
// queues. Used by tests to verify the round-trip property in spec 8
// ("Chan-Vese statistics after applyPendingUpdates equal those recomputed
// from scratch").
func recomputeFromScratch(img *raster.Image, phi *grid) (ain, aout, tin, tout int) {
	for y := 0; y < phi.h; y++ {
		for x := 0; x < phi.w; x++ {
			v := img.At(x, y)
			if phi.get(Point{x, y}) < 0 {
				ain++
				tin += v
			} else {
				aout++
				tout += v
			}
		}
	}
	return
}
