// Package levelset implements a discrete, integer-only level-set curve
// evolution engine for 2D grayscale image segmentation (Shi & Karl,
// 2005/2008). It owns the phi grid, the inside/outside boundary lists,
// and the Gaussian smoothing kernel, and drives them with a pluggable
// speed field.
package levelset

import (
	"sync/atomic"

	"github.com/shikarl/levelset/raster"
)

// Engine runs a single segmentation. It is not reentrant: construct a
// fresh Engine and a fresh SpeedField per image slice.
type Engine struct {
	params Params
	img    *raster.Image
	w, h   int

	phi   *grid
	speed *grid

	lin, lout       *pointList
	addLin, addLout pendingBuffer

	kernel *gaussianKernel
	field  SpeedField

	progressObservers []ProgressObserver
	boundaryObservers []BoundaryObserver

	canceled  int32
	finished  bool
	converged bool
}

// NewEngine constructs an engine over img using mask as the initial
// inside/outside partition and field as the speed field driving
// evolution. It seeds phi and the boundary lists and, if smoothing is
// enabled, builds the Gaussian kernel.
func NewEngine(p Params, img *raster.Image, mask *raster.Mask, field SpeedField) (*Engine, error) {
	if img == nil || mask == nil || field == nil {
		return nil, &ConfigurationError{Msg: "image, mask, and speed field must be non-nil"}
	}
	if err := raster.Validate(img, mask); err != nil {
		return nil, &ConfigurationError{Msg: err.Error()}
	}

	w, h := img.Width(), img.Height()
	e := &Engine{
		params: p,
		img:    img,
		w:      w,
		h:      h,
		phi:    newGrid(w, h, 0),
		speed:  newGrid(w, h, 0),
		lin:    newPointList(),
		lout:   newPointList(),
		field:  field,
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pt := Point{x, y}
			if mask.At(x, y) {
				e.addLin.add(pt)
				e.phi.set(pt, phiInnerBoundary)
			} else {
				e.addLout.add(pt)
				e.phi.set(pt, phiOuterBoundary)
			}
		}
	}
	e.addLin.splice(e.lin)
	e.addLout.splice(e.lout)
	e.cleanLin()
	e.cleanLout()

	if p.SmoothIterations > 0 {
		k, err := newGaussianKernel(p.GaussWidth, p.GaussSigma)
		if err != nil {
			return nil, err
		}
		e.kernel = k
	}

	return e, nil
}

// AddProgressObserver registers o to be called after every outer
// iteration completes. Must be called before Run.
func (e *Engine) AddProgressObserver(o ProgressObserver) {
	e.progressObservers = append(e.progressObservers, o)
}

// AddBoundaryObserver registers o to be called after every outer
// iteration completes. Must be called before Run.
func (e *Engine) AddBoundaryObserver(o BoundaryObserver) {
	e.boundaryObservers = append(e.boundaryObservers, o)
}

// Cancel requests that Run stop at the next cooperative cancellation
// point. Safe to call from a goroutine other than the one running Run.
func (e *Engine) Cancel() {
	atomic.StoreInt32(&e.canceled, 1)
}

func (e *Engine) canceledRequested() bool {
	return atomic.LoadInt32(&e.canceled) != 0
}

// Run evolves the boundary for up to params.MaxIterations outer
// iterations. It returns true on normal completion (segmentation output
// may be read) and false if cancellation was requested (the output must
// not be read).
func (e *Engine) Run() bool {
	maxIts := e.params.MaxIterations
	for nIts := 0; nIts < maxIts; nIts++ {
		e.converged = false

		for nSpeedIts := 0; nSpeedIts < e.params.SpeedIterations; nSpeedIts++ {
			if e.field.requiresUpdate() {
				e.field.applyPendingUpdates(e.img)
			}
			e.speedSweep()
			if e.params.DebugChecks {
				e.checkConsistency()
			}

			converged := e.checkConvergence()
			breakInner := nIts == 0
			if nIts != 0 && converged {
				e.converged = true
				breakInner = true
			}

			if e.canceledRequested() {
				return false
			}
			if breakInner {
				break
			}
		}

		for nSmoothIts := 0; nSmoothIts < e.params.SmoothIterations; nSmoothIts++ {
			e.smoothSweep()
			if e.params.DebugChecks {
				e.checkConsistency()
			}
			if e.canceledRequested() {
				return false
			}
		}

		e.notifyObservers(float64(nIts+1) / float64(maxIts))

		if e.converged {
			break
		}
	}
	e.finished = true
	return true
}

func (e *Engine) notifyObservers(fraction float64) {
	for _, o := range e.progressObservers {
		o(fraction)
	}
	if len(e.boundaryObservers) > 0 {
		lin := e.lin.points()
		lout := e.lout.points()
		for _, o := range e.boundaryObservers {
			o(lin, lout)
		}
	}
}

// IsInside reports whether (x, y) currently lies on the inside of the
// boundary (phi < 0). Valid at any point after construction, including
// mid-run from an observer callback; it is a read-only query and does
// not affect engine state.
func (e *Engine) IsInside(x, y int) bool {
	return e.phi.get(Point{x, y}) < 0
}

// Segmentation returns the binary foreground/background raster derived
// from phi (foreground iff phi < 0). It is only valid to call after Run
// has returned true.
func (e *Engine) Segmentation() (*raster.Mask, error) {
	if !e.finished {
		return nil, &ConfigurationError{Msg: "segmentation is not available: run did not complete"}
	}
	m := raster.NewMask(e.w, e.h)
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			m.Set(x, y, e.phi.get(Point{x, y}) < 0)
		}
	}
	return m, nil
}

// ---- sweeps ----

// speedSweep implements spec 4.3.1.
func (e *Engine) speedSweep() {
	for r := e.lout.first; r != nil; {
		next := r.next
		p := r.p
		sign := e.field.computeSign(e.phi, p)
		e.speed.set(p, sign)
		if sign > 0 {
			e.switchIn(r, e.lout)
		}
		r = next
	}
	e.addLin.splice(e.lin)
	e.addLout.splice(e.lout)
	e.cleanLin()

	for r := e.lin.first; r != nil; {
		next := r.next
		p := r.p
		sign := e.field.computeSign(e.phi, p)
		e.speed.set(p, sign)
		if sign < 0 {
			e.switchOut(r, e.lin)
		}
		r = next
	}
	e.addLin.splice(e.lin)
	e.addLout.splice(e.lout)
	e.cleanLout()
}

// smoothSweep implements spec 4.3.2.
func (e *Engine) smoothSweep() {
	for r := e.lout.first; r != nil; {
		next := r.next
		p := r.p
		if e.kernel.convolve(e.phi, p) > e.kernel.threshold {
			e.switchIn(r, e.lout)
		}
		r = next
	}
	e.addLin.splice(e.lin)
	e.addLout.splice(e.lout)
	e.cleanLin()

	for r := e.lin.first; r != nil; {
		next := r.next
		p := r.p
		if e.kernel.convolve(e.phi, p) < e.kernel.threshold {
			e.switchOut(r, e.lin)
		}
		r = next
	}
	e.addLin.splice(e.lin)
	e.addLout.splice(e.lout)
	e.cleanLout()
}

// ---- switch / clean, spec 4.3.3 ----

// switchIn moves p, currently the point behind r in lout, into the
// foreground. r must belong to lout.
func (e *Engine) switchIn(r *pointRef, lout *pointList) {
	p := r.p
	e.field.notifySwitchIn(e.img, p)
	e.addLin.add(p)
	e.phi.set(p, phiInnerBoundary)
	e.speed.set(p, speedContract)

	var buf [4]Point
	n := neighbors(p, e.w, e.h, &buf)
	for i := 0; i < n; i++ {
		q := buf[i]
		if e.phi.get(q) == phiOutside {
			e.addLout.add(q)
			e.phi.set(q, phiOuterBoundary)
			e.speed.set(q, speedExpand)
		}
	}
	lout.delete(r)
}

// switchOut moves p, currently the point behind r in lin, into the
// background. r must belong to lin.
func (e *Engine) switchOut(r *pointRef, lin *pointList) {
	p := r.p
	e.field.notifySwitchOut(e.img, p)
	e.addLout.add(p)
	e.phi.set(p, phiOuterBoundary)
	e.speed.set(p, speedExpand)

	var buf [4]Point
	n := neighbors(p, e.w, e.h, &buf)
	for i := 0; i < n; i++ {
		q := buf[i]
		if e.phi.get(q) == phiInside {
			e.addLin.add(q)
			e.phi.set(q, phiInnerBoundary)
			e.speed.set(q, speedContract)
		}
	}
	lin.delete(r)
}

// cleanLin removes every Lin point whose 4-neighbors are all <= 0,
// setting phi to strictly inside.
func (e *Engine) cleanLin() {
	var buf [4]Point
	for r := e.lin.first; r != nil; {
		next := r.next
		p := r.p
		n := neighbors(p, e.w, e.h, &buf)
		clean := true
		for i := 0; i < n; i++ {
			if e.phi.get(buf[i]) > 0 {
				clean = false
				break
			}
		}
		if clean {
			e.lin.delete(r)
			e.phi.set(p, phiInside)
		}
		r = next
	}
}

// cleanLout removes every Lout point whose 4-neighbors are all >= 0,
// setting phi to strictly outside.
func (e *Engine) cleanLout() {
	var buf [4]Point
	for r := e.lout.first; r != nil; {
		next := r.next
		p := r.p
		n := neighbors(p, e.w, e.h, &buf)
		clean := true
		for i := 0; i < n; i++ {
			if e.phi.get(buf[i]) < 0 {
				clean = false
				break
			}
		}
		if clean {
			e.lout.delete(r)
			e.phi.set(p, phiOutside)
		}
		r = next
	}
}

// checkConvergence implements spec 4.3.4.
func (e *Engine) checkConvergence() bool {
	for r := e.lin.first; r != nil; r = r.next {
		if e.speed.get(r.p) < 0 {
			return false
		}
	}
	for r := e.lout.first; r != nil; r = r.next {
		if e.speed.get(r.p) > 0 {
			return false
		}
	}
	return true
}

// checkConsistency implements spec 4.3.6, panicking with an
// InvariantViolation on any failure. It is O(W*H) and intended for
// debug/test use only.
func (e *Engine) checkConsistency() {
	seen := make(map[Point]bool, e.lin.len+e.lout.len)
	for r := e.lin.first; r != nil; r = r.next {
		if seen[r.p] {
			panic(&InvariantViolation{Msg: "duplicate point in Lin"})
		}
		seen[r.p] = true
		if e.phi.get(r.p) != phiInnerBoundary {
			panic(&InvariantViolation{Msg: "Lin point does not have phi = -1"})
		}
	}
	for r := e.lout.first; r != nil; r = r.next {
		if seen[r.p] {
			panic(&InvariantViolation{Msg: "point present in both Lin and Lout, or duplicate in Lout"})
		}
		seen[r.p] = true
		if e.phi.get(r.p) != phiOuterBoundary {
			panic(&InvariantViolation{Msg: "Lout point does not have phi = +1"})
		}
	}
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			p := Point{x, y}
			if seen[p] {
				continue
			}
			v := e.phi.get(p)
			if v != phiInside && v != phiOutside {
				panic(&InvariantViolation{Msg: "off-list point does not have phi in {-3, +3}"})
			}
		}
	}
}
