package levelset

import (
	"testing"

	"github.com/shikarl/levelset/raster"
)

// scenario 1: empty-image no-op.
func TestScenarioEmptyImageRejected(t *testing.T) {
	img := buildImage(4, 4, func(x, y int) int { return 100 })
	mask := raster.NewMask(4, 4)

	p := Params{MaxIterations: 1, SpeedIterations: 1, SmoothIterations: 0}
	_, err := NewSpeedField(ChanVese, img, mask, p)
	if err == nil {
		t.Fatal("expected construction to fail on an all-background mask")
	}
	if _, ok := err.(*DomainError); !ok {
		t.Fatalf("expected *DomainError, got %T: %v", err, err)
	}
}

// scenario 2: single-pixel grow.
func TestScenarioSinglePixelGrow(t *testing.T) {
	img := buildImage(5, 5, func(x, y int) int {
		if x == 2 && y == 2 {
			return 255
		}
		return 0
	})
	mask := raster.NewMask(5, 5)
	mask.Set(2, 2, true)

	p := Params{MaxIterations: 5, SpeedIterations: 3, SmoothIterations: 0, DebugChecks: true}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}
	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	seg, err := e.Segmentation()
	if err != nil {
		t.Fatal(err)
	}
	if !seg.At(2, 2) {
		t.Error("center pixel should remain foreground")
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 2 && y == 2 {
				continue
			}
			if seg.At(x, y) {
				t.Errorf("(%d,%d) should remain background, got foreground\n%s", x, y, seg)
			}
		}
	}
}

// scenario 3: bright square on dark.
func TestScenarioBrightSquare(t *testing.T) {
	const w, h = 10, 10
	img := buildImage(w, h, func(x, y int) int {
		if x >= 2 && x < 8 && y >= 2 && y < 8 {
			return 200
		}
		return 20
	})
	mask := raster.NewMask(w, h)
	mask.Set(4, 5, true)
	mask.Set(5, 5, true)

	p := Params{
		MaxIterations:    20,
		SpeedIterations:  5,
		SmoothIterations: 2,
		GaussWidth:       3,
		GaussSigma:       3,
		DebugChecks:      true,
	}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}
	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	seg, err := e.Segmentation()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := x >= 2 && x < 8 && y >= 2 && y < 8
			if seg.At(x, y) != want {
				t.Fatalf("(%d,%d) = %v, want %v\n%s", x, y, seg.At(x, y), want, seg)
			}
		}
	}
}

// scenario 4: checkerboard stability with the Hybrid field.
func TestScenarioCheckerboardStableWithHybrid(t *testing.T) {
	const w, h = 8, 8
	img := buildImage(w, h, func(x, y int) int {
		if (x+y)%2 == 0 {
			return 100
		}
		return 150
	})
	mask := raster.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Set(x, y, (x+y)%2 == 0)
		}
	}

	p := Params{MaxIterations: 3, SpeedIterations: 5, SmoothIterations: 0, NeighbourhoodRadius: 2, DebugChecks: true}
	field, err := NewSpeedField(Hybrid, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}

	var snapshots [][]bool
	e.AddProgressObserver(func(fraction float64) {
		snap := make([]bool, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				snap[y*w+x] = e.IsInside(x, y)
			}
		}
		snapshots = append(snapshots, snap)
	})

	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	if len(snapshots) < 2 {
		t.Fatalf("expected at least 2 iteration snapshots, got %d", len(snapshots))
	}
	last := snapshots[len(snapshots)-1]
	prev := snapshots[len(snapshots)-2]
	for i := range last {
		if last[i] != prev[i] {
			t.Fatalf("segmentation still changing at cell %d on the final iteration", i)
		}
	}
}

// scenario 5: cancellation.
func TestScenarioCancellation(t *testing.T) {
	const w, h = 10, 10
	img := buildImage(w, h, func(x, y int) int {
		if x >= 2 && x < 8 && y >= 2 && y < 8 {
			return 200
		}
		return 20
	})
	mask := raster.NewMask(w, h)
	mask.Set(4, 5, true)
	mask.Set(5, 5, true)

	p := Params{MaxIterations: 20, SpeedIterations: 5, SmoothIterations: 2, GaussWidth: 3, GaussSigma: 3}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}

	// Cancel before Run even starts: the cooperative cancellation probe
	// runs after the very first speed sub-iteration, so this is
	// equivalent to cancelling "after the first speed sub-iteration" for
	// a run that has not yet made any switches.
	e.Cancel()

	if ok := e.Run(); ok {
		t.Fatal("expected Run to report failure after cancellation")
	}
	if _, err := e.Segmentation(); err == nil {
		t.Fatal("segmentation must not be readable after a canceled run")
	}
}

// scenario 6: smoothing removes a pixel spike.
func TestScenarioSmoothingRemovesSpike(t *testing.T) {
	const w, h = 7, 7
	img := buildImage(w, h, func(x, y int) int { return 0 })
	mask := raster.NewMask(w, h)
	mask.Set(3, 3, true)
	mask.Set(0, 0, true)

	p := Params{MaxIterations: 1, SpeedIterations: 0, SmoothIterations: 5, GaussWidth: 2, GaussSigma: 1, DebugChecks: true}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}
	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	seg, err := e.Segmentation()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seg.At(x, y) {
				t.Fatalf("expected all-background output, (%d,%d) is foreground\n%s", x, y, seg)
			}
		}
	}
}

// round-trip: maxIterations = 0 leaves the segmentation equal to mask.
func TestRunZeroIterationsIsNoOp(t *testing.T) {
	img := buildImage(6, 6, func(x, y int) int { return (x + y) % 7 })
	mask := raster.NewMask(6, 6)
	mask.Set(2, 2, true)
	mask.Set(2, 3, true)
	mask.Set(3, 2, true)
	mask.Set(3, 3, true)

	p := Params{MaxIterations: 0, SpeedIterations: 5, SmoothIterations: 2, GaussWidth: 1, GaussSigma: 1}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}
	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	seg, err := e.Segmentation()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if seg.At(x, y) != mask.At(x, y) {
				t.Fatalf("(%d,%d) = %v, want %v (mask unchanged)", x, y, seg.At(x, y), mask.At(x, y))
			}
		}
	}
}

// round-trip: constant-intensity image with no smoothing produces no
// speed-driven motion, so the segmentation equals the initialization
// mask even with many iterations.
func TestRunConstantIntensityNoSmoothingIsNoOp(t *testing.T) {
	img := buildImage(6, 6, func(x, y int) int { return 42 })
	mask := raster.NewMask(6, 6)
	mask.Set(2, 2, true)
	mask.Set(2, 3, true)
	mask.Set(3, 2, true)
	mask.Set(3, 3, true)

	p := Params{MaxIterations: 4, SpeedIterations: 3, SmoothIterations: 0}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}
	if ok := e.Run(); !ok {
		t.Fatal("run was unexpectedly canceled")
	}
	seg, err := e.Segmentation()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if seg.At(x, y) != mask.At(x, y) {
				t.Fatalf("(%d,%d) = %v, want %v (mask unchanged)", x, y, seg.At(x, y), mask.At(x, y))
			}
		}
	}
}

// boundary behavior: a single interior pixel seeds valid boundary lists.
func TestSinglePixelSeedsValidBoundaryLists(t *testing.T) {
	img := buildImage(5, 5, func(x, y int) int { return 10 })
	mask := raster.NewMask(5, 5)
	mask.Set(2, 2, true)

	p := Params{MaxIterations: 1, SpeedIterations: 1, SmoothIterations: 0}
	field, err := NewSpeedField(ChanVese, img, mask, p)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(p, img, mask, field)
	if err != nil {
		t.Fatal(err)
	}

	if !e.lin.has(Point{2, 2}) {
		t.Error("seed pixel should be on Lin")
	}
	var buf [4]Point
	n := neighbors(Point{2, 2}, 5, 5, &buf)
	for i := 0; i < n; i++ {
		if !e.lout.has(buf[i]) {
			t.Errorf("neighbor %v of seed pixel should be on Lout", buf[i])
		}
	}
}
