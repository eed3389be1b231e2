package levelset

import "github.com/shikarl/levelset/raster"

// Method identifies which speed-field implementation to construct. The
// set is closed: region-based (Chan-Vese), local-region (Hybrid), and
// edge-based (recognized but not implemented).
type Method int

const (
	ChanVese Method = iota
	Hybrid
	Edge
)

func (m Method) String() string {
	switch m {
	case ChanVese:
		return "chan_vese"
	case Hybrid:
		return "hybrid"
	case Edge:
		return "edge"
	default:
		return "unknown"
	}
}

// SpeedField drives boundary motion: for a queried point it reports a
// quantized direction of motion, and it is notified whenever the engine
// moves a point across the boundary so that region-based implementations
// can keep incremental statistics.
type SpeedField interface {
	// computeSign returns the engine-facing sign of the speed at p:
	// +1 to switch p into the foreground, -1 to switch it out, 0 for no
	// motion. phi is read-only from the field's perspective.
	computeSign(phi *grid, p Point) int8

	// requiresUpdate reports whether notifySwitchIn/Out calls have
	// accumulated pending statistics updates.
	requiresUpdate() bool

	// notifySwitchIn/notifySwitchOut record that p crossed the boundary,
	// so applyPendingUpdates can recompute statistics in bulk.
	notifySwitchIn(img *raster.Image, p Point)
	notifySwitchOut(img *raster.Image, p Point)

	// applyPendingUpdates drains the switch queues and recomputes any
	// field-internal statistics. Called at most once per speed
	// sub-iteration, before the speed sweep runs.
	applyPendingUpdates(img *raster.Image)
}

// noStats is embedded by speed fields that hold no cross-iteration
// statistics: the Hybrid field recomputes everything fresh at each query,
// so its switch notifications and pending-update drain are no-ops.
type noStats struct{}

func (noStats) requiresUpdate() bool                                  { return false }
func (noStats) notifySwitchIn(img *raster.Image, p Point)             {}
func (noStats) notifySwitchOut(img *raster.Image, p Point)            {}
func (noStats) applyPendingUpdates(img *raster.Image)                 {}

// signum returns -1, 0, or +1 according to the sign of s.
func signum(s float64) int8 {
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	default:
		return 0
	}
}

// NewSpeedField constructs the speed field identified by method against
// img and the initialization mask. CHAN_VESE traverses the mask to seed
// its incremental statistics and returns a DomainError if the mask is
// empty or full; HYBRID optionally applies an intensity pre-filter; EDGE
// is a recognized but unimplemented method and always fails.
func NewSpeedField(method Method, img *raster.Image, mask *raster.Mask, p Params) (SpeedField, error) {
	if img == nil || mask == nil {
		return nil, &ConfigurationError{Msg: "image and mask must be non-nil"}
	}
	if err := raster.Validate(img, mask); err != nil {
		return nil, &ConfigurationError{Msg: err.Error()}
	}
	switch method {
	case ChanVese:
		return newChanVeseField(img, mask)
	case Hybrid:
		return newHybridField(img, mask, p)
	case Edge:
		return nil, &ConfigurationError{Msg: "edge speed field not implemented"}
	default:
		return nil, &ConfigurationError{Msg: "unrecognized speed field method"}
	}
}
