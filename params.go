package levelset

// Params holds the tunable quantities of a level-set segmentation run.
// Zero-valued fields are not automatically replaced with defaults; use
// DefaultParams to start from the reference implementation's defaults.
type Params struct {
	// MaxIterations is the number of outer (speed + smooth) iterations.
	MaxIterations int

	// SpeedIterations is the number of speed sub-iterations run per outer
	// iteration.
	SpeedIterations int

	// SmoothIterations is the number of smoothing sub-iterations run per
	// outer iteration.
	SmoothIterations int

	// GaussWidth is the Gaussian kernel half-width g; the kernel is
	// (2g+1)x(2g+1). Ignored if SmoothIterations is 0.
	GaussWidth int

	// GaussSigma is the standard deviation of the Gaussian kernel.
	GaussSigma float64

	// NeighbourhoodRadius is the Hybrid field's window half-edge r.
	NeighbourhoodRadius int

	// CutoffIntensity is the Hybrid field's optional intensity pre-filter
	// cutoff. Zero disables the pre-filter.
	CutoffIntensity int

	// DebugChecks enables the consistency check (I1-I4) after every
	// sweep. It is expensive and intended for tests, not production runs.
	DebugChecks bool
}

// DefaultParams returns the parameter defaults used by the reference
// implementation.
func DefaultParams() Params {
	return Params{
		MaxIterations:       10,
		SpeedIterations:     5,
		SmoothIterations:    2,
		GaussWidth:          3,
		GaussSigma:          3,
		NeighbourhoodRadius: 16,
		CutoffIntensity:     0,
	}
}
