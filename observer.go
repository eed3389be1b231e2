package levelset

// ProgressObserver is invoked synchronously after every outer iteration
// completes, with the fraction of MaxIterations finished so far. It must
// not mutate engine state or block.
type ProgressObserver func(fractionComplete float64)

// BoundaryObserver is invoked synchronously after every outer iteration
// completes, with read-only snapshots of the current Lin and Lout
// contents. It must not mutate engine state or block.
type BoundaryObserver func(lin, lout []Point)
