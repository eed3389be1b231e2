package levelset

// Phi cell values. Values away from ±1 mean "far from the boundary";
// ±1 means the point is on the inside or outside boundary list.
const (
	phiInside        int8 = -3
	phiInnerBoundary int8 = -1
	phiOuterBoundary int8 = 1
	phiOutside       int8 = 3
)

// Speed grid values. Only meaningful for points currently on a boundary
// list; off-boundary cells keep their last value (0 if never on a list)
// and are never read.
const (
	speedContract int8 = -1
	speedNone     int8 = 0
	speedExpand   int8 = 1
)

// grid is a flat W x H array of small signed integers, row-major by y.
type grid struct {
	w, h int
	data []int8
}

func newGrid(w, h int, fill int8) *grid {
	g := &grid{w: w, h: h, data: make([]int8, w*h)}
	if fill != 0 {
		for i := range g.data {
			g.data[i] = fill
		}
	}
	return g
}

func (g *grid) idx(p Point) int { return p.Y*g.w + p.X }

func (g *grid) get(p Point) int8 { return g.data[g.idx(p)] }

func (g *grid) set(p Point, v int8) { g.data[g.idx(p)] = v }

func (g *grid) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}
