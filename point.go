package levelset

// Point is an (x, y) coordinate on the phi/speed grid.
type Point struct {
	X, Y int
}

// neighbors writes the in-bounds 4-connected neighbors of p (within a
// W x H grid) into buf and returns the number written. buf must have
// capacity for at least 4 points; it is reused across calls so that
// callers walking a boundary list do not allocate per point.
func neighbors(p Point, w, h int, buf *[4]Point) int {
	n := 0
	if p.X > 0 {
		buf[n] = Point{p.X - 1, p.Y}
		n++
	}
	if p.X < w-1 {
		buf[n] = Point{p.X + 1, p.Y}
		n++
	}
	if p.Y > 0 {
		buf[n] = Point{p.X, p.Y - 1}
		n++
	}
	if p.Y < h-1 {
		buf[n] = Point{p.X, p.Y + 1}
		n++
	}
	return n
}
