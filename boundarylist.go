package levelset

import "fmt"

// pointRef holds a point and its position in a pointList, so that a
// sweep iterating the list can remove the current point in O(1) without
// invalidating the cursor it holds for the rest of the walk.
type pointRef struct {
	p              Point
	next, previous *pointRef
}

// pointList is a doubly linked list of boundary points (Lin or Lout),
// indexed by point for O(1) membership tests and removal.
type pointList struct {
	first *pointRef
	len   int
	index map[Point]*pointRef
}

func newPointList() *pointList {
	return &pointList{index: make(map[Point]*pointRef)}
}

// has reports whether p is currently in the list.
func (l *pointList) has(p Point) bool {
	_, ok := l.index[p]
	return ok
}

// add inserts p at the front of the list and returns its ref.
func (l *pointList) add(p Point) *pointRef {
	r := &pointRef{p: p}
	r.next = l.first
	if l.first != nil {
		l.first.previous = r
	}
	l.first = r
	l.len++
	l.index[p] = r
	return r
}

// delete removes r from the list.
func (l *pointList) delete(r *pointRef) {
	if r.previous != nil && r.next != nil {
		r.previous.next, r.next.previous = r.next, r.previous
	} else if r.previous != nil {
		r.previous.next = nil
	} else if r.next != nil {
		r.next.previous = nil
	}
	if r == l.first {
		l.first = r.next
	}
	r.previous = nil
	r.next = nil
	l.len--
	delete(l.index, r.p)
}

// deletePoint removes p from the list. It panics if p is not present,
// matching the engine's expectation that callers only ever remove points
// they know to be on the list (e.g. the current cursor of a sweep).
func (l *pointList) deletePoint(p Point) {
	r, ok := l.index[p]
	if !ok {
		panic("levelset: tried to delete point that is not in list")
	}
	l.delete(r)
}

func (l *pointList) ref(p Point) *pointRef {
	r, ok := l.index[p]
	if !ok {
		panic("levelset: tried to retrieve point that is not in list")
	}
	return r
}

func (l *pointList) String() string {
	s := ""
	for r := l.first; r != nil; r = r.next {
		if r != l.first {
			s += "\n"
		}
		s += fmt.Sprint(r.p)
	}
	return s
}

// points returns every point currently in the list, in list order. Used
// by boundary observers and by tests; not on the engine's hot path.
func (l *pointList) points() []Point {
	o := make([]Point, 0, l.len)
	for r := l.first; r != nil; r = r.next {
		o = append(o, r.p)
	}
	return o
}

// pendingBuffer accumulates points enqueued during a sweep (new inside or
// outside boundary members exposed by a switch) so that they are not
// visited by the pass that exposed them. splice moves every buffered
// point that dst does not already hold onto the front of dst and empties
// the buffer.
type pendingBuffer struct {
	points []Point
}

func (b *pendingBuffer) add(p Point) {
	b.points = append(b.points, p)
}

func (b *pendingBuffer) splice(dst *pointList) {
	for _, p := range b.points {
		if !dst.has(p) {
			dst.add(p)
		}
	}
	b.points = b.points[:0]
}
