package levelset

import (
	"reflect"
	"testing"
)

func TestPointList(t *testing.T) {
	p0 := Point{0, 0}
	p1 := Point{1, 0}
	p2 := Point{2, 0}
	p3 := Point{3, 0}

	l := newPointList()
	l2 := newPointList()

	for _, p := range []Point{p0, p1, p2, p3} {
		l.add(p)
		l2.add(p)
	}

	l2.deletePoint(p0)
	l2.deletePoint(p1)
	l2.deletePoint(p2)
	l2.deletePoint(p3)
	if l2.first != nil {
		t.Error("l2 should be empty but it is not.")
	}

	want := []Point{p3, p2, p1, p0}
	if !reflect.DeepEqual(l.points(), want) {
		t.Errorf("have %#v, want %#v", l.points(), want)
	}

	l.deletePoint(p2)
	want = []Point{p3, p1, p0}
	if !reflect.DeepEqual(l.points(), want) {
		t.Errorf("have %#v, want %#v", l.points(), want)
	}

	if !l.has(p0) || l.has(p2) {
		t.Error("has() disagrees with list contents after deletion")
	}
}

func TestPendingBufferSplice(t *testing.T) {
	l := newPointList()
	l.add(Point{0, 0})

	var buf pendingBuffer
	buf.add(Point{1, 0})
	buf.add(Point{1, 0}) // duplicate within the same sweep must not panic
	buf.add(Point{0, 0}) // already present in dst, must be skipped

	buf.splice(l)

	if l.len != 2 {
		t.Errorf("len = %d, want 2", l.len)
	}
	if len(buf.points) != 0 {
		t.Errorf("buffer not drained, has %d points", len(buf.points))
	}
}

func TestPointListPanicsOnMissingDelete(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic deleting a point not in the list")
		}
	}()
	l := newPointList()
	l.deletePoint(Point{0, 0})
}
