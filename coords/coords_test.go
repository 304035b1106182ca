package coords

import "testing"

func TestMultiplyTranslateScale(t *testing.T) {
	scale := Matrix{2, 0, 0, 2, 0, 0}
	m := Translate(10, 20).Multiply(scale)
	p := m.Transform(Point{X: 1, Y: 1})
	if p.X != 22 || p.Y != 42 {
		t.Fatalf("transformed point = %+v, want (22, 42)", p)
	}
}

func TestIdentityTransform(t *testing.T) {
	p := Point{X: 3.5, Y: -2}
	if got := Identity().Transform(p); got != p {
		t.Fatalf("identity moved the point: %+v", got)
	}
}

func TestRectIsEmpty(t *testing.T) {
	cases := []struct {
		r    Rect
		want bool
	}{
		{Rect{LLX: 0, LLY: 0, URX: 10, URY: 10}, false},
		{Rect{LLX: 5, LLY: 0, URX: 5, URY: 10}, true},
		{Rect{LLX: 0, LLY: 8, URX: 10, URY: 2}, true},
	}
	for _, c := range cases {
		if got := c.r.IsEmpty(); got != c.want {
			t.Errorf("IsEmpty(%+v) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestRectIntersectsAndUnion(t *testing.T) {
	a := Rect{LLX: 0, LLY: 0, URX: 10, URY: 10}
	b := Rect{LLX: 5, LLY: 5, URX: 20, URY: 8}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Fatal("overlapping rects must intersect both ways")
	}
	c := Rect{LLX: 11, LLY: 0, URX: 12, URY: 10}
	if a.Intersects(c) {
		t.Fatal("disjoint rects must not intersect")
	}

	u := a.Union(b)
	want := Rect{LLX: 0, LLY: 0, URX: 20, URY: 10}
	if u != want {
		t.Fatalf("Union = %+v, want %+v", u, want)
	}
	if u.Union(u) != u {
		t.Fatal("Union must be idempotent")
	}
	if !u.Intersects(a) || !u.Intersects(b) {
		t.Fatal("union must cover both inputs")
	}
}

func TestBoundingRect(t *testing.T) {
	r := BoundingRect(Point{X: 4, Y: 1}, Point{X: -2, Y: 9}, Point{X: 0, Y: 0})
	want := Rect{LLX: -2, LLY: 0, URX: 4, URY: 9}
	if r != want {
		t.Fatalf("BoundingRect = %+v, want %+v", r, want)
	}
	if r.Width() != 6 || r.Height() != 9 {
		t.Fatalf("Width/Height = %v/%v, want 6/9", r.Width(), r.Height())
	}
}
