package coords

import "math"

// Matrix is a PDF transformation matrix [a b c d e f].
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[1]*o[2],
		m[0]*o[1] + m[1]*o[3],
		m[2]*o[0] + m[3]*o[2],
		m[2]*o[1] + m[3]*o[3],
		m[4]*o[0] + m[5]*o[2] + o[4],
		m[4]*o[1] + m[5]*o[3] + o[5],
	}
}

type Point struct{ X, Y float64 }

func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Rect is an axis-aligned rectangle in page space, lower-left to upper-right.
type Rect struct {
	LLX, LLY, URX, URY float64
}

func (r Rect) Width() float64  { return r.URX - r.LLX }
func (r Rect) Height() float64 { return r.URY - r.LLY }

func (r Rect) IsEmpty() bool { return r.URX <= r.LLX || r.URY <= r.LLY }

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.LLX < o.URX && o.LLX < r.URX && r.LLY < o.URY && o.LLY < r.URY
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		LLX: math.Min(r.LLX, o.LLX),
		LLY: math.Min(r.LLY, o.LLY),
		URX: math.Max(r.URX, o.URX),
		URY: math.Max(r.URY, o.URY),
	}
}

// BoundingRect returns the bounding rectangle of a set of points.
func BoundingRect(points ...Point) Rect {
	r := Rect{
		LLX: math.MaxFloat64, LLY: math.MaxFloat64,
		URX: -math.MaxFloat64, URY: -math.MaxFloat64,
	}
	for _, p := range points {
		r.LLX = math.Min(r.LLX, p.X)
		r.LLY = math.Min(r.LLY, p.Y)
		r.URX = math.Max(r.URX, p.X)
		r.URY = math.Max(r.URY, p.Y)
	}
	return r
}
