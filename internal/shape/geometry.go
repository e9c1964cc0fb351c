package shape

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Rect is a box anchored at (X, Y). W and H may be negative while a gesture
// is in progress; Canon returns the equivalent box with positive extents.
type Rect struct {
	X, Y, W, H float64
}

// Canon normalises r so that W and H are not negative.
func (r Rect) Canon() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Pixels returns the integer pixel rectangle covered by r.
func (r Rect) Pixels() image.Rectangle {
	c := r.Canon()
	return image.Rect(
		int(math.Floor(c.X)),
		int(math.Floor(c.Y)),
		int(math.Floor(c.X+c.W)),
		int(math.Floor(c.Y+c.H)),
	)
}

// Apex returns the third vertex of the equilateral triangle built on the
// segment a-b. The vertex lies on the (-dy, dx) side of the direction a->b,
// so a base drawn left to right in y-down coordinates gets its apex below it.
func Apex(a, b Point) Point {
	d := r2.Sub(b.vec(), a.vec())
	length := r2.Norm(d)
	if length == 0 {
		return a
	}
	dir := r2.Unit(d)
	perp := r2.Vec{X: -dir.Y, Y: dir.X}
	mid := r2.Scale(0.5, r2.Add(a.vec(), b.vec()))
	return fromVec(r2.Add(mid, r2.Scale(math.Sqrt(3)/2*length, perp)))
}

// TriangleVertices returns the base endpoints followed by the derived apex.
func (r Record) TriangleVertices() []Point {
	return []Point{r.Start, r.End, Apex(r.Start, r.End)}
}
