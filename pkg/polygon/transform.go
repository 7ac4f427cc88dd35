package polygon

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Translate moves every stored point by (dx, dy) and marks the hull stale.
func (p *ConvexPolygon) Translate(dx, dy float64) {
	d := v2.Vec{X: dx, Y: dy}
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Add(d)
	}
	p.invalidate()
}

// TranslateCopy returns a translated copy, leaving p unchanged.
func (p *ConvexPolygon) TranslateCopy(dx, dy float64) *ConvexPolygon {
	c := p.Clone()
	c.Translate(dx, dy)
	return c
}

// Scale multiplies every stored point by factor about the origin and marks
// the hull stale. A negative factor mirrors the points; the next update
// restores CCW order.
func (p *ConvexPolygon) Scale(factor float64) {
	p.ScaleAbout(v2.Vec{}, factor)
}

// ScaleAbout scales every stored point by factor about center.
func (p *ConvexPolygon) ScaleAbout(center v2.Vec, factor float64) {
	for i := range p.vertices {
		p.vertices[i] = center.Add(p.vertices[i].Sub(center).MulScalar(factor))
	}
	p.invalidate()
}
