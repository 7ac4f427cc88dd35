package polygon

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// derived holds values computed from the hull on first use after an
// update. valid is cleared by every mutation and update.
type derived struct {
	valid     bool
	area      float64
	perimeter float64
	centroid  v2.Vec
	box       sdf.Box2
}

func (p *ConvexPolygon) derive() *derived {
	p.ensure()
	if p.cache.valid {
		return &p.cache
	}
	c := &p.cache
	vs := p.vertices
	nan := math.NaN()

	switch len(vs) {
	case 0:
		c.area, c.perimeter = nan, nan
		c.centroid = v2.Vec{X: nan, Y: nan}
		c.box = sdf.Box2{Min: c.centroid, Max: c.centroid}
		c.valid = true
		return c
	case 1:
		c.area, c.perimeter = 0, 0
		c.centroid = vs[0]
	case 2:
		c.area = 0
		c.perimeter = 2 * geometry.Distance(vs[0], vs[1])
		c.centroid = geometry.Interpolate(vs[0], vs[1], 0.5)
	default:
		var a2, cx, cy, per float64
		o := vs[0]
		for i := range vs {
			u, w := vs[i].Sub(o), vs[next(i, len(vs))].Sub(o)
			cr := geometry.Cross(u, w)
			a2 += cr
			cx += (u.X + w.X) * cr
			cy += (u.Y + w.Y) * cr
			per += geometry.Distance(vs[i], vs[next(i, len(vs))])
		}
		c.area = 0.5 * a2
		c.perimeter = per
		if a2 == 0 {
			c.centroid = o
		} else {
			c.centroid = v2.Vec{X: o.X + cx/(3*a2), Y: o.Y + cy/(3*a2)}
		}
	}

	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = v2.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y)}
		hi = v2.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y)}
	}
	c.box = sdf.Box2{Min: lo, Max: hi}
	c.valid = true
	return c
}

// Area returns the enclosed area: 0 for a point or segment, NaN when
// empty.
func (p *ConvexPolygon) Area() float64 { return p.derive().area }

// Perimeter returns the boundary length. A segment hull counts both
// directions. NaN when empty.
func (p *ConvexPolygon) Perimeter() float64 { return p.derive().perimeter }

// Centroid returns the area centroid; for a segment its midpoint and for
// a point the point itself. Both coordinates are NaN when empty.
func (p *ConvexPolygon) Centroid() v2.Vec { return p.derive().centroid }

// BoundingBox returns the axis-aligned box around the hull. Its corners
// are NaN when empty.
func (p *ConvexPolygon) BoundingBox() sdf.Box2 { return p.derive().box }
