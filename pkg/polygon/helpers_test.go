package polygon_test

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
	"github.com/chazu/planar/pkg/polygon"
)

const eps = 1e-9

func vec(x, y float64) v2.Vec { return v2.Vec{X: x, Y: y} }

func poly(pts ...v2.Vec) *polygon.ConvexPolygon { return polygon.FromPoints(pts...) }

func square() *polygon.ConvexPolygon {
	return poly(vec(-1, -1), vec(1, -1), vec(1, 1), vec(-1, 1))
}

func near(a, b v2.Vec) bool { return geometry.EpsilonEquals(a, b, eps) }

func assertVec(t *testing.T, what string, got, want v2.Vec) {
	t.Helper()
	if !near(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func assertFloat(t *testing.T, what string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

// samePoints compares two point sets ignoring order.
func samePoints(got, want []v2.Vec) bool {
	if len(got) != len(want) {
		return false
	}
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if !used[i] && near(g, w) {
				used[i], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameEdge compares two segments ignoring direction.
func sameEdge(s geometry.Segment, a, b v2.Vec) bool {
	return (near(s.A, a) && near(s.B, b)) || (near(s.A, b) && near(s.B, a))
}

func hasVertex(p *polygon.ConvexPolygon, v v2.Vec) bool {
	for _, w := range p.Vertices() {
		if near(w, v) {
			return true
		}
	}
	return false
}

// isCCWConvex reports whether every consecutive triple turns left.
func isCCWConvex(vs []v2.Vec) bool {
	n := len(vs)
	if n < 3 {
		return true
	}
	for i := range vs {
		if geometry.Cross3(vs[i], vs[(i+1)%n], vs[(i+2)%n]) <= 0 {
			return false
		}
	}
	return true
}

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", what)
		}
	}()
	fn()
}
