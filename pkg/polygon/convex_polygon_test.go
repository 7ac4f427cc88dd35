package polygon_test

import (
	"math"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/polygon"
)

func TestHullDegenerateCounts(t *testing.T) {
	tests := []struct {
		name string
		pts  []v2.Vec
		want int
		kind polygon.Kind
	}{
		{"empty", nil, 0, polygon.KindEmpty},
		{"single", []v2.Vec{vec(1, 1)}, 1, polygon.KindPoint},
		{"identical", []v2.Vec{vec(2, 3), vec(2, 3), vec(2, 3)}, 1, polygon.KindPoint},
		{"near duplicates", []v2.Vec{vec(1, 1), vec(1+1e-14, 1), vec(1, 1-1e-14)}, 1, polygon.KindPoint},
		{"collinear", []v2.Vec{vec(0, 0), vec(1, 1), vec(2, 2), vec(3, 3)}, 2, polygon.KindSegment},
		{"vertical collinear", []v2.Vec{vec(1, 5), vec(1, -2), vec(1, 0)}, 2, polygon.KindSegment},
		{"triangle", []v2.Vec{vec(0, 0), vec(5, 0), vec(3, 5)}, 3, polygon.KindPolygon},
		{"tiny triangle", []v2.Vec{vec(0, 0), vec(1e-7, 0), vec(0, 1e-7)}, 3, polygon.KindPolygon},
		{"repeated points", []v2.Vec{vec(0, 0), vec(1, 1), vec(1, 1), vec(1, 1), vec(1, 0), vec(0, 0)}, 3, polygon.KindPolygon},
		{"interior and edge points", []v2.Vec{vec(-1, -1), vec(1, -1), vec(1, 1), vec(-1, 1), vec(0, 0), vec(0, -1), vec(1, 0.5)}, 4, polygon.KindPolygon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := poly(tt.pts...)
			if got := p.NumberOfVertices(); got != tt.want {
				t.Fatalf("NumberOfVertices() = %d, want %d (%v)", got, tt.want, p)
			}
			if got := p.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestHullMergesNearDuplicatesAcrossSortOrder(t *testing.T) {
	tests := []struct {
		name string
		pts  []v2.Vec
		want []v2.Vec
	}{
		{
			"triangle",
			[]v2.Vec{vec(-1, 0.5), vec(0, 0), vec(0, 1), vec(1e-13, 0)},
			[]v2.Vec{vec(-1, 0.5), vec(0, 0), vec(0, 1)},
		},
		{
			"segment",
			[]v2.Vec{vec(0, 0), vec(0, 1), vec(1e-13, 0)},
			[]v2.Vec{vec(0, 0), vec(0, 1)},
		},
		{
			"square",
			[]v2.Vec{vec(-1, -1), vec(1, -1), vec(1, 1), vec(-1, 1), vec(1+1e-13, -1)},
			[]v2.Vec{vec(-1, -1), vec(1, -1), vec(1, 1), vec(-1, 1)},
		},
		{
			"square twin first",
			[]v2.Vec{vec(1+1e-13, 1), vec(-1, -1), vec(1, -1), vec(-1, 1), vec(1, 1)},
			[]v2.Vec{vec(-1, -1), vec(1, -1), vec(1, 1), vec(-1, 1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := poly(tt.pts...)
			if got := p.NumberOfVertices(); got != len(tt.want) {
				t.Fatalf("NumberOfVertices() = %d, want %d (%v)", got, len(tt.want), p)
			}
			if !samePoints(p.Vertices(), tt.want) {
				t.Errorf("Vertices() = %v, want %v", p.Vertices(), tt.want)
			}
			for _, q := range tt.pts {
				if !p.IsPointInside(q, 1e-9) {
					t.Errorf("input %v outside hull %v", q, p)
				}
			}
		})
	}
}

func TestHullIsCCW(t *testing.T) {
	p := poly(vec(0, 0), vec(-1, 0), vec(0, 1), vec(1, 1))
	vs := p.Vertices()
	if !isCCWConvex(vs) {
		t.Errorf("hull not CCW convex: %v", vs)
	}
	if p.Area() <= 0 {
		t.Errorf("Area() = %v, want positive for CCW hull", p.Area())
	}
}

func TestHullInvariantUnderInputOrder(t *testing.T) {
	a := poly(vec(0, 0), vec(4, 0), vec(4, 3), vec(0, 3), vec(2, 1))
	b := poly(vec(2, 1), vec(0, 3), vec(4, 3), vec(0, 0), vec(4, 0))
	if !a.GeometricallyEquals(b, eps) {
		t.Errorf("hulls differ: %v vs %v", a, b)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	p := poly(vec(0, 0), vec(3, 0), vec(3, 3), vec(0, 3), vec(1, 1))
	before := p.Vertices()
	p.Update()
	p.Update()
	after := p.Vertices()
	if len(before) != len(after) {
		t.Fatalf("vertex count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		assertVec(t, "vertex", after[i], before[i])
	}
}

func TestDirtyFlag(t *testing.T) {
	p := polygon.New()
	if !p.IsUpToDate() {
		t.Fatal("new polygon should be up to date")
	}
	p.AddVertex(vec(0, 0))
	if p.IsUpToDate() {
		t.Error("AddVertex should mark stale")
	}
	p.Update()
	if !p.IsUpToDate() {
		t.Error("Update should mark up to date")
	}
	p.Translate(1, 0)
	if p.IsUpToDate() {
		t.Error("Translate should mark stale")
	}
	if got := p.NumberOfVertices(); got != 1 || !p.IsUpToDate() {
		t.Errorf("query should update implicitly, got n=%d upToDate=%v", got, p.IsUpToDate())
	}
}

func TestMutations(t *testing.T) {
	p := polygon.New()
	p.AddVertices(vec(0, 0), vec(2, 0), vec(0, 2))
	p.Update()
	if p.NumberOfVertices() != 3 {
		t.Fatalf("NumberOfVertices() = %d, want 3", p.NumberOfVertices())
	}
	p.RemoveVertex(0)
	if got := p.NumberOfVertices(); got != 2 {
		t.Errorf("after RemoveVertex NumberOfVertices() = %d, want 2", got)
	}

	p.Set([]v2.Vec{vec(0, 0), vec(1, 0), vec(1, 1), vec(9, 9)}, 3)
	p.Update()
	if hasVertex(p, vec(9, 9)) {
		t.Error("Set should ignore points beyond count")
	}

	p.Clear()
	if !p.IsEmpty() {
		t.Error("Clear should leave an empty hull")
	}

	p.ClearAndUpdate()
	if !p.IsUpToDate() || p.NumberOfVertices() != 0 {
		t.Error("ClearAndUpdate should leave an up-to-date empty hull")
	}

	other := square()
	p.SetFrom(other)
	if !p.Equals(other) {
		t.Errorf("SetFrom: %v, want %v", p, other)
	}
	other.Translate(5, 5)
	if p.Equals(other) {
		t.Error("SetFrom should copy, not alias")
	}
}

func TestPreconditionPanics(t *testing.T) {
	p := square()
	before := p.Vertices()

	mustPanic(t, "Set with count > len", func() { p.Set([]v2.Vec{vec(0, 0)}, 2) })
	mustPanic(t, "Set with negative count", func() { p.Set(nil, -1) })
	mustPanic(t, "Vertex out of range", func() { p.Vertex(4) })
	mustPanic(t, "RemoveVertex out of range", func() { p.RemoveVertex(-1) })
	mustPanic(t, "Edge on empty", func() { polygon.New().Edge(0) })

	after := p.Vertices()
	if len(after) != len(before) {
		t.Fatalf("failed mutation changed polygon: %v", after)
	}
	for i := range before {
		assertVec(t, "vertex after failed mutation", after[i], before[i])
	}
}

func TestAccessors(t *testing.T) {
	p := square()
	n := p.NumberOfVertices()
	for i := 0; i < n; i++ {
		if p.Vertex(p.NextIndex(i)) != p.NextVertex(i) {
			t.Errorf("NextVertex(%d) mismatch", i)
		}
		if p.PreviousIndex(p.NextIndex(i)) != i {
			t.Errorf("PreviousIndex(NextIndex(%d)) != %d", i, i)
		}
		e := p.Edge(i)
		if e.A != p.Vertex(i) || e.B != p.NextVertex(i) {
			t.Errorf("Edge(%d) = %v", i, e)
		}
	}
	vs := p.Vertices()
	vs[0] = vec(100, 100)
	if hasVertex(p, vec(100, 100)) {
		t.Error("Vertices should return a copy")
	}
}

func TestDerivedValues(t *testing.T) {
	t.Run("square", func(t *testing.T) {
		p := square()
		assertFloat(t, "Area()", p.Area(), 4)
		assertFloat(t, "Perimeter()", p.Perimeter(), 8)
		assertVec(t, "Centroid()", p.Centroid(), vec(0, 0))
		bb := p.BoundingBox()
		assertVec(t, "BoundingBox().Min", bb.Min, vec(-1, -1))
		assertVec(t, "BoundingBox().Max", bb.Max, vec(1, 1))
	})
	t.Run("triangle centroid", func(t *testing.T) {
		p := poly(vec(0, 0), vec(3, 0), vec(0, 3))
		assertFloat(t, "Area()", p.Area(), 4.5)
		assertVec(t, "Centroid()", p.Centroid(), vec(1, 1))
	})
	t.Run("segment", func(t *testing.T) {
		p := poly(vec(0, 0), vec(2, 0))
		assertFloat(t, "Area()", p.Area(), 0)
		assertVec(t, "Centroid()", p.Centroid(), vec(1, 0))
	})
	t.Run("point", func(t *testing.T) {
		p := poly(vec(3, 4))
		assertVec(t, "Centroid()", p.Centroid(), vec(3, 4))
		bb := p.BoundingBox()
		assertVec(t, "BoundingBox().Min", bb.Min, vec(3, 4))
	})
	t.Run("empty", func(t *testing.T) {
		p := polygon.New()
		if !math.IsNaN(p.Area()) || !math.IsNaN(p.Centroid().X) || !math.IsNaN(p.BoundingBox().Min.X) {
			t.Error("empty hull derived values should be NaN")
		}
	})
	t.Run("cache refreshed after mutation", func(t *testing.T) {
		p := square()
		_ = p.Area()
		p.Scale(2)
		assertFloat(t, "Area() after Scale", p.Area(), 16)
		p.Translate(1, 1)
		assertVec(t, "Centroid() after Translate", p.Centroid(), vec(1, 1))
	})
}

func TestScaleSquare(t *testing.T) {
	p := square()
	p.Scale(2)
	for _, v := range []v2.Vec{vec(2, 2), vec(-2, 2), vec(-2, -2), vec(2, -2)} {
		if !hasVertex(p, v) {
			t.Errorf("scaled square missing %v: %v", v, p)
		}
	}
	if p.NumberOfVertices() != 4 {
		t.Errorf("NumberOfVertices() = %d, want 4", p.NumberOfVertices())
	}
}

func TestScaleNegativeKeepsCCW(t *testing.T) {
	p := poly(vec(0, 0), vec(2, 0), vec(1, 3))
	p.ScaleAbout(vec(1, 1), -1)
	if !isCCWConvex(p.Vertices()) {
		t.Errorf("mirrored hull not CCW: %v", p)
	}
	if !hasVertex(p, vec(2, 2)) || !hasVertex(p, vec(1, -1)) {
		t.Errorf("unexpected mirrored vertices: %v", p)
	}
}

func TestTranslateCopy(t *testing.T) {
	p := square()
	c := p.TranslateCopy(3, -1)
	if !hasVertex(c, vec(4, 0)) {
		t.Errorf("TranslateCopy missing (4,0): %v", c)
	}
	if !hasVertex(p, vec(1, 1)) || hasVertex(p, vec(4, 0)) {
		t.Errorf("TranslateCopy modified source: %v", p)
	}
}

func TestEquality(t *testing.T) {
	a := square()
	b := poly(vec(1, 1), vec(-1, 1), vec(-1, -1), vec(1, -1))
	if !a.Equals(b) {
		t.Error("same points in different input order should give equal hulls")
	}
	c := a.TranslateCopy(1e-12, 0)
	if a.Equals(c) {
		t.Error("Equals should be exact")
	}
	if !a.EpsilonEquals(c, 1e-10) {
		t.Error("EpsilonEquals should tolerate tiny offsets")
	}
	if a.EpsilonEquals(nil, 1) || a.GeometricallyEquals(poly(vec(0, 0)), 1) {
		t.Error("mismatched hulls reported equal")
	}
	if !polygon.New().GeometricallyEquals(polygon.New(), 0) {
		t.Error("empty hulls should be geometrically equal")
	}
}

func TestContainsNaN(t *testing.T) {
	p := poly(vec(0, 0), vec(1, 0), vec(math.NaN(), 1))
	if !p.ContainsNaN() {
		t.Error("ContainsNaN() = false, want true")
	}
	if p.IsPointInside(vec(0.1, 0.1), 1) {
		t.Error("NaN hull should not report containment")
	}
	if square().ContainsNaN() {
		t.Error("square reports NaN")
	}
}

func TestString(t *testing.T) {
	s := poly(vec(1, 2)).String()
	if !strings.Contains(s, "(1, 2)") {
		t.Errorf("String() = %q", s)
	}
	if got := polygon.KindSegment.String(); got != "segment" {
		t.Errorf("KindSegment.String() = %q", got)
	}
}

func TestCapacityRetained(t *testing.T) {
	p := polygon.New()
	pts := make([]v2.Vec, 64)
	for i := range pts {
		pts[i] = vec(math.Cos(float64(i)), math.Sin(float64(i)))
	}
	p.SetAndUpdate(pts, len(pts))
	p.Clear()
	p.AddVertices(vec(0, 0), vec(1, 0), vec(0, 1))
	if got := p.NumberOfVertices(); got != 3 {
		t.Errorf("NumberOfVertices() = %d, want 3", got)
	}
}
