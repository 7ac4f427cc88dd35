package interop_test

import (
	"encoding/json"
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/quasilyte/gmath"

	"github.com/chazu/planar/pkg/interop"
	"github.com/chazu/planar/pkg/polygon"
	"github.com/chazu/planar/pkg/scene"
)

func square() *polygon.ConvexPolygon {
	return polygon.FromPoints(v2.Vec{X: 2, Y: 2}, v2.Vec{X: 0, Y: 0}, v2.Vec{X: 2, Y: 0}, v2.Vec{X: 0, Y: 2}, v2.Vec{X: 1, Y: 1})
}

func TestRing(t *testing.T) {
	r := interop.Ring(square())
	want := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	if !r.Equal(want) {
		t.Fatalf("Ring() = %v, want %v", r, want)
	}
	if !r.Closed() {
		t.Error("ring should be closed")
	}
	if r.Orientation() != orb.CCW {
		t.Errorf("ring orientation = %v, want CCW", r.Orientation())
	}
	if interop.Ring(polygon.New()) != nil {
		t.Error("empty hull should give a nil ring")
	}
}

func TestGeometryByKind(t *testing.T) {
	tests := []struct {
		name string
		p    *polygon.ConvexPolygon
		want string
	}{
		{"point", polygon.FromPoints(v2.Vec{X: 1, Y: 1}), "Point"},
		{"segment", polygon.FromPoints(v2.Vec{}, v2.Vec{X: 1, Y: 1}), "LineString"},
		{"polygon", square(), "Polygon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := interop.Geometry(tt.p)
			if g == nil || g.GeoJSONType() != tt.want {
				t.Errorf("Geometry() = %v, want %s", g, tt.want)
			}
		})
	}
	if interop.Geometry(polygon.New()) != nil {
		t.Error("empty hull should have no geometry")
	}
}

func TestBound(t *testing.T) {
	b := interop.Bound(square())
	if b.Min != (orb.Point{0, 0}) || b.Max != (orb.Point{2, 2}) {
		t.Errorf("Bound() = %v", b)
	}
}

func TestFromGeometry(t *testing.T) {
	tests := []struct {
		name  string
		g     orb.Geometry
		count int
		area  float64
	}{
		{"point", orb.Point{3, 4}, 1, math.NaN()},
		{"multipoint", orb.MultiPoint{{0, 0}, {4, 0}, {0, 3}, {1, 1}}, 3, 6},
		{"linestring", orb.LineString{{0, 0}, {1, 1}, {2, 2}}, 2, 0},
		{"ring", orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}, 4, 4},
		{"polygon with hole", orb.Polygon{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
			{{1, 1}, {1, 2}, {2, 2}, {1, 1}},
		}, 4, 16},
		{"multipolygon", orb.MultiPolygon{
			{{{0, 0}, {1, 0}, {0, 1}, {0, 0}}},
			{{{3, 0}, {4, 0}, {4, 1}, {3, 0}}},
		}, 4, 4},
		{"bound", orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 2}}, 4, 6},
		{"nil", nil, 0, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := interop.FromGeometry(tt.g)
			if err != nil {
				t.Fatalf("FromGeometry() error = %v", err)
			}
			if n := p.NumberOfVertices(); n != tt.count {
				t.Errorf("vertices = %d, want %d", n, tt.count)
			}
			if tt.count >= 3 {
				if a := p.Area(); math.Abs(a-tt.area) > 1e-9 {
					t.Errorf("area = %v, want %v", a, tt.area)
				}
			}
		})
	}

	if _, err := interop.FromGeometry(orb.MultiLineString{{{0, 0}, {1, 1}}}); err == nil {
		t.Error("expected error for unsupported geometry")
	}
}

func TestRingRoundTripKeepsHull(t *testing.T) {
	p := polygon.FromPoints(
		v2.Vec{X: -1, Y: 0}, v2.Vec{X: 0, Y: 1}, v2.Vec{X: 2, Y: 0}, v2.Vec{X: 1, Y: -1},
	)
	back, err := interop.FromGeometry(interop.Ring(p))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equals(p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestSceneFeatures(t *testing.T) {
	s := scene.New()
	base := s.NewHull("base", square())
	base.Elevation = 3
	s.NewHull("blank", polygon.New())
	s.NewHull("bad", polygon.FromPoints(v2.Vec{X: math.NaN()}, v2.Vec{X: 1}, v2.Vec{Y: 1}))
	s.NewHull("tip", polygon.FromPoints(v2.Vec{X: 5, Y: 5}))
	s.AddProbe("centre", [2]float64{1, 1})
	s.AddProbe("area", 4.0)

	fc := interop.SceneFeatures(s)
	if len(fc.Features) != 3 {
		t.Fatalf("features = %d, want 3 (base, tip, centre)", len(fc.Features))
	}

	f := fc.Features[0]
	if f.Properties["name"] != "base" || f.Properties["kind"] != "hull" {
		t.Errorf("first feature properties = %v", f.Properties)
	}
	if f.Properties["area"] != 4.0 || f.Properties["elevation"] != 3.0 {
		t.Errorf("area/elevation = %v/%v", f.Properties["area"], f.Properties["elevation"])
	}
	if f.ID != string(base.ID) {
		t.Errorf("feature ID = %v, want %v", f.ID, base.ID)
	}
	if fc.Features[1].Geometry.GeoJSONType() != "Point" {
		t.Errorf("point hull geometry = %v", fc.Features[1].Geometry)
	}
	probe := fc.Features[2]
	if probe.Properties["kind"] != "probe" || probe.Properties["label"] != "centre" {
		t.Errorf("probe feature properties = %v", probe.Properties)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Features) != 3 {
		t.Errorf("decoded features = %d, want 3", len(decoded.Features))
	}
	if got := interop.SceneFeatures(nil); len(got.Features) != 0 {
		t.Errorf("nil scene features = %d", len(got.Features))
	}
}

func TestGmath(t *testing.T) {
	vs := interop.ToGmath(square())
	want := []gmath.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if len(vs) != len(want) {
		t.Fatalf("ToGmath() = %v", vs)
	}
	for i := range want {
		if vs[i] != want[i] {
			t.Errorf("ToGmath()[%d] = %v, want %v", i, vs[i], want[i])
		}
	}

	p := interop.FromGmath(append(vs, gmath.Vec{X: 1, Y: 1}))
	if !p.Equals(square()) {
		t.Errorf("FromGmath() = %v", p)
	}

	r := interop.Rect(square())
	if r.Min != (gmath.Vec{}) || r.Max != (gmath.Vec{X: 2, Y: 2}) {
		t.Errorf("Rect() = %v", r)
	}
}

func TestLerp(t *testing.T) {
	small := square()
	big := polygon.FromPoints(v2.Vec{}, v2.Vec{X: 4}, v2.Vec{X: 4, Y: 4}, v2.Vec{Y: 4})
	mid := interop.Lerp(small, big, 0.5)
	if a := mid.Area(); math.Abs(a-9) > 1e-9 {
		t.Errorf("midway area = %v, want 9", a)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched vertex counts")
		}
	}()
	interop.Lerp(small, polygon.FromPoints(v2.Vec{}), 0.5)
}
