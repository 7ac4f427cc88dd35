// Package interop converts hulls to and from other geometry libraries:
// orb geometries and GeoJSON for GIS tooling, gmath vectors for game code.
package interop

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/chazu/planar/pkg/polygon"
	"github.com/chazu/planar/pkg/scene"
)

func toPoint(v v2.Vec) orb.Point { return orb.Point{v.X, v.Y} }

func fromPoint(p orb.Point) v2.Vec { return v2.Vec{X: p[0], Y: p[1]} }

// Ring returns the hull as a closed counter-clockwise ring, or nil for an
// empty hull.
func Ring(p *polygon.ConvexPolygon) orb.Ring {
	vs := p.Vertices()
	if len(vs) == 0 {
		return nil
	}
	r := make(orb.Ring, 0, len(vs)+1)
	for _, v := range vs {
		r = append(r, toPoint(v))
	}
	return append(r, r[0])
}

// Geometry returns the natural orb geometry for the hull: nothing, a
// point, a line string or a polygon.
func Geometry(p *polygon.ConvexPolygon) orb.Geometry {
	vs := p.Vertices()
	switch len(vs) {
	case 0:
		return nil
	case 1:
		return toPoint(vs[0])
	case 2:
		return orb.LineString{toPoint(vs[0]), toPoint(vs[1])}
	default:
		return orb.Polygon{Ring(p)}
	}
}

// Bound returns the hull's bounding box as an orb.Bound.
func Bound(p *polygon.ConvexPolygon) orb.Bound {
	box := p.BoundingBox()
	return orb.Bound{Min: toPoint(box.Min), Max: toPoint(box.Max)}
}

// FromGeometry returns the convex hull of every coordinate in g.
func FromGeometry(g orb.Geometry) (*polygon.ConvexPolygon, error) {
	var pts []v2.Vec
	add := func(ps ...orb.Point) {
		for _, q := range ps {
			pts = append(pts, fromPoint(q))
		}
	}

	switch g := g.(type) {
	case orb.Point:
		add(g)
	case orb.MultiPoint:
		add(g...)
	case orb.LineString:
		add(g...)
	case orb.Ring:
		add(g...)
	case orb.Polygon:
		for _, r := range g {
			add(r...)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				add(r...)
			}
		}
	case orb.Bound:
		add(g.Min, orb.Point{g.Max[0], g.Min[1]}, g.Max, orb.Point{g.Min[0], g.Max[1]})
	case nil:
	default:
		return nil, fmt.Errorf("interop: unsupported geometry %s", g.GeoJSONType())
	}
	return polygon.FromPoints(pts...), nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// SceneFeatures exports a scene as a GeoJSON feature collection: one
// feature per non-empty hull, plus a point feature for every probe whose
// value is a point. Hulls with NaN coordinates cannot be encoded and are
// left out.
func SceneFeatures(s *scene.Scene) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if s == nil {
		return fc
	}

	for _, h := range s.Ordered() {
		if h.Polygon == nil || h.Polygon.ContainsNaN() {
			continue
		}
		g := Geometry(h.Polygon)
		if g == nil {
			continue
		}
		f := geojson.NewFeature(g)
		f.ID = string(h.ID)
		f.Properties["kind"] = "hull"
		f.Properties["name"] = h.Name
		f.Properties["height"] = h.Height
		f.Properties["elevation"] = h.Elevation
		f.Properties["vertices"] = h.Polygon.NumberOfVertices()
		if a := h.Polygon.Area(); finite(a) {
			f.Properties["area"] = a
		}
		fc.Append(f)
	}

	for _, pr := range s.Probes {
		pt, ok := pr.Value.([2]float64)
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.Point(pt))
		f.Properties["kind"] = "probe"
		f.Properties["label"] = pr.Label
		fc.Append(f)
	}
	return fc
}
