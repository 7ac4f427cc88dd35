package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/planar/pkg/geometry"
	"github.com/chazu/planar/pkg/interop"
	"github.com/chazu/planar/pkg/polygon"
	"github.com/chazu/planar/pkg/scene"
)

// builtinFunc implements one script builtin over parsed arguments.
type builtinFunc func(a kwArgs) (zygo.Sexp, error)

// addBuiltin registers fn under name. Errors are prefixed with the
// script-facing (kebab-case) name, and panics raised by the polygon package
// for bad indices or counts come back as ordinary evaluation errors.
func addBuiltin(env *zygo.Zlisp, name string, fn builtinFunc) {
	display := strings.ReplaceAll(name, "_", "-")
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (result zygo.Sexp, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, err = zygo.SexpNull, fmt.Errorf("%s: %v", display, r)
			}
		}()
		result, err = fn(parseArgs(args))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
		}
		return result, nil
	})
}

func want(a kwArgs, n int) error {
	if len(a.positional) < n {
		return fmt.Errorf("requires %d arguments, got %d", n, len(a.positional))
	}
	return nil
}

func hullArg(a kwArgs, i int) (*scene.Hull, error) {
	h, err := toHull(a.positional[i])
	if err != nil {
		return nil, fmt.Errorf("argument %d: %w", i+1, err)
	}
	return h, nil
}

func vecArg(a kwArgs, i int) (v2.Vec, error) {
	v, err := toVec2(a.positional[i])
	if err != nil {
		return v2.Vec{}, fmt.Errorf("argument %d: %w", i+1, err)
	}
	return v, nil
}

// hullAndVec unpacks the common (op hull point) form.
func hullAndVec(a kwArgs) (*polygon.ConvexPolygon, v2.Vec, error) {
	if err := want(a, 2); err != nil {
		return nil, v2.Vec{}, err
	}
	h, err := hullArg(a, 0)
	if err != nil {
		return nil, v2.Vec{}, err
	}
	q, err := vecArg(a, 1)
	if err != nil {
		return nil, v2.Vec{}, err
	}
	return h.Polygon, q, nil
}

// hullAndTwoVecs unpacks (op hull a b), used by the line, ray and segment
// intersections.
func hullAndTwoVecs(a kwArgs) (*polygon.ConvexPolygon, v2.Vec, v2.Vec, error) {
	if err := want(a, 3); err != nil {
		return nil, v2.Vec{}, v2.Vec{}, err
	}
	p, first, err := hullAndVec(a)
	if err != nil {
		return nil, v2.Vec{}, v2.Vec{}, err
	}
	second, err := vecArg(a, 2)
	if err != nil {
		return nil, v2.Vec{}, v2.Vec{}, err
	}
	return p, first, second, nil
}

// floatOpt reads a keyword or positional float, falling back to def.
func floatOpt(a kwArgs, key string, pos int, def float64) (float64, error) {
	if v, ok := a.kw[key]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	}
	if pos >= 0 && pos < len(a.positional) {
		f, err := toFloat64(a.positional[pos])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	}
	return def, nil
}

// registerBuiltins installs the hull builtins into env. Hulls they create
// are added to s.
//
// Source must go through preprocessSource first so that :keyword and
// kebab-case names reach these functions in the expected form.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// (vec2 x y)
	addBuiltin(env, "vec2", func(a kwArgs) (zygo.Sexp, error) {
		if len(a.positional) != 2 {
			return nil, fmt.Errorf("requires exactly 2 arguments, got %d", len(a.positional))
		}
		x, err := toFloat64(a.positional[0])
		if err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		y, err := toFloat64(a.positional[1])
		if err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
		return vecSexp(v2.Vec{X: x, Y: y}), nil
	})

	// (hull "name" p1 p2 ... :height 20 :elevation 0)
	// (hull p1 p2 ...) creates an anonymous hull.
	addBuiltin(env, "hull", func(a kwArgs) (zygo.Sexp, error) {
		items := a.positional
		name := ""
		if len(items) > 0 {
			if str, ok := items[0].(*zygo.SexpStr); ok {
				name = str.S
				items = items[1:]
			}
		}
		pts, err := collectPoints(items)
		if err != nil {
			return nil, err
		}
		h := s.NewHull(name, polygon.FromPoints(pts...))
		if h.Height, err = floatOpt(a, "height", -1, s.Defaults.Height); err != nil {
			return nil, err
		}
		if h.Elevation, err = floatOpt(a, "elevation", -1, 0); err != nil {
			return nil, err
		}
		return &sexpHull{hull: h}, nil
	})

	// (lerp "name" a b t) blends two hulls with equal vertex counts. The
	// result takes a's height and the blended elevation.
	addBuiltin(env, "lerp", func(a kwArgs) (zygo.Sexp, error) {
		items := a.positional
		name := ""
		if len(items) > 0 {
			if str, ok := items[0].(*zygo.SexpStr); ok {
				name = str.S
				a.positional = items[1:]
			}
		}
		if err := want(a, 3); err != nil {
			return nil, err
		}
		from, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		to, err := hullArg(a, 1)
		if err != nil {
			return nil, err
		}
		t, err := toFloat64(a.positional[2])
		if err != nil {
			return nil, fmt.Errorf("t: %w", err)
		}
		na, nb := from.Polygon.NumberOfVertices(), to.Polygon.NumberOfVertices()
		if na != nb {
			return nil, fmt.Errorf("hulls have %d and %d vertices", na, nb)
		}
		h := s.NewHull(name, interop.Lerp(from.Polygon, to.Polygon, t))
		h.Height = from.Height
		h.Elevation = from.Elevation + (to.Elevation-from.Elevation)*t
		return &sexpHull{hull: h}, nil
	})

	// (add-vertex h p ...) leaves the hull stale until the next query.
	addBuiltin(env, "add_vertex", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 2); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		pts, err := collectPoints(a.positional[1:])
		if err != nil {
			return nil, err
		}
		h.Polygon.AddVertices(pts...)
		return a.positional[0], nil
	})

	// (update h)
	addBuiltin(env, "update", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		h.Polygon.Update()
		return a.positional[0], nil
	})

	// (clear h)
	addBuiltin(env, "clear", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		h.Polygon.Clear()
		return a.positional[0], nil
	})

	// (translate h dx dy)
	addBuiltin(env, "translate", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 3); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		dx, err := toFloat64(a.positional[1])
		if err != nil {
			return nil, fmt.Errorf("dx: %w", err)
		}
		dy, err := toFloat64(a.positional[2])
		if err != nil {
			return nil, fmt.Errorf("dy: %w", err)
		}
		h.Polygon.Translate(dx, dy)
		return a.positional[0], nil
	})

	// (scale h factor) scales about the origin; (scale h factor :about p)
	// scales about p.
	addBuiltin(env, "scale", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 2); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		f, err := toFloat64(a.positional[1])
		if err != nil {
			return nil, fmt.Errorf("factor: %w", err)
		}
		if v, ok := a.kw["about"]; ok {
			c, err := toVec2(v)
			if err != nil {
				return nil, fmt.Errorf("about: %w", err)
			}
			h.Polygon.ScaleAbout(c, f)
		} else {
			h.Polygon.Scale(f)
		}
		return a.positional[0], nil
	})

	// (bounds h) returns the (min max) corners of the bounding box.
	addBuiltin(env, "bounds", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		r := interop.Rect(h.Polygon)
		return vecList([]v2.Vec{{X: r.Min.X, Y: r.Min.Y}, {X: r.Max.X, Y: r.Max.Y}}), nil
	})

	// (vertex-count h)
	addBuiltin(env, "vertex_count", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		return intSexp(h.Polygon.NumberOfVertices()), nil
	})

	// (vertices h) lists the hull in counter-clockwise order.
	addBuiltin(env, "vertices", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		return vecList(h.Polygon.Vertices()), nil
	})

	// (vertex h i)
	addBuiltin(env, "vertex", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 2); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		i, err := toInt(a.positional[1])
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		return vecSexp(h.Polygon.Vertex(i)), nil
	})

	// (area h), (perimeter h)
	for name, get := range map[string]func(*polygon.ConvexPolygon) float64{
		"area":      (*polygon.ConvexPolygon).Area,
		"perimeter": (*polygon.ConvexPolygon).Perimeter,
	} {
		addBuiltin(env, name, func(a kwArgs) (zygo.Sexp, error) {
			if err := want(a, 1); err != nil {
				return nil, err
			}
			h, err := hullArg(a, 0)
			if err != nil {
				return nil, err
			}
			return floatSexp(get(h.Polygon)), nil
		})
	}

	// (centroid h) is nil for an empty hull.
	addBuiltin(env, "centroid", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		c := h.Polygon.Centroid()
		return optVec(c, !geometry.ContainsNaN(c)), nil
	})

	// (inside h p) uses the scene epsilon; (inside h p eps) or
	// (inside h p :epsilon eps) overrides it.
	addBuiltin(env, "inside", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		eps, err := floatOpt(a, "epsilon", 2, s.Defaults.Epsilon)
		if err != nil {
			return nil, err
		}
		return boolSexp(p.IsPointInside(q, eps)), nil
	})

	// (signed-distance h p) is negative inside.
	addBuiltin(env, "signed_distance", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		return floatSexp(p.SignedDistance(q)), nil
	})

	// (project h p) is nil when p is inside.
	addBuiltin(env, "project", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		return optVec(p.OrthogonalProjection(q)), nil
	})

	// (closest-vertex h p)
	addBuiltin(env, "closest_vertex", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		return optVec(p.ClosestVertex(q)), nil
	})

	// (closest-edge h p) returns (list start end), or nil with fewer than
	// two vertices.
	addBuiltin(env, "closest_edge", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		e, ok := p.ClosestEdge(q)
		if !ok {
			return zygo.SexpNull, nil
		}
		return vecList([]v2.Vec{e.A, e.B}), nil
	})

	// (intersect-line h point direction)
	addBuiltin(env, "intersect_line", func(a kwArgs) (zygo.Sexp, error) {
		p, at, dir, err := hullAndTwoVecs(a)
		if err != nil {
			return nil, err
		}
		return vecList(p.IntersectionWithLine(geometry.Line{Point: at, Direction: dir})), nil
	})

	// (intersect-ray h origin direction)
	addBuiltin(env, "intersect_ray", func(a kwArgs) (zygo.Sexp, error) {
		p, at, dir, err := hullAndTwoVecs(a)
		if err != nil {
			return nil, err
		}
		return vecList(p.IntersectionWithRay(geometry.Ray{Origin: at, Direction: dir})), nil
	})

	// (intersect-segment h a b)
	addBuiltin(env, "intersect_segment", func(a kwArgs) (zygo.Sexp, error) {
		p, from, to, err := hullAndTwoVecs(a)
		if err != nil {
			return nil, err
		}
		return vecList(p.IntersectionWithSegment(geometry.Segment{A: from, B: to})), nil
	})

	// (ray-closest h origin direction) is nil when the ray hits the hull.
	addBuiltin(env, "ray_closest", func(a kwArgs) (zygo.Sexp, error) {
		p, at, dir, err := hullAndTwoVecs(a)
		if err != nil {
			return nil, err
		}
		return optVec(p.ClosestPointWithRay(geometry.Ray{Origin: at, Direction: dir})), nil
	})

	// (line-of-sight h observer) returns the first and last vertex of the
	// boundary chain visible from observer, or nil.
	addBuiltin(env, "line_of_sight", func(a kwArgs) (zygo.Sexp, error) {
		p, q, err := hullAndVec(a)
		if err != nil {
			return nil, err
		}
		start, end, ok := p.LineOfSightVertices(q)
		if !ok {
			return zygo.SexpNull, nil
		}
		return vecList([]v2.Vec{start, end}), nil
	})

	// (can-see h edge-index observer)
	addBuiltin(env, "can_see", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 3); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		i, err := toInt(a.positional[1])
		if err != nil {
			return nil, fmt.Errorf("edge index: %w", err)
		}
		obs, err := vecArg(a, 2)
		if err != nil {
			return nil, err
		}
		return boolSexp(h.Polygon.CanObserverSeeEdge(i, obs)), nil
	})

	// (defaults :epsilon 0.01 :height 20 :units "mm")
	addBuiltin(env, "defaults", func(a kwArgs) (zygo.Sexp, error) {
		d := s.Defaults
		var err error
		if d.Epsilon, err = floatOpt(a, "epsilon", -1, d.Epsilon); err != nil {
			return nil, err
		}
		if d.Height, err = floatOpt(a, "height", -1, d.Height); err != nil {
			return nil, err
		}
		if v, ok := a.kw["units"]; ok {
			u, err := toString(v)
			if err != nil {
				return nil, fmt.Errorf("units: %w", err)
			}
			if u != "mm" {
				return nil, fmt.Errorf("units: unsupported unit %q", u)
			}
		}
		s.Defaults = d
		return zygo.SexpNull, nil
	})

	// (extrude h 20) or (extrude h :height 20 :elevation 5)
	addBuiltin(env, "extrude", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 1); err != nil {
			return nil, err
		}
		h, err := hullArg(a, 0)
		if err != nil {
			return nil, err
		}
		height, err := floatOpt(a, "height", 1, h.Height)
		if err != nil {
			return nil, err
		}
		elevation, err := floatOpt(a, "elevation", 2, h.Elevation)
		if err != nil {
			return nil, err
		}
		h.Height, h.Elevation = height, elevation
		return a.positional[0], nil
	})

	// (probe "label" value) records value in the scene and returns it.
	addBuiltin(env, "probe", func(a kwArgs) (zygo.Sexp, error) {
		if err := want(a, 2); err != nil {
			return nil, err
		}
		label, err := toString(a.positional[0])
		if err != nil {
			return nil, fmt.Errorf("label: %w", err)
		}
		s.AddProbe(label, toProbeValue(a.positional[1]))
		return a.positional[1], nil
	})
}
