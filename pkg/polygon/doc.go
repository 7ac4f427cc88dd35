// Package polygon maintains the convex hull of a mutable set of 2D points
// and answers geometric queries against it: containment, signed distance,
// projection, line/ray/segment intersection, nearest vertex and edge, and
// edge visibility from an observer.
//
// A ConvexPolygon stores raw points and a validity flag. Mutations write
// into the store and mark the hull stale; queries recompute the hull on
// demand. Callers batching many mutations should call Update once at the
// end. Hull vertices are kept in counter-clockwise order, so the interior
// lies to the left of every edge.
//
// The hull may be degenerate: empty, a single point, or a segment. Every
// query branches on the vertex count; degenerate inputs never panic, they
// return a false/-1/NaN signal instead. Programmer errors such as a bad
// vertex index or count do panic.
//
// A ConvexPolygon is not safe for concurrent use.
package polygon
