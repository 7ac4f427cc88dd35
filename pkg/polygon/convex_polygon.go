package polygon

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/geometry"
)

// Kind classifies a hull by its vertex count.
type Kind int

const (
	KindEmpty   Kind = iota // no vertices
	KindPoint               // one vertex
	KindSegment             // two vertices
	KindPolygon             // three or more vertices
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPoint:
		return "point"
	case KindSegment:
		return "segment"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ConvexPolygon is the convex hull of the points written into it.
// The zero value is an empty, up-to-date polygon.
type ConvexPolygon struct {
	vertices []v2.Vec // raw points while stale, CCW hull once updated
	scratch  []v2.Vec
	stale    bool
	cache    derived
}

// New returns an empty polygon.
func New() *ConvexPolygon {
	return &ConvexPolygon{}
}

// FromPoints returns the hull of the given points.
func FromPoints(points ...v2.Vec) *ConvexPolygon {
	return FromSlice(points, len(points))
}

// FromSlice returns the hull of points[:count]. It panics when count is
// out of range.
func FromSlice(points []v2.Vec, count int) *ConvexPolygon {
	p := New()
	p.SetAndUpdate(points, count)
	return p
}

// Clone returns an independent copy of p, including its stale state.
func (p *ConvexPolygon) Clone() *ConvexPolygon {
	c := &ConvexPolygon{
		vertices: make([]v2.Vec, len(p.vertices), cap(p.vertices)),
		stale:    p.stale,
		cache:    p.cache,
	}
	copy(c.vertices, p.vertices)
	return c
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// AddVertex stores a point and marks the hull stale.
func (p *ConvexPolygon) AddVertex(v v2.Vec) {
	p.vertices = append(p.vertices, v)
	p.invalidate()
}

// AddVertices stores several points and marks the hull stale.
func (p *ConvexPolygon) AddVertices(vs ...v2.Vec) {
	if len(vs) == 0 {
		return
	}
	p.vertices = append(p.vertices, vs...)
	p.invalidate()
}

// RemoveVertex removes the stored point at index by swapping in the last
// point. The index refers to the current store, which is the hull order
// when the polygon is up to date.
func (p *ConvexPolygon) RemoveVertex(index int) {
	p.checkIndex(index)
	last := len(p.vertices) - 1
	p.vertices[index] = p.vertices[last]
	p.vertices = p.vertices[:last]
	p.invalidate()
}

// Clear drops all points, keeping capacity, and marks the hull stale.
func (p *ConvexPolygon) Clear() {
	p.vertices = p.vertices[:0]
	p.invalidate()
}

// ClearAndUpdate drops all points and leaves an up-to-date empty hull.
func (p *ConvexPolygon) ClearAndUpdate() {
	p.Clear()
	p.Update()
}

// Set replaces the stored points with points[:count]. It panics, leaving
// p untouched, when count is negative or exceeds len(points).
func (p *ConvexPolygon) Set(points []v2.Vec, count int) {
	if count < 0 || count > len(points) {
		panic(fmt.Sprintf("polygon: count %d out of range [0,%d]", count, len(points)))
	}
	p.vertices = append(p.vertices[:0], points[:count]...)
	p.invalidate()
}

// SetAndUpdate is Set followed by Update.
func (p *ConvexPolygon) SetAndUpdate(points []v2.Vec, count int) {
	p.Set(points, count)
	p.Update()
}

// SetFrom replaces the stored points with the hull of other.
func (p *ConvexPolygon) SetFrom(other *ConvexPolygon) {
	other.ensure()
	p.vertices = append(p.vertices[:0], other.vertices...)
	p.invalidate()
	p.Update()
}

// NotifyVerticesChanged marks the hull stale after points were modified
// through means the polygon cannot observe.
func (p *ConvexPolygon) NotifyVerticesChanged() {
	p.invalidate()
}

func (p *ConvexPolygon) invalidate() {
	p.stale = true
	p.cache.valid = false
}

// IsUpToDate reports whether the stored points are the current hull.
func (p *ConvexPolygon) IsUpToDate() bool {
	return !p.stale
}

func (p *ConvexPolygon) ensure() {
	if p.stale {
		p.Update()
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// NumberOfVertices returns the hull vertex count.
func (p *ConvexPolygon) NumberOfVertices() int {
	p.ensure()
	return len(p.vertices)
}

// Kind classifies the hull by vertex count.
func (p *ConvexPolygon) Kind() Kind {
	switch n := p.NumberOfVertices(); {
	case n == 0:
		return KindEmpty
	case n == 1:
		return KindPoint
	case n == 2:
		return KindSegment
	default:
		return KindPolygon
	}
}

// IsEmpty reports whether the hull has no vertices.
func (p *ConvexPolygon) IsEmpty() bool {
	return p.NumberOfVertices() == 0
}

// ContainsNaN reports whether any hull vertex has a NaN coordinate.
func (p *ConvexPolygon) ContainsNaN() bool {
	p.ensure()
	for _, v := range p.vertices {
		if geometry.ContainsNaN(v) {
			return true
		}
	}
	return false
}

// Vertex returns hull vertex i. It panics when i is out of range.
func (p *ConvexPolygon) Vertex(i int) v2.Vec {
	p.ensure()
	p.checkIndex(i)
	return p.vertices[i]
}

// NextIndex returns the index following i in CCW order.
func (p *ConvexPolygon) NextIndex(i int) int {
	p.ensure()
	p.checkIndex(i)
	return next(i, len(p.vertices))
}

// PreviousIndex returns the index preceding i in CCW order.
func (p *ConvexPolygon) PreviousIndex(i int) int {
	p.ensure()
	p.checkIndex(i)
	return previous(i, len(p.vertices))
}

// NextVertex returns the vertex following i in CCW order.
func (p *ConvexPolygon) NextVertex(i int) v2.Vec {
	return p.vertices[p.NextIndex(i)]
}

// PreviousVertex returns the vertex preceding i in CCW order.
func (p *ConvexPolygon) PreviousVertex(i int) v2.Vec {
	return p.vertices[p.PreviousIndex(i)]
}

// Vertices returns a copy of the hull vertices in CCW order.
func (p *ConvexPolygon) Vertices() []v2.Vec {
	p.ensure()
	out := make([]v2.Vec, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// Edge returns the edge from vertex i to its successor. For a single
// vertex hull the edge is degenerate.
func (p *ConvexPolygon) Edge(i int) geometry.Segment {
	p.ensure()
	p.checkIndex(i)
	return geometry.Segment{A: p.vertices[i], B: p.vertices[next(i, len(p.vertices))]}
}

func (p *ConvexPolygon) checkIndex(i int) {
	if i < 0 || i >= len(p.vertices) {
		panic(fmt.Sprintf("polygon: vertex index %d out of range [0,%d)", i, len(p.vertices)))
	}
}

func next(i, n int) int {
	i++
	if i == n {
		return 0
	}
	return i
}

func previous(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

// ---------------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------------

// Equals reports whether both hulls have identical vertices in the same
// order.
func (p *ConvexPolygon) Equals(other *ConvexPolygon) bool {
	return p.EpsilonEquals(other, 0)
}

// EpsilonEquals reports whether both hulls have the same vertex count and
// pairwise vertices within epsilon, in the same order.
func (p *ConvexPolygon) EpsilonEquals(other *ConvexPolygon, epsilon float64) bool {
	if other == nil {
		return false
	}
	p.ensure()
	other.ensure()
	if len(p.vertices) != len(other.vertices) {
		return false
	}
	for i := range p.vertices {
		if !geometry.EpsilonEquals(p.vertices[i], other.vertices[i], epsilon) {
			return false
		}
	}
	return true
}

// GeometricallyEquals reports whether both hulls describe the same shape
// within epsilon, regardless of which vertex comes first.
func (p *ConvexPolygon) GeometricallyEquals(other *ConvexPolygon, epsilon float64) bool {
	if other == nil {
		return false
	}
	p.ensure()
	other.ensure()
	n := len(p.vertices)
	if n != len(other.vertices) {
		return false
	}
	if n == 0 {
		return true
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n && match; i++ {
			match = geometry.EpsilonEquals(p.vertices[i], other.vertices[(i+shift)%n], epsilon)
		}
		if match {
			return true
		}
	}
	return false
}

func (p *ConvexPolygon) String() string {
	p.ensure()
	var sb strings.Builder
	fmt.Fprintf(&sb, "ConvexPolygon(%d): [", len(p.vertices))
	for i, v := range p.vertices {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%g, %g)", v.X, v.Y)
	}
	sb.WriteString("]")
	return sb.String()
}
