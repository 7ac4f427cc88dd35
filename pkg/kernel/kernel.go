// Package kernel defines the abstract solid kernel used to turn planar
// hulls into renderable geometry. Implementations (sdfx) extrude outlines
// and mesh the result; the rest of the system only sees this interface.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid kernel interface.
type Kernel interface {
	// Prism extrudes a closed CCW outline in the XY plane from z=0 up to
	// z=height. The outline needs at least three vertices.
	Prism(outline [][2]float64, height float64) (Solid, error)

	// Union merges two solids.
	Union(a, b Solid) Solid

	// Translate moves a solid.
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh tessellates a solid.
	ToMesh(s Solid) (*Mesh, error)
}
