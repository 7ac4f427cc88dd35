// Package tessellate turns the hulls of a scene into triangle meshes using
// a geometry kernel. Each hull with at least three vertices becomes one
// prism mesh; points, segments and empty hulls have no volume and are
// skipped.
package tessellate

import (
	"fmt"

	"github.com/chazu/planar/pkg/kernel"
	"github.com/chazu/planar/pkg/polygon"
	"github.com/chazu/planar/pkg/scene"
)

// Outline returns the hull vertices in counter-clockwise order as kernel
// outline coordinates.
func Outline(p *polygon.ConvexPolygon) [][2]float64 {
	vs := p.Vertices()
	out := make([][2]float64, len(vs))
	for i, v := range vs {
		out[i] = [2]float64{v.X, v.Y}
	}
	return out
}

// extrudable reports whether h can become a solid.
func extrudable(h *scene.Hull) bool {
	return h.Polygon != nil && !h.Polygon.ContainsNaN() && h.Polygon.NumberOfVertices() >= 3
}

// solid extrudes h and lifts it to its elevation.
func solid(k kernel.Kernel, h *scene.Hull) (kernel.Solid, error) {
	s, err := k.Prism(Outline(h.Polygon), h.Height)
	if err != nil {
		return nil, err
	}
	if h.Elevation != 0 {
		s = k.Translate(s, 0, 0, h.Elevation)
	}
	return s, nil
}

func meshName(h *scene.Hull) string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID.Short()
}

// Tessellate produces one mesh per extrudable hull, in scene order. The
// scene is not modified apart from bringing stale hulls up to date.
func Tessellate(s *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, h := range s.Ordered() {
		if !extrudable(h) {
			continue
		}
		sol, err := solid(k, h)
		if err != nil {
			return nil, fmt.Errorf("tessellate: hull %s: %w", meshName(h), err)
		}
		mesh, err := k.ToMesh(sol)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for hull %s: %w", meshName(h), err)
		}
		mesh.Name = meshName(h)
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// TessellateMerged unions every extrudable hull into a single mesh named
// name. It returns nil when the scene has nothing to extrude.
func TessellateMerged(s *scene.Scene, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var merged kernel.Solid
	for _, h := range s.Ordered() {
		if !extrudable(h) {
			continue
		}
		sol, err := solid(k, h)
		if err != nil {
			return nil, fmt.Errorf("tessellate: hull %s: %w", meshName(h), err)
		}
		if merged == nil {
			merged = sol
		} else {
			merged = k.Union(merged, sol)
		}
	}
	if merged == nil {
		return nil, nil
	}

	mesh, err := k.ToMesh(merged)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for merged scene: %w", err)
	}
	mesh.Name = name
	return mesh, nil
}
