// Package scene holds the named hulls and probe results produced by one
// script evaluation. A scene is built once per evaluation and is not
// mutated afterwards.
package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/chazu/planar/pkg/polygon"
)

// Defaults for new scenes.
const (
	DefaultEpsilon = 0.0
	DefaultHeight  = 10.0
)

// Defaults contains scene-wide settings scripts may override.
type Defaults struct {
	Epsilon float64 `json:"epsilon"` // inside-test tolerance
	Height  float64 `json:"height"`  // extrusion height for new hulls
	Units   string  `json:"units"`   // "mm" only
}

// HullID is a content-addressed identifier for a hull.
type HullID string

// NewHullID derives an ID from the hull name and its position in the
// scene, so re-running the same script yields the same IDs.
func NewHullID(name string, seq int) HullID {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d/%s", seq, name)))
	return HullID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether the ID is unset.
func (id HullID) IsZero() bool { return id == "" }

// Short returns the first 8 characters for display.
func (id HullID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Hull is a named convex polygon with extrusion parameters.
type Hull struct {
	ID        HullID                 `json:"id"`
	Name      string                 `json:"name"`
	Polygon   *polygon.ConvexPolygon `json:"-"`
	Height    float64                `json:"height"`
	Elevation float64                `json:"elevation"`
}

// Probe records a labelled query result from a script.
type Probe struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Scene is the top-level result of evaluating a script.
type Scene struct {
	Hulls     map[HullID]*Hull  `json:"hulls"`
	Order     []HullID          `json:"order"`
	NameIndex map[string]HullID `json:"name_index"`
	Probes    []Probe           `json:"probes"`
	Defaults  Defaults          `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty scene with default settings.
func New() *Scene {
	return &Scene{
		Hulls:     make(map[HullID]*Hull),
		NameIndex: make(map[string]HullID),
		Defaults: Defaults{
			Epsilon: DefaultEpsilon,
			Height:  DefaultHeight,
			Units:   "mm",
		},
	}
}

// NewHull creates a hull with the scene's default height, assigns it an ID
// and adds it. An empty name leaves the hull anonymous.
func (s *Scene) NewHull(name string, p *polygon.ConvexPolygon) *Hull {
	h := &Hull{
		ID:      NewHullID(name, len(s.Order)),
		Name:    name,
		Polygon: p,
		Height:  s.Defaults.Height,
	}
	s.AddHull(h)
	return h
}

// AddHull adds a hull. It does not check for duplicates; Validate does.
func (s *Scene) AddHull(h *Hull) {
	s.Hulls[h.ID] = h
	s.Order = append(s.Order, h.ID)
	if h.Name != "" {
		s.NameIndex[h.Name] = h.ID
	}
}

// Lookup returns the hull with the given name, or nil.
func (s *Scene) Lookup(name string) *Hull {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Hulls[id]
}

// MustLookup returns the hull with the given name, or panics.
func (s *Scene) MustLookup(name string) *Hull {
	h := s.Lookup(name)
	if h == nil {
		panic(fmt.Sprintf("scene: no hull named %q", name))
	}
	return h
}

// Get returns the hull with the given ID, or nil.
func (s *Scene) Get(id HullID) *Hull {
	return s.Hulls[id]
}

// Ordered returns hulls in insertion order, skipping unknown IDs.
func (s *Scene) Ordered() []*Hull {
	out := make([]*Hull, 0, len(s.Order))
	for _, id := range s.Order {
		if h := s.Hulls[id]; h != nil {
			out = append(out, h)
		}
	}
	return out
}

// HullCount returns the number of hulls.
func (s *Scene) HullCount() int {
	return len(s.Hulls)
}

// AddProbe records a query result.
func (s *Scene) AddProbe(label string, value any) {
	s.Probes = append(s.Probes, Probe{Label: label, Value: value})
}

// Probe returns the last probe recorded under label.
func (s *Scene) Probe(label string) (Probe, bool) {
	for i := len(s.Probes) - 1; i >= 0; i-- {
		if s.Probes[i].Label == label {
			return s.Probes[i], true
		}
	}
	return Probe{}, false
}
