package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/chazu/planar/pkg/engine"
	"github.com/chazu/planar/pkg/interop"
	"github.com/chazu/planar/pkg/kernel"
	"github.com/chazu/planar/pkg/kernel/sdfx"
	"github.com/chazu/planar/pkg/scene"
	"github.com/chazu/planar/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to hulls.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs the script-to-mesh pipeline.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel

	// Merged unions every hull into a single mesh named MergedMeshName.
	Merged bool
}

// MergedMeshName names the single mesh built when App.Merged is set.
const MergedMeshName = "scene"

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	Indices  []uint32   `json:"indices"`
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	Min      [3]float32 `json:"min"`
	Max      [3]float32 `json:"max"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// HullData summarises one scene hull.
type HullData struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Vertices  [][2]float64 `json:"vertices"`
	Area      *float64     `json:"area,omitempty"`
	Perimeter *float64     `json:"perimeter,omitempty"`
	Height    float64      `json:"height"`
	Elevation float64      `json:"elevation"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
	Probes   []scene.Probe   `json:"probes"`
	Hulls    []HullData      `json:"hulls"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return NewAppWithKernel(sdfx.New())
}

// NewAppWithKernel creates an App that meshes with k.
func NewAppWithKernel(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
	}
}

func finitePtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func hullData(h *scene.Hull) HullData {
	d := HullData{
		ID:        string(h.ID),
		Name:      h.Name,
		Height:    h.Height,
		Elevation: h.Elevation,
		Vertices:  [][2]float64{},
	}
	if h.Polygon == nil {
		return d
	}
	d.Kind = h.Polygon.Kind().String()
	d.Vertices = tessellate.Outline(h.Polygon)
	d.Area = finitePtr(h.Polygon.Area())
	d.Perimeter = finitePtr(h.Polygon.Perimeter())
	return d
}

// Evaluate takes script source and returns mesh data, hull summaries,
// probes and errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
		Probes:   []scene.Probe{},
		Hulls:    []HullData{},
	}

	// Step 1: Evaluate the script into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Validate. Errors stop the pipeline; warnings are reported.
	vr := scene.ValidateAll(s)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	if len(vr.Errors) > 0 {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
		}
		return result
	}

	for _, h := range s.Ordered() {
		result.Hulls = append(result.Hulls, hullData(h))
	}
	result.Probes = append(result.Probes, s.Probes...)

	// Step 3: Tessellate the scene into triangle meshes.
	meshes, err := a.tessellate(s)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	for i, m := range meshes {
		lo, hi := m.Bounds()
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
			Min:      lo,
			Max:      hi,
		})
	}

	return result
}

func (a *App) tessellate(s *scene.Scene) ([]*kernel.Mesh, error) {
	if !a.Merged {
		return tessellate.Tessellate(s, a.kernel)
	}
	m, err := tessellate.TessellateMerged(s, a.kernel, MergedMeshName)
	if err != nil || m == nil {
		return nil, err
	}
	return []*kernel.Mesh{m}, nil
}

// GeoJSON evaluates source and returns the scene as a GeoJSON
// FeatureCollection. No meshes are built.
func (a *App) GeoJSON(source string) ([]byte, error) {
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("evaluation failed: %w", evalErrs[0])
	}
	return json.Marshal(interop.SceneFeatures(s))
}
