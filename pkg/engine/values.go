package engine

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/planar/pkg/scene"
)

// sexpVec2 carries a point or direction between builtins.
type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpHull refers to a hull in the scene under construction.
type sexpHull struct {
	hull *scene.Hull
}

func (h *sexpHull) SexpString(ps *zygo.PrintState) string {
	if h.hull.Name != "" {
		return fmt.Sprintf("(hull %q)", h.hull.Name)
	}
	return fmt.Sprintf("(hull %s)", h.hull.ID.Short())
}
func (h *sexpHull) Type() *zygo.RegisteredType { return nil }

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec2(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toHull(s zygo.Sexp) (*scene.Hull, error) {
	if h, ok := s.(*sexpHull); ok {
		return h.hull, nil
	}
	return nil, fmt.Errorf("expected hull, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// collectPoints flattens vec2 values and lists of them.
func collectPoints(items []zygo.Sexp) ([]v2.Vec, error) {
	var out []v2.Vec
	for _, item := range items {
		if v, ok := item.(*sexpVec2); ok {
			out = append(out, v.vec)
			continue
		}
		inner, err := sexpListToSlice(item)
		if err != nil {
			return nil, fmt.Errorf("expected vec2 or list of vec2, got %T (%s)", item, item.SexpString(nil))
		}
		pts, err := collectPoints(inner)
		if err != nil {
			return nil, err
		}
		out = append(out, pts...)
	}
	return out, nil
}

func vecSexp(v v2.Vec) zygo.Sexp { return &sexpVec2{vec: v} }

// optVec returns v, or nil when ok is false.
func optVec(v v2.Vec, ok bool) zygo.Sexp {
	if !ok {
		return zygo.SexpNull
	}
	return vecSexp(v)
}

func vecList(vs []v2.Vec) zygo.Sexp {
	items := make([]zygo.Sexp, len(vs))
	for i, v := range vs {
		items[i] = vecSexp(v)
	}
	return zygo.MakeList(items)
}

func floatSexp(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }

func intSexp(n int) zygo.Sexp { return &zygo.SexpInt{Val: int64(n)} }

func boolSexp(b bool) zygo.Sexp { return &zygo.SexpBool{Val: b} }

// toProbeValue converts a script value into a JSON-friendly Go value.
// NaN becomes nil.
func toProbeValue(s zygo.Sexp) any {
	switch v := s.(type) {
	case *zygo.SexpFloat:
		if math.IsNaN(v.Val) || math.IsInf(v.Val, 0) {
			return nil
		}
		return v.Val
	case *zygo.SexpInt:
		return v.Val
	case *zygo.SexpBool:
		return v.Val
	case *zygo.SexpStr:
		return v.S
	case *sexpVec2:
		if math.IsNaN(v.vec.X) || math.IsNaN(v.vec.Y) {
			return nil
		}
		return [2]float64{v.vec.X, v.vec.Y}
	case *sexpHull:
		return v.hull.Name
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil
		}
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(s)
		if err != nil {
			break
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toProbeValue(item)
		}
		return out
	}
	return s.SexpString(nil)
}
