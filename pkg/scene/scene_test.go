package scene_test

import (
	"math"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planar/pkg/polygon"
	"github.com/chazu/planar/pkg/scene"
)

func square() *polygon.ConvexPolygon {
	return polygon.FromPoints(v2.Vec{X: -1, Y: -1}, v2.Vec{X: 1, Y: -1}, v2.Vec{X: 1, Y: 1}, v2.Vec{X: -1, Y: 1})
}

func TestNewDefaults(t *testing.T) {
	s := scene.New()
	if s.Defaults.Height != scene.DefaultHeight {
		t.Errorf("Height: got %v, want %v", s.Defaults.Height, scene.DefaultHeight)
	}
	if s.Defaults.Units != "mm" {
		t.Errorf("Units: got %q, want mm", s.Defaults.Units)
	}
	if s.HullCount() != 0 {
		t.Errorf("HullCount: got %d, want 0", s.HullCount())
	}
}

func TestHullIDDeterministic(t *testing.T) {
	a := scene.NewHullID("base", 0)
	b := scene.NewHullID("base", 0)
	c := scene.NewHullID("base", 1)
	if a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
	if a == c {
		t.Error("different positions gave the same ID")
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() length: got %d, want 8", len(a.Short()))
	}
	if !scene.HullID("").IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestAddAndLookup(t *testing.T) {
	s := scene.New()
	h := s.NewHull("base", square())
	if h.Height != scene.DefaultHeight {
		t.Errorf("new hull height: got %v, want default", h.Height)
	}
	if got := s.Lookup("base"); got != h {
		t.Errorf("Lookup: got %v, want %v", got, h)
	}
	if got := s.Get(h.ID); got != h {
		t.Errorf("Get: got %v, want %v", got, h)
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup of unknown name should be nil")
	}

	anon := s.NewHull("", square())
	if s.HullCount() != 2 {
		t.Fatalf("HullCount: got %d, want 2", s.HullCount())
	}
	ordered := s.Ordered()
	if ordered[0] != h || ordered[1] != anon {
		t.Errorf("Ordered: got %v", ordered)
	}
	if _, ok := s.NameIndex[""]; ok {
		t.Error("anonymous hull should not be indexed by name")
	}
}

func TestMustLookupPanics(t *testing.T) {
	s := scene.New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, `"ghost"`) {
			t.Errorf("panic message: %v", r)
		}
	}()
	s.MustLookup("ghost")
}

func TestProbes(t *testing.T) {
	s := scene.New()
	s.AddProbe("area", 4.0)
	s.AddProbe("inside", true)
	s.AddProbe("area", 9.0)

	p, ok := s.Probe("area")
	if !ok {
		t.Fatal("probe not found")
	}
	if p.Value != 9.0 {
		t.Errorf("Probe returns last value: got %v, want 9", p.Value)
	}
	if _, ok := s.Probe("nope"); ok {
		t.Error("unknown probe found")
	}
	if len(s.Probes) != 3 {
		t.Errorf("Probes: got %d, want 3", len(s.Probes))
	}
}

func TestValidateClean(t *testing.T) {
	s := scene.New()
	s.NewHull("a", square())
	s.NewHull("b", square())
	res := scene.ValidateAll(s)
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("clean scene: errors %v warnings %v", res.Errors, res.Warnings)
	}
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name  string
		build func(*scene.Scene)
		want  string
	}{
		{
			name: "duplicate name",
			build: func(s *scene.Scene) {
				s.NewHull("a", square())
				s.NewHull("a", square())
			},
			want: "used by 2 hulls",
		},
		{
			name: "dangling order",
			build: func(s *scene.Scene) {
				s.Order = append(s.Order, "deadbeef")
			},
			want: "does not exist",
		},
		{
			name: "listed twice",
			build: func(s *scene.Scene) {
				h := s.NewHull("a", square())
				s.Order = append(s.Order, h.ID)
			},
			want: "more than once",
		},
		{
			name: "no polygon",
			build: func(s *scene.Scene) {
				s.NewHull("a", nil)
			},
			want: "no polygon",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New()
			tt.build(s)
			errs := scene.Validate(s)
			if len(errs) != 1 {
				t.Fatalf("Validate: got %d errors %v, want 1", len(errs), errs)
			}
			if !strings.Contains(errs[0].Error(), tt.want) {
				t.Errorf("error %q does not mention %q", errs[0].Error(), tt.want)
			}
			if errs[0].Severity != scene.SeverityError {
				t.Errorf("severity: got %v, want error", errs[0].Severity)
			}
		})
	}
}

func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name         string
		p            *polygon.ConvexPolygon
		height       float64
		wantErrors   int
		wantWarnings int
	}{
		{"polygon", square(), 5, 0, 0},
		{"empty", polygon.New(), 5, 0, 1},
		{"point", polygon.FromPoints(v2.Vec{X: 1, Y: 1}), 5, 0, 1},
		{"segment", polygon.FromPoints(v2.Vec{}, v2.Vec{X: 1}), 5, 0, 1},
		{"zero height", square(), 0, 1, 0},
		{"negative height", square(), -2, 1, 0},
		{"nan height", square(), math.NaN(), 1, 0},
		{"infinite height", square(), math.Inf(1), 1, 0},
		{"nan vertex", polygon.FromPoints(v2.Vec{X: math.NaN()}, v2.Vec{X: 1}, v2.Vec{Y: 1}), 5, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New()
			h := s.NewHull("h", tt.p)
			h.Height = tt.height
			res := scene.ValidateAll(s)
			if len(res.Errors) != tt.wantErrors {
				t.Errorf("errors: got %v, want %d", res.Errors, tt.wantErrors)
			}
			if len(res.Warnings) != tt.wantWarnings {
				t.Errorf("warnings: got %v, want %d", res.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	if scene.SeverityError.String() != "error" || scene.SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if got := scene.ValidationSeverity(9).String(); got != "ValidationSeverity(9)" {
		t.Errorf("unknown severity: got %q", got)
	}
}

func TestValidationErrorFormat(t *testing.T) {
	e := scene.ValidationError{Message: "bad", Severity: scene.SeverityWarning}
	if got := e.Error(); got != "[warning] bad" {
		t.Errorf("scene-level: got %q", got)
	}
	e.HullID = "0123456789abcdef"
	if got := e.Error(); got != "[warning] hull 01234567: bad" {
		t.Errorf("hull-level: got %q", got)
	}
}
