package scene

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding blocks tessellation or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tessellation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	HullID   HullID             // which hull has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.HullID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] hull %s: %s", e.Severity, e.HullID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking finding.
type ValidationWarning struct {
	HullID  HullID
	Message string
}

// ValidationResult bundles errors and warnings from all tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate runs the structural checks: every ordered ID resolves, names
// are unique, and hulls carry a polygon.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateOrder(s)...)
	errs = append(errs, validateNames(s)...)
	return errs
}

// ValidateAll runs structural and geometric checks.
func ValidateAll(s *Scene) ValidationResult {
	var result ValidationResult
	result.Errors = append(result.Errors, Validate(s)...)

	geoErrs, geoWarnings := validateGeometry(s)
	result.Errors = append(result.Errors, geoErrs...)
	result.Warnings = append(result.Warnings, geoWarnings...)
	return result
}

func validateOrder(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[HullID]bool, len(s.Order))
	for _, id := range s.Order {
		if s.Hulls[id] == nil {
			errs = append(errs, ValidationError{
				HullID:   id,
				Message:  "ordered hull does not exist",
				Severity: SeverityError,
			})
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				HullID:   id,
				Message:  "hull listed more than once",
				Severity: SeverityError,
			})
		}
		seen[id] = true
	}
	for id, h := range s.Hulls {
		if h.Polygon == nil {
			errs = append(errs, ValidationError{
				HullID:   id,
				Message:  "hull has no polygon",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	count := make(map[string]int)
	for _, h := range s.Ordered() {
		if h.Name != "" {
			count[h.Name]++
		}
	}
	for _, h := range s.Ordered() {
		if count[h.Name] > 1 && s.NameIndex[h.Name] == h.ID {
			errs = append(errs, ValidationError{
				HullID:   h.ID,
				Message:  fmt.Sprintf("name %q used by %d hulls", h.Name, count[h.Name]),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateGeometry flags NaN vertices and bad heights as errors, and
// hulls that cannot be extruded as warnings.
func validateGeometry(s *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning
	for _, h := range s.Ordered() {
		if h.Polygon == nil {
			continue
		}
		if h.Polygon.ContainsNaN() {
			errs = append(errs, ValidationError{
				HullID:   h.ID,
				Message:  fmt.Sprintf("hull %q has NaN coordinates", h.Name),
				Severity: SeverityError,
			})
			continue
		}
		if !(h.Height > 0) || math.IsInf(h.Height, 0) {
			errs = append(errs, ValidationError{
				HullID:   h.ID,
				Message:  fmt.Sprintf("hull %q height %v must be positive", h.Name, h.Height),
				Severity: SeverityError,
			})
		}
		switch n := h.Polygon.NumberOfVertices(); {
		case n == 0:
			warnings = append(warnings, ValidationWarning{
				HullID:  h.ID,
				Message: fmt.Sprintf("hull %q is empty", h.Name),
			})
		case n < 3:
			warnings = append(warnings, ValidationWarning{
				HullID:  h.ID,
				Message: fmt.Sprintf("hull %q is a %s and will not be extruded", h.Name, h.Polygon.Kind()),
			})
		}
	}
	return errs, warnings
}
