// Package viewport derives the render scale for a parcel preview.
//
// A [Scaler] maps the characteristic dimension of a scene (its longest edge,
// in millimeters) to render units per millimeter. The result is always within
// [Scaler.Min, Scaler.Max], so a tiny item never fills the viewport and a
// large one never shrinks to nothing.
package viewport

import "math"

// Default scaling parameters, in render units per millimeter. A 180-unit
// budget fills the default camera frame; the clamp keeps scenes between
// roughly 2 cm and 2.25 m on screen at a sane size.
const (
	DefaultBudget = 180.0
	DefaultMin    = 0.08
	DefaultMax    = 0.4
	DefaultFloor  = 1.0
)

// Scaler computes clamp(Budget / max(dim, Floor), Min, Max).
type Scaler struct {
	Budget float64 // render units the longest edge should occupy
	Min    float64 // lower clamp for the scale
	Max    float64 // upper clamp for the scale
	Floor  float64 // smallest dimension divided by, in millimeters
}

// Default returns a Scaler with the package defaults.
func Default() Scaler {
	return Scaler{Budget: DefaultBudget, Min: DefaultMin, Max: DefaultMax, Floor: DefaultFloor}
}

// Scale returns render units per millimeter for a scene whose longest edge
// is dimMm. NaN, infinite and negative inputs are treated as the floor.
func (s Scaler) Scale(dimMm float64) float64 {
	s = s.normalized()
	if math.IsNaN(dimMm) || math.IsInf(dimMm, 0) || dimMm < s.Floor {
		dimMm = s.Floor
	}
	return clamp(s.Budget/dimMm, s.Min, s.Max)
}

// normalized fills zero or invalid fields from the defaults and orders the
// clamp bounds, so a partially configured Scaler still returns a positive
// finite value.
func (s Scaler) normalized() Scaler {
	d := Default()
	if !positive(s.Budget) {
		s.Budget = d.Budget
	}
	if !positive(s.Min) {
		s.Min = d.Min
	}
	if !positive(s.Max) {
		s.Max = d.Max
	}
	if !positive(s.Floor) {
		s.Floor = d.Floor
	}
	if s.Min > s.Max {
		s.Min, s.Max = s.Max, s.Min
	}
	return s
}

func positive(f float64) bool { return f > 0 && !math.IsInf(f, 0) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
