package geom

import "math"

// Vec3 is a point in packing space, in millimeters.
type Vec3 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z"`
}

// Add returns the componentwise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale multiplies every component by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Finite reports whether no component is NaN or infinite.
func (v Vec3) Finite() bool { return finite(v.X) && finite(v.Y) && finite(v.Z) }

// Size3 is an extent in packing space, in millimeters.
type Size3 struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Depth  float64 `json:"depth" yaml:"depth" toml:"depth"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Vec returns the size as a packing-space vector (width, depth, height).
func (s Size3) Vec() Vec3 { return Vec3{s.Width, s.Depth, s.Height} }

// Sanitized returns the size with NaN, infinite and negative edges set to 0.
func (s Size3) Sanitized() Size3 {
	return Size3{Width: clampEdge(s.Width), Depth: clampEdge(s.Depth), Height: clampEdge(s.Height)}
}

// Placement is one item positioned by the packing engine. Position is the
// minimum corner of the item.
type Placement struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Position Vec3   `json:"position" yaml:"position" toml:"position"`
	Size     Size3  `json:"size" yaml:"size" toml:"size"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty" toml:"color"`
}

// Max returns the corner opposite to Position (position + size).
func (p Placement) Max() Vec3 { return p.Position.Add(p.Size.Sanitized().Vec()) }

// Finite reports whether both corners of p are finite.
func (p Placement) Finite() bool { return p.Position.Finite() && p.Max().Finite() }

// Center returns position + size/2 in packing space.
func (p Placement) Center() Vec3 {
	return p.Position.Add(p.Size.Sanitized().Vec().Scale(0.5))
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func clampEdge(f float64) float64 {
	if !finite(f) || f < 0 {
		return 0
	}
	return f
}
