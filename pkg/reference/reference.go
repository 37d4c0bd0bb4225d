// Package reference picks a familiar object to show next to a parcel preview
// and places it so it never overlaps the parcel.
//
// Selection is a lookup in [Tiers], an ordered table of half-open size
// ranges keyed by the parcel's longest edge in centimeters. Positioning puts
// the object beside the parcel along the width axis, grounded at render
// Y = 0 and centered on the parcel's depth.
package reference

import (
	"math"

	"github.com/matzehuels/parcelview/pkg/geom"
)

// DefaultGapCm separates the reference object from the parcel.
const DefaultGapCm = 5.0

// RealSize is a real-world extent in centimeters.
type RealSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Millimeters returns the size as a packing-space extent in millimeters.
func (s RealSize) Millimeters() geom.Size3 {
	return geom.Size3{Width: s.Width * 10, Depth: s.Depth * 10, Height: s.Height * 10}
}

// Model is a comparison object.
type Model struct {
	Name  string   `json:"name"`
	Label string   `json:"label"`
	Size  RealSize `json:"size"`
	Color string   `json:"color"`
}

// Tier pairs an exclusive upper bound with the model shown below it.
type Tier struct {
	UpperCm float64
	Model   Model
}

// Tiers is ordered by UpperCm and covers [0, +Inf). The first tier whose
// bound exceeds the parcel's longest edge wins.
var Tiers = []Tier{
	{UpperCm: 20, Model: Model{
		Name: "smartphone", Label: "Smartphone",
		Size: RealSize{Width: 7.5, Height: 15.0, Depth: 0.8}, Color: "#4FC3F7",
	}},
	{UpperCm: 80, Model: Model{
		Name: "soda-can", Label: "Soda can",
		Size: RealSize{Width: 6.6, Height: 12.0, Depth: 6.6}, Color: "#81C784",
	}},
	{UpperCm: 160, Model: Model{
		Name: "office-chair", Label: "Office chair",
		Size: RealSize{Width: 60, Height: 100, Depth: 60}, Color: "#FFB74D",
	}},
	{UpperCm: math.Inf(1), Model: Model{
		Name: "person", Label: "Person (170 cm)",
		Size: RealSize{Width: 45, Height: 170, Depth: 25}, Color: "#BA68C8",
	}},
}

// Select returns the model for a parcel whose longest edge is maxEdgeCm.
// NaN and negative edges select the first tier.
func Select(maxEdgeCm float64) Model {
	return SelectFrom(Tiers, maxEdgeCm)
}

// SelectFrom is [Select] over a caller-supplied table. The table must be
// ordered by UpperCm; an edge beyond every bound selects the last tier, and
// an empty table yields the zero Model.
func SelectFrom(tiers []Tier, maxEdgeCm float64) Model {
	if len(tiers) == 0 {
		return Model{}
	}
	if math.IsNaN(maxEdgeCm) || maxEdgeCm < 0 {
		maxEdgeCm = 0
	}
	for _, t := range tiers {
		if maxEdgeCm < t.UpperCm {
			return t.Model
		}
	}
	return tiers[len(tiers)-1].Model
}

// Position returns the render-space center of the reference object for a
// parcel with bounds aabb (packing space, mm), at the given scale.
//
// The object sits gapCm beyond the parcel's maximum width, its base on the
// render floor, centered on the parcel's depth. Negative or non-finite gaps
// are treated as zero.
func Position(aabb geom.AABB, size RealSize, scale, gapCm float64) geom.RenderVec {
	if math.IsNaN(gapCm) || math.IsInf(gapCm, 0) || gapCm < 0 {
		gapCm = 0
	}
	mm := size.Millimeters().Sanitized()
	center := geom.Vec3{
		X: aabb.Max.X + mm.Width/2 + gapCm*10,
		Y: aabb.Center.Y,
		Z: mm.Height / 2,
	}
	return geom.ToRender(center).Scale(scale)
}

// Box returns the scaled render box of the reference object.
func Box(aabb geom.AABB, m Model, scale, gapCm float64) geom.RenderBox {
	return geom.RenderBox{
		Center: Position(aabb, m.Size, scale, gapCm),
		Size:   geom.SizeToRender(m.Size.Millimeters()).Scale(scale),
	}
}
