// Package scene turns packing placements into render-ready geometry.
//
// [Build] runs the geometry stages in order:
//
//	placements -> geom.Bounds -> viewport.Scaler -> geom.ToRender
//	           -> reference.Select -> reference.Position
//
// Every derived value is recomputed on each call. A Scene holds no state
// beyond its fields and is safe to share once built.
package scene

import (
	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/reference"
	"github.com/matzehuels/parcelview/pkg/viewport"
)

// Options control scene construction.
type Options struct {
	Scaler viewport.Scaler  // zero value uses viewport defaults
	GapCm  float64          // parcel to reference distance; <= 0 uses reference.DefaultGapCm
	Tiers  []reference.Tier // nil uses reference.Tiers
	NoRef  bool             // skip the reference object
}

// DefaultOptions returns options with the package defaults.
func DefaultOptions() Options {
	return Options{Scaler: viewport.Default(), GapCm: reference.DefaultGapCm}
}

// Item is one placement in render space.
type Item struct {
	Name  string         `json:"name,omitempty"`
	Color string         `json:"color,omitempty"`
	Box   geom.RenderBox `json:"box"`
}

// Reference is the comparison object in render space.
type Reference struct {
	Model reference.Model `json:"model"`
	Box   geom.RenderBox  `json:"box"`
}

// Scene is the geometry handed to a renderer. All render-space values are
// already multiplied by Scale.
type Scene struct {
	Scale     float64        `json:"scale"`
	Bounds    geom.AABB      `json:"bounds"`
	Parcel    geom.RenderBox `json:"parcel"`
	Items     []Item         `json:"items"`
	Reference *Reference     `json:"reference,omitempty"`
	// Offset recenters the parcel footprint on the render origin. Apply it
	// to the whole group, reference included.
	Offset geom.RenderVec `json:"offset"`
}

// Empty reports whether the scene has nothing to draw.
func (s *Scene) Empty() bool { return len(s.Items) == 0 }

// Build computes the scene for placements. An empty placement set yields an
// empty scene with no reference object.
func Build(placements []geom.Placement, opts Options) *Scene {
	bounds := geom.Bounds(placements)
	scale := opts.Scaler.Scale(bounds.MaxEdge())

	s := &Scene{
		Scale:  scale,
		Bounds: bounds,
		Parcel: geom.BoundsBox(bounds, scale),
		Items:  make([]Item, 0, len(placements)),
	}
	for _, p := range placements {
		if !p.Finite() {
			continue
		}
		s.Items = append(s.Items, Item{
			Name:  p.Name,
			Color: p.Color,
			Box:   geom.PlacementBox(p, scale),
		})
	}
	if len(s.Items) == 0 {
		return s
	}

	footprint := geom.Vec3{X: bounds.Center.X, Y: bounds.Center.Y}
	s.Offset = geom.ToRender(footprint).Scale(-scale)

	if !opts.NoRef {
		tiers := opts.Tiers
		if tiers == nil {
			tiers = reference.Tiers
		}
		gap := opts.GapCm
		if gap <= 0 {
			gap = reference.DefaultGapCm
		}
		m := reference.SelectFrom(tiers, bounds.MaxEdge()/10)
		s.Reference = &Reference{
			Model: m,
			Box:   reference.Box(bounds, m, scale, gap),
		}
	}
	return s
}

// FromEstimate previews an estimated parcel as a single box.
func FromEstimate(e parcel.Estimate, opts Options) *Scene {
	if e.ItemCount == 0 {
		return Build(nil, opts)
	}
	return Build([]geom.Placement{e.Placement("parcel", estimateColor)}, opts)
}

const estimateColor = "#90A4AE"
