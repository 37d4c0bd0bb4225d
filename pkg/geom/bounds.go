package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// AABB is an axis-aligned bounding box in packing space, in millimeters.
// Min <= Max holds componentwise.
type AABB struct {
	Min    Vec3 `json:"min"`
	Max    Vec3 `json:"max"`
	Center Vec3 `json:"center"`
	Size   Vec3 `json:"size"`
}

// Empty reports whether the box has no volume and sits at the origin,
// which is what [Bounds] returns for an empty placement set.
func (b AABB) Empty() bool { return b == AABB{} }

// MaxEdge returns the longest edge of the box.
func (b AABB) MaxEdge() float64 {
	return math.Max(b.Size.X, math.Max(b.Size.Y, b.Size.Z))
}

// Bounds returns the smallest box enclosing every placement.
//
// Placements whose position or far corner is not finite are skipped, as is
// any placement that would stretch the box past the float64 range.
// Non-finite or negative sizes count as zero, so the result is always finite. An empty
// input, or one where every placement was skipped, yields the zero box.
func Bounds(placements []Placement) AABB {
	var (
		box   sdf.Box3
		found bool
	)
	for _, p := range placements {
		if !p.Finite() {
			continue
		}
		b := sdf.Box3{Min: toSDF(p.Position), Max: toSDF(p.Max())}
		if found {
			b = box.Extend(b)
		}
		if !finiteBox(b) {
			continue
		}
		box, found = b, true
	}
	if !found {
		return AABB{}
	}
	return AABB{
		Min:    fromSDF(box.Min),
		Max:    fromSDF(box.Max),
		Center: fromSDF(box.Center()),
		Size:   fromSDF(box.Size()),
	}
}

// finiteBox reports whether every derived quantity of b is finite.
func finiteBox(b sdf.Box3) bool {
	return fromSDF(b.Size()).Finite() && fromSDF(b.Center()).Finite()
}

func toSDF(v Vec3) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromSDF(v v3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }
