package geom

// RenderVec is a point or extent in render space (Y-up, center-anchored).
// Units are whatever the caller scaled to; unscaled values are millimeters.
type RenderVec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Scale multiplies every component by f.
func (r RenderVec) Scale(f float64) RenderVec { return RenderVec{r.X * f, r.Y * f, r.Z * f} }

// Add returns the componentwise sum.
func (r RenderVec) Add(o RenderVec) RenderVec { return RenderVec{r.X + o.X, r.Y + o.Y, r.Z + o.Z} }

// ToRender maps a packing-space point to render space: width stays on X,
// height moves to Y and depth moves to Z.
func ToRender(v Vec3) RenderVec {
	return RenderVec{X: v.X, Y: v.Z, Z: v.Y}
}

// SizeToRender maps a packing-space extent to render space.
func SizeToRender(s Size3) RenderVec {
	return ToRender(s.Sanitized().Vec())
}

// RenderCenter returns the render-space center of a corner-anchored placement.
func RenderCenter(p Placement) RenderVec {
	return ToRender(p.Center())
}

// RenderBox is a center-anchored box in render space.
type RenderBox struct {
	Center RenderVec `json:"center"`
	Size   RenderVec `json:"size"`
}

// Min returns the minimum corner.
func (b RenderBox) Min() RenderVec { return b.Center.Add(b.Size.Scale(-0.5)) }

// Max returns the maximum corner.
func (b RenderBox) Max() RenderVec { return b.Center.Add(b.Size.Scale(0.5)) }

// PlacementBox converts a placement to a scaled render box.
func PlacementBox(p Placement, scale float64) RenderBox {
	return RenderBox{
		Center: RenderCenter(p).Scale(scale),
		Size:   SizeToRender(p.Size).Scale(scale),
	}
}

// BoundsBox converts a packing-space bounding box to a scaled render box.
func BoundsBox(b AABB, scale float64) RenderBox {
	return RenderBox{
		Center: ToRender(b.Center).Scale(scale),
		Size:   ToRender(b.Size).Scale(scale),
	}
}
