// Package geom holds the coordinate types shared by every geometry stage of
// the parcel preview.
//
// # Packing space and render space
//
// Placements produced by the packing engine use a corner-anchored convention
// measured in millimeters:
//
//   - x: width (primary axis)
//   - y: depth (secondary axis)
//   - z: height (tertiary axis)
//
// The 3D display is Y-up and center-anchored. [ToRender] is the one place
// where the two conventions meet: render X is packing x, render Y is packing
// z and render Z is packing y. Items, the parcel box, the reference object
// and group offsets all go through [ToRender], [SizeToRender] or
// [RenderCenter]; nothing else swaps axes.
//
// # Bounding boxes
//
// [Bounds] reduces a placement set to an [AABB]. The reduction is order
// independent, never yields NaN or infinities, and collapses to the zero box
// for an empty set:
//
//	box := geom.Bounds(placements)
//	edge := box.MaxEdge() // characteristic dimension for viewport scaling
package geom
