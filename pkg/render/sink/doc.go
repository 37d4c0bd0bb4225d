// Package sink provides output format renderers for parcel previews.
//
// # Overview
//
// A "sink" transforms a computed [scene.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: orthographic front and top views
//   - JSON: scene data export for external viewers
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws each requested view as its own panel, side by side.
// The front view looks along the depth axis (render X right, Y up). The top
// view looks down (render X right, Z toward the bottom of the image). Items
// are painted back to front, the parcel envelope is outlined, and the
// reference object stands next to the parcel in its own color.
//
//	svg := sink.RenderSVG(s,
//	    sink.WithViews(sink.ViewFront, sink.ViewTop),
//	    sink.WithLabels(),
//	    sink.WithTitle("30 × 25 × 6 cm"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the scene as pretty-printed JSON. Coordinates are
// already scaled and the group offset is recorded separately, so a 3D
// viewer can apply it as a single translation.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the SVG first and convert it via
// [render.ToPDF] and [render.ToPNG].
//
// [scene.Scene]: github.com/matzehuels/parcelview/pkg/scene.Scene
// [render.ToPDF]: github.com/matzehuels/parcelview/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/parcelview/pkg/render.ToPNG
package sink
