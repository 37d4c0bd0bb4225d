// Package render holds output helpers shared by the preview renderers.
//
// The [sink] subpackage turns a [scene.Scene] into JSON or an orthographic
// SVG drawing. [ToPDF] and [ToPNG] convert that SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(s, sink.WithLabels())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// When rsvg-convert is missing both return an error coded
// errors.ErrCodeUnsupported; use [Available] to check up front.
//
// [sink]: github.com/matzehuels/parcelview/pkg/render/sink
// [scene.Scene]: github.com/matzehuels/parcelview/pkg/scene.Scene
package render
