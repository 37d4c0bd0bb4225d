package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/scene"
)

const (
	defaultZoom   = 2.0
	panelPad      = 24.0
	captionHeight = 22.0
	titleHeight   = 30.0
	emptyWidth    = 240.0
	emptyHeight   = 120.0

	itemStroke   = "#37474F"
	parcelStroke = "#263238"
	defaultFill  = "#B0BEC5"
)

const svgCSS = `
    .item { stroke: ` + itemStroke + `; stroke-width: 1; fill-opacity: 0.85; }
    .parcel { fill: none; stroke: ` + parcelStroke + `; stroke-width: 1.5; stroke-dasharray: 6 4; }
    .reference { stroke: ` + itemStroke + `; stroke-width: 1; fill-opacity: 0.6; }
    .label { font-family: sans-serif; fill: #212121; text-anchor: middle; dominant-baseline: central; }
    .caption { font-family: sans-serif; font-size: 13px; fill: #546E7A; text-anchor: middle; }
    .title { font-family: sans-serif; font-size: 16px; font-weight: bold; fill: #212121; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	views  []View
	labels bool
	title  string
	zoom   float64
}

// WithViews selects the panels to draw, in order. Duplicates are dropped.
// The default is [AllViews].
func WithViews(views ...View) SVGOption {
	return func(r *svgRenderer) {
		r.views = r.views[:0]
		for _, v := range views {
			if !slices.Contains(r.views, v) {
				r.views = append(r.views, v)
			}
		}
	}
}

// WithLabels prints item names and the reference label inside their boxes.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle adds a heading above the panels.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithZoom sets SVG pixels per render unit (default 2).
func WithZoom(z float64) SVGOption {
	return func(r *svgRenderer) {
		if z > 0 {
			r.zoom = z
		}
	}
}

type shape struct {
	class string
	label string
	color string
	box   geom.RenderBox
}

// RenderSVG draws s as one orthographic panel per view. An empty scene
// yields a small placeholder image.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	top := 0.0
	if r.title != "" {
		top = titleHeight
	}

	var buf bytes.Buffer
	if s == nil || s.Empty() {
		h := top + emptyHeight
		writeHeader(&buf, emptyWidth, h)
		r.renderTitle(&buf)
		fmt.Fprintf(&buf, `  <text class="caption" x="%.1f" y="%.1f">No items</text>`+"\n", emptyWidth/2, top+emptyHeight/2)
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	shapes := collectShapes(s)

	type panel struct {
		view   View
		bounds rect
		w, h   float64
	}
	panels := make([]panel, 0, len(r.views))
	width, height := 0.0, 0.0
	for _, v := range r.views {
		b := v.project(s.Parcel, s.Offset)
		for _, sh := range shapes {
			b = b.union(v.project(sh.box, s.Offset))
		}
		p := panel{view: v, bounds: b, w: b.W()*r.zoom + 2*panelPad, h: b.H()*r.zoom + 2*panelPad + captionHeight}
		panels = append(panels, p)
		width += p.w
		height = max(height, p.h)
	}
	height += top

	writeHeader(&buf, width, height)
	r.renderTitle(&buf)

	x := 0.0
	for _, p := range panels {
		fmt.Fprintf(&buf, `  <g id="view-%s">`+"\n", p.view)
		toSVG := func(rc rect) (float64, float64, float64, float64) {
			return x + panelPad + (rc.X0-p.bounds.X0)*r.zoom,
				top + panelPad + (p.bounds.Y1-rc.Y1)*r.zoom,
				rc.W() * r.zoom,
				rc.H() * r.zoom
		}
		r.renderView(&buf, p.view, s, shapes, toSVG)
		fmt.Fprintf(&buf, `    <text class="caption" x="%.1f" y="%.1f">%s</text>`+"\n",
			x+p.w/2, top+p.h-captionHeight/2, p.view.Title())
		buf.WriteString("  </g>\n")
		x += p.w
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{views: slices.Clone(AllViews), zoom: defaultZoom}
	for _, opt := range opts {
		opt(&r)
	}
	if len(r.views) == 0 {
		r.views = slices.Clone(AllViews)
	}
	return r
}

func writeHeader(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", svgCSS)
}

func (r *svgRenderer) renderTitle(buf *bytes.Buffer) {
	if r.title == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="title" x="%.1f" y="%.1f">%s</text>`+"\n", panelPad, titleHeight*0.7, escapeXML(r.title))
}

func (r *svgRenderer) renderView(buf *bytes.Buffer, v View, s *scene.Scene, shapes []shape, toSVG func(rect) (float64, float64, float64, float64)) {
	ordered := slices.Clone(shapes)
	slices.SortStableFunc(ordered, func(a, b shape) int {
		return cmp.Compare(v.depth(a.box), v.depth(b.box))
	})

	for _, sh := range ordered {
		x, y, w, h := toSVG(v.project(sh.box, s.Offset))
		fmt.Fprintf(buf, `    <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			sh.class, x, y, w, h, escapeXML(sh.color))
		if r.labels && sh.label != "" {
			renderLabel(buf, sh.label, x, y, w, h)
		}
	}

	x, y, w, h := toSVG(v.project(s.Parcel, s.Offset))
	fmt.Fprintf(buf, `    <rect class="parcel" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", x, y, w, h)
}

func renderLabel(buf *bytes.Buffer, label string, x, y, w, h float64) {
	size := min(12, h*0.6, w/max(1, float64(len([]rune(label))))*1.6)
	if size < 5 {
		return
	}
	fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
		x+w/2, y+h/2, size, escapeXML(label))
}

func collectShapes(s *scene.Scene) []shape {
	shapes := make([]shape, 0, len(s.Items)+1)
	for _, it := range s.Items {
		color := it.Color
		if color == "" {
			color = defaultFill
		}
		shapes = append(shapes, shape{class: "item", label: it.Name, color: color, box: it.Box})
	}
	if s.Reference != nil {
		shapes = append(shapes, shape{
			class: "reference",
			label: s.Reference.Model.Label,
			color: s.Reference.Model.Color,
			box:   s.Reference.Box,
		})
	}
	return shapes
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
