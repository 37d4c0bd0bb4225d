package sink

import (
	"strings"

	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/geom"
)

// View is an orthographic projection of the scene.
type View string

const (
	ViewFront View = "front"
	ViewTop   View = "top"
)

// AllViews lists the supported views in drawing order.
var AllViews = []View{ViewFront, ViewTop}

// ParseView parses a view name.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewFront:
		return ViewFront, nil
	case ViewTop:
		return ViewTop, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown view %q (want front or top)", s)
}

// Title returns the panel caption.
func (v View) Title() string {
	switch v {
	case ViewTop:
		return "Top"
	default:
		return "Front"
	}
}

// rect is a projected box with Y pointing up.
type rect struct {
	X0, Y0, X1, Y1 float64
}

func (r rect) W() float64 { return r.X1 - r.X0 }
func (r rect) H() float64 { return r.Y1 - r.Y0 }

func (r rect) union(o rect) rect {
	return rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// project flattens b. The top view maps +Z (toward the viewer) downward.
func (v View) project(b geom.RenderBox, offset geom.RenderVec) rect {
	lo := b.Min().Add(offset)
	hi := b.Max().Add(offset)
	if v == ViewTop {
		return rect{lo.X, -hi.Z, hi.X, -lo.Z}
	}
	return rect{lo.X, lo.Y, hi.X, hi.Y}
}

// depth orders boxes back to front for the painter's algorithm.
func (v View) depth(b geom.RenderBox) float64 {
	if v == ViewTop {
		return b.Center.Y
	}
	return b.Center.Z
}
