package sink

import (
	"encoding/json"

	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title    string
	estimate *parcel.Estimate
	fallback bool
}

// WithJSONTitle records a caption for the preview.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONEstimate includes the parcel estimate the scene was built for.
func WithJSONEstimate(e parcel.Estimate) JSONOption {
	return func(r *jsonRenderer) { r.estimate = &e }
}

// WithJSONFallback marks the scene as built from the local estimate instead
// of engine placements.
func WithJSONFallback() JSONOption { return func(r *jsonRenderer) { r.fallback = true } }

type jsonOutput struct {
	Title     string           `json:"title,omitempty"`
	Fallback  bool             `json:"fallback,omitempty"`
	Estimate  *parcel.Estimate `json:"estimate,omitempty"`
	Scale     float64          `json:"scale"`
	Offset    geom.RenderVec   `json:"offset"`
	Bounds    geom.AABB        `json:"bounds"`
	Parcel    geom.RenderBox   `json:"parcel"`
	Items     []scene.Item     `json:"items"`
	Reference *scene.Reference `json:"reference"`
}

// RenderJSON exports the scene as a pretty-printed JSON document. Items
// and the reference are in scaled render space; bounds stay in packing
// millimeters. A nil scene renders as an empty one.
//
// RenderJSON does not modify s and is safe to call concurrently.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if s == nil {
		s = scene.Build(nil, scene.DefaultOptions())
	}

	out := jsonOutput{
		Title:     r.title,
		Fallback:  r.fallback,
		Estimate:  r.estimate,
		Scale:     s.Scale,
		Offset:    s.Offset,
		Bounds:    s.Bounds,
		Parcel:    s.Parcel,
		Items:     s.Items,
		Reference: s.Reference,
	}
	if out.Items == nil {
		out.Items = []scene.Item{}
	}
	return json.MarshalIndent(out, "", "  ")
}
