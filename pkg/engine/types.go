package engine

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/parcel"
)

// CartRequest is the body of the cart and dimensions endpoints.
type CartRequest struct {
	Items []catalog.Request `json:"items"`
}

// ManualRequest is the body of the manual endpoint.
type ManualRequest struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	WeightG  int     `json:"weightG"`
}

// PackResult is the packing engine's answer: the packed envelope and where
// each item went.
type PackResult struct {
	Dimensions parcel.Estimate  `json:"dimensions"`
	Placements []geom.Placement `json:"placements"`
}

// UnmarshalJSON accepts placements in either the nested form
// {"position":{...},"size":{...}} or the flat form {"x":..,"width":..}.
func (r *PackResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Dimensions parcel.Estimate `json:"dimensions"`
		Placements []wirePlacement `json:"placements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Dimensions = raw.Dimensions
	r.Placements = make([]geom.Placement, len(raw.Placements))
	for i, p := range raw.Placements {
		r.Placements[i] = p.placement()
	}
	return nil
}

type wirePlacement struct {
	Name     string      `json:"name"`
	Color    string      `json:"color"`
	Position *geom.Vec3  `json:"position"`
	Size     *geom.Size3 `json:"size"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

func (w wirePlacement) placement() geom.Placement {
	p := geom.Placement{Name: w.Name, Color: w.Color}
	if w.Position != nil {
		p.Position = *w.Position
	} else {
		p.Position = geom.Vec3{X: w.X, Y: w.Y, Z: w.Z}
	}
	if w.Size != nil {
		p.Size = *w.Size
	} else {
		p.Size = geom.Size3{Width: w.Width, Depth: w.Depth, Height: w.Height}
	}
	return p
}

// DecodePlacements reads placements from JSON. It accepts a bare array or
// a full pack result object.
func DecodePlacements(data []byte) ([]geom.Placement, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var ws []wirePlacement
		if err := json.Unmarshal(data, &ws); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode placements")
		}
		out := make([]geom.Placement, len(ws))
		for i, w := range ws {
			out[i] = w.placement()
		}
		return out, nil
	}
	var r PackResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode pack result")
	}
	return r.Placements, nil
}

// RateOption is one carrier service offered by the rate engine.
type RateOption struct {
	ID          int    `json:"id"`
	ServiceName string `json:"serviceName"`
	CompanyName string `json:"companyName"`
	PriceYen    int    `json:"priceYen"`
	Reason      string `json:"reason,omitempty"`
	HasTracking bool   `json:"hasTracking"`
	MaxWeightG  int    `json:"maxWeightG,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Recommended bool   `json:"recommended"`
}

// RateResult is the rate engine's answer.
type RateResult struct {
	Dimensions parcel.Estimate `json:"dimensions"`
	// Recommended reports whether the engine found a recommended option.
	Recommended bool         `json:"recommended"`
	Options     []RateOption `json:"options"`
}

// UnmarshalJSON accepts "recommended" either as a boolean or as the
// recommended option object (or null).
func (r *RateResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Dimensions  parcel.Estimate `json:"dimensions"`
		Recommended json.RawMessage `json:"recommended"`
		Options     []RateOption    `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Dimensions = raw.Dimensions
	r.Options = raw.Options

	rec := bytes.TrimSpace(raw.Recommended)
	switch {
	case len(rec) == 0, bytes.Equal(rec, []byte("null")), bytes.Equal(rec, []byte("false")):
		r.Recommended = false
	case bytes.Equal(rec, []byte("true")):
		r.Recommended = true
	default:
		var opt RateOption
		if err := json.Unmarshal(rec, &opt); err != nil {
			return err
		}
		r.Recommended = true
		if i := r.optionIndex(opt.ID); i >= 0 {
			r.Options[i].Recommended = true
		} else {
			opt.Recommended = true
			r.Options = append([]RateOption{opt}, r.Options...)
		}
	}
	return nil
}

// Best returns the recommended option, if any.
func (r RateResult) Best() (RateOption, bool) {
	for _, o := range r.Options {
		if o.Recommended {
			return o, true
		}
	}
	return RateOption{}, false
}

func (r RateResult) optionIndex(id int) int {
	for i, o := range r.Options {
		if o.ID == id {
			return i
		}
	}
	return -1
}
