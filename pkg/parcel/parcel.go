// Package parcel estimates a parcel envelope from cart lines before the
// packing engine has answered.
//
// The estimate assumes items share a footprint and stack in height only:
// length and width are the largest item edges, height is the sum of item
// heights. Soft and plush items compact when stacked, modeled by a
// per-kind [Policy] factor applied to height. The estimate is a planning aid
// shown while a real packing result is pending; it says nothing about
// whether the items actually fit a carrier's limits.
package parcel

import (
	"math"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/geom"
)

// Estimate is a derived parcel envelope. Dimensions in centimeters, weight
// in grams.
type Estimate struct {
	LengthCm  float64 `json:"lengthCm"`
	WidthCm   float64 `json:"widthCm"`
	HeightCm  float64 `json:"heightCm"`
	WeightG   int     `json:"weightG"`
	ItemCount int     `json:"itemCount"`
}

// SizeSum returns length + width + height, the figure most carriers price by.
func (e Estimate) SizeSum() float64 { return e.LengthCm + e.WidthCm + e.HeightCm }

// WeightKg returns the weight in kilograms.
func (e Estimate) WeightKg() float64 { return float64(e.WeightG) / 1000 }

// MaxEdge returns the longest of the three edges, in centimeters.
func (e Estimate) MaxEdge() float64 {
	return math.Max(e.LengthCm, math.Max(e.WidthCm, e.HeightCm))
}

// Placement returns the estimate as a single corner-anchored box at the
// origin, in millimeters. Length runs along packing x, width along y.
func (e Estimate) Placement(name, color string) geom.Placement {
	return geom.Placement{
		Name: name,
		Size: geom.Size3{
			Width:  e.LengthCm * 10,
			Depth:  e.WidthCm * 10,
			Height: e.HeightCm * 10,
		},
		Color: color,
	}
}

// Aggregate estimates the parcel for lines under policy. Lines with a
// non-positive quantity are ignored; NaN, infinite and negative dimensions
// and negative weights count as zero. It returns false when no line has a
// positive quantity.
func Aggregate(lines []catalog.Line, policy Policy) (Estimate, bool) {
	var e Estimate
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		it := l.Item
		qty := float64(l.Quantity)

		e.LengthCm = math.Max(e.LengthCm, sanitize(it.LengthCm))
		e.WidthCm = math.Max(e.WidthCm, sanitize(it.WidthCm))
		e.HeightCm += sanitize(it.HeightCm) * qty * policy.Factor(catalog.Classify(it))
		if it.WeightG > 0 {
			e.WeightG += it.WeightG * l.Quantity
		}
		e.ItemCount += l.Quantity
	}
	if e.ItemCount == 0 {
		return Estimate{}, false
	}
	return e, true
}

// Manual builds an estimate for a box whose dimensions the user typed in.
// Every value must be positive and finite. Weight is rounded to whole grams.
func Manual(lengthCm, widthCm, heightCm, weightG float64) (Estimate, error) {
	for _, d := range []struct {
		name string
		v    float64
	}{{"length", lengthCm}, {"width", widthCm}, {"height", heightCm}} {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return Estimate{}, err
		}
	}
	if err := errors.ValidateWeight(weightG); err != nil {
		return Estimate{}, err
	}
	grams := int(math.Round(weightG))
	if grams < 1 {
		grams = 1
	}
	return Estimate{
		LengthCm:  lengthCm,
		WidthCm:   widthCm,
		HeightCm:  heightCm,
		WeightG:   grams,
		ItemCount: 1,
	}, nil
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
