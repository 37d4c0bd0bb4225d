package parcel

import (
	"math"

	"github.com/matzehuels/parcelview/pkg/catalog"
)

// Historical compression factors. Both were used for soft goods at different
// times; they are kept apart as separate kinds rather than merged.
const (
	DefaultSoftFactor  = 0.8
	DefaultPlushFactor = 0.6
)

// Policy holds the height compression factor for each stacking kind.
// A factor outside (0, 1] is treated as 1.
type Policy struct {
	Soft  float64 `toml:"soft" json:"soft"`
	Plush float64 `toml:"plush" json:"plush"`
}

// DefaultPolicy compresses soft items to 80% and plush items to 60%.
func DefaultPolicy() Policy {
	return Policy{Soft: DefaultSoftFactor, Plush: DefaultPlushFactor}
}

// Uniform applies the same factor to every compressible kind.
func Uniform(f float64) Policy { return Policy{Soft: f, Plush: f} }

// Factor returns the height multiplier for k.
func (p Policy) Factor(k catalog.Kind) float64 {
	var f float64
	switch k {
	case catalog.Soft:
		f = p.Soft
	case catalog.Plush:
		f = p.Plush
	default:
		return 1
	}
	if math.IsNaN(f) || f <= 0 || f > 1 {
		return 1
	}
	return f
}
