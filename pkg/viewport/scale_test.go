package viewport

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	s := Default()
	tests := []struct {
		name string
		dim  float64
		want float64
	}{
		{"mid range", 900, 0.2},
		{"lower clamp", 10000, DefaultMin},
		{"upper clamp", 100, DefaultMax},
		{"zero", 0, DefaultMax},
		{"near zero", 1e-12, DefaultMax},
		{"negative", -50, DefaultMax},
		{"NaN", math.NaN(), DefaultMax},
		{"positive infinity", math.Inf(1), DefaultMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Scale(tt.dim); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Scale(%v) = %v, want %v", tt.dim, got, tt.want)
			}
		})
	}
}

func TestScaleAlwaysWithinBounds(t *testing.T) {
	s := Scaler{Budget: 180, Min: 0.08, Max: 0.4, Floor: 1}
	dims := []float64{0, 1e-300, 0.5, 1, 10, 449, 450, 451, 2249, 2250, 2251, 1e9, math.MaxFloat64}
	for _, d := range dims {
		got := s.Scale(d)
		if got < s.Min || got > s.Max || math.IsNaN(got) {
			t.Errorf("Scale(%v) = %v, outside [%v, %v]", d, got, s.Min, s.Max)
		}
	}
}

func TestScaleZeroValueScaler(t *testing.T) {
	var s Scaler
	if got, want := s.Scale(900), Default().Scale(900); got != want {
		t.Errorf("zero Scaler Scale(900) = %v, want default %v", got, want)
	}
}

func TestScaleSwappedBounds(t *testing.T) {
	s := Scaler{Budget: 180, Min: 0.4, Max: 0.08, Floor: 1}
	if got := s.Scale(1e6); got != 0.08 {
		t.Errorf("Scale() = %v, want 0.08", got)
	}
}
