package parcel

import (
	"math"
	"testing"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
)

func item(id int, cat catalog.Category, l, w, h float64, g int) catalog.Item {
	return catalog.Item{ID: id, Category: cat, Name: "item", LengthCm: l, WidthCm: w, HeightCm: h, WeightG: g}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregateEmpty(t *testing.T) {
	tests := []struct {
		name  string
		lines []catalog.Line
	}{
		{"nil", nil},
		{"zero quantity", []catalog.Line{{Item: item(1, catalog.Books, 10, 10, 1, 100), Quantity: 0}}},
		{"negative quantity", []catalog.Line{{Item: item(1, catalog.Books, 10, 10, 1, 100), Quantity: -2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e, ok := Aggregate(tt.lines, DefaultPolicy()); ok {
				t.Errorf("Aggregate() = %+v, true; want no estimate", e)
			}
		})
	}
}

func TestAggregateFootprintIsMax(t *testing.T) {
	lines := []catalog.Line{
		{Item: item(1, catalog.Books, 15, 10.5, 1.5, 150), Quantity: 3},
		{Item: item(2, catalog.Electronics, 33, 23, 2, 1500), Quantity: 1},
		{Item: item(3, catalog.Games, 17, 25, 1.1, 60), Quantity: 2},
		{Item: item(4, catalog.Games, 99, 99, 1, 60), Quantity: 0},
	}
	e, ok := Aggregate(lines, DefaultPolicy())
	if !ok {
		t.Fatal("Aggregate() returned no estimate")
	}
	if e.LengthCm != 33 {
		t.Errorf("LengthCm = %v, want 33", e.LengthCm)
	}
	if e.WidthCm != 25 {
		t.Errorf("WidthCm = %v, want 25", e.WidthCm)
	}
}

func TestAggregateCompressibleHeight(t *testing.T) {
	lines := []catalog.Line{{Item: item(1, catalog.Fashion, 30, 25, 10, 200), Quantity: 2}}
	e, _ := Aggregate(lines, Uniform(0.8))
	if !near(e.HeightCm, 16) {
		t.Errorf("HeightCm = %v, want 16", e.HeightCm)
	}
}

func TestAggregateMixedCart(t *testing.T) {
	lines := []catalog.Line{
		{Item: item(1, catalog.Fashion, 30, 25, 10, 200), Quantity: 3},
		{Item: item(2, catalog.Books, 20, 15, 5, 100), Quantity: 1},
	}
	e, ok := Aggregate(lines, Uniform(0.8))
	if !ok {
		t.Fatal("Aggregate() returned no estimate")
	}
	if !near(e.HeightCm, 29) {
		t.Errorf("HeightCm = %v, want 29", e.HeightCm)
	}
	if e.WeightG != 700 {
		t.Errorf("WeightG = %d, want 700", e.WeightG)
	}
	if e.ItemCount != 4 {
		t.Errorf("ItemCount = %d, want 4", e.ItemCount)
	}
}

func TestAggregatePlush(t *testing.T) {
	plush := catalog.Item{ID: 9, Category: catalog.Hobbies, Name: "Plush toy", LengthCm: 30, WidthCm: 20, HeightCm: 20, WeightG: 300}
	e, _ := Aggregate([]catalog.Line{{Item: plush, Quantity: 2}}, DefaultPolicy())
	if !near(e.HeightCm, 24) {
		t.Errorf("HeightCm = %v, want 24 (20 x 2 x 0.6)", e.HeightCm)
	}
	// footprint is never compressed by the estimate
	if e.LengthCm != 30 || e.WidthCm != 20 {
		t.Errorf("footprint = %v x %v, want 30 x 20", e.LengthCm, e.WidthCm)
	}
}

func TestAggregateDegenerateValues(t *testing.T) {
	lines := []catalog.Line{
		{Item: item(1, catalog.Books, math.NaN(), -4, math.Inf(1), -50), Quantity: 2},
		{Item: item(2, catalog.Books, 10, 8, 2, 100), Quantity: 1},
	}
	e, ok := Aggregate(lines, DefaultPolicy())
	if !ok {
		t.Fatal("Aggregate() returned no estimate")
	}
	for name, v := range map[string]float64{"length": e.LengthCm, "width": e.WidthCm, "height": e.HeightCm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
	if e.LengthCm != 10 || e.WidthCm != 8 || e.HeightCm != 2 {
		t.Errorf("Aggregate() = %+v, want 10 x 8 x 2", e)
	}
	if e.WeightG != 100 {
		t.Errorf("WeightG = %d, want 100", e.WeightG)
	}
	if e.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", e.ItemCount)
	}
}

func TestPolicyFactor(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		kind   catalog.Kind
		want   float64
	}{
		{"rigid", DefaultPolicy(), catalog.Rigid, 1},
		{"soft", DefaultPolicy(), catalog.Soft, 0.8},
		{"plush", DefaultPolicy(), catalog.Plush, 0.6},
		{"zero value policy", Policy{}, catalog.Soft, 1},
		{"above one", Policy{Soft: 1.5}, catalog.Soft, 1},
		{"NaN", Policy{Plush: math.NaN()}, catalog.Plush, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Factor(tt.kind); got != tt.want {
				t.Errorf("Factor(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestManual(t *testing.T) {
	e, err := Manual(30, 20, 10, 499.6)
	if err != nil {
		t.Fatalf("Manual() error: %v", err)
	}
	want := Estimate{LengthCm: 30, WidthCm: 20, HeightCm: 10, WeightG: 500, ItemCount: 1}
	if e != want {
		t.Errorf("Manual() = %+v, want %+v", e, want)
	}
	if got := e.SizeSum(); got != 60 {
		t.Errorf("SizeSum() = %v, want 60", got)
	}
	if got := e.WeightKg(); got != 0.5 {
		t.Errorf("WeightKg() = %v, want 0.5", got)
	}
}

func TestManualRejectsInvalid(t *testing.T) {
	tests := []struct {
		name       string
		l, w, h, g float64
	}{
		{"zero length", 0, 10, 10, 100},
		{"negative width", 10, -1, 10, 100},
		{"NaN height", 10, 10, math.NaN(), 100},
		{"zero weight", 10, 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Manual(tt.l, tt.w, tt.h, tt.g)
			if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
				t.Errorf("Manual() error = %v, want %s", err, errors.ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestEstimatePlacement(t *testing.T) {
	e := Estimate{LengthCm: 30, WidthCm: 20, HeightCm: 12.5}
	p := e.Placement("parcel", "#ccc")
	if p.Size.Width != 300 || p.Size.Depth != 200 || p.Size.Height != 125 {
		t.Errorf("Placement().Size = %+v, want 300 x 200 x 125", p.Size)
	}
	if p.Position.X != 0 || p.Position.Y != 0 || p.Position.Z != 0 {
		t.Errorf("Placement().Position = %+v, want origin", p.Position)
	}
	if got := e.MaxEdge(); got != 30 {
		t.Errorf("MaxEdge() = %v, want 30", got)
	}
}
