package geom

import "testing"

func TestToRender(t *testing.T) {
	got := ToRender(Vec3{X: 1, Y: 2, Z: 3})
	want := RenderVec{X: 1, Y: 3, Z: 2}
	if got != want {
		t.Errorf("ToRender() = %+v, want %+v", got, want)
	}
}

func TestSizeToRender(t *testing.T) {
	tests := []struct {
		name string
		size Size3
		want RenderVec
	}{
		{"box", Size3{Width: 100, Depth: 50, Height: 30}, RenderVec{100, 30, 50}},
		{"negative depth", Size3{Width: 10, Depth: -1, Height: 2}, RenderVec{10, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeToRender(tt.size); got != tt.want {
				t.Errorf("SizeToRender() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderCenter(t *testing.T) {
	p := Placement{
		Position: Vec3{X: 10, Y: 20, Z: 30},
		Size:     Size3{Width: 100, Depth: 40, Height: 60},
	}
	// packing center (60, 40, 60) -> render (60, 60, 40)
	want := RenderVec{X: 60, Y: 60, Z: 40}
	if got := RenderCenter(p); got != want {
		t.Errorf("RenderCenter() = %+v, want %+v", got, want)
	}
}

func TestPlacementBox(t *testing.T) {
	p := Placement{
		Position: Vec3{X: 0, Y: 0, Z: 0},
		Size:     Size3{Width: 200, Depth: 100, Height: 50},
	}
	box := PlacementBox(p, 0.5)

	if want := (RenderVec{X: 50, Y: 12.5, Z: 25}); box.Center != want {
		t.Errorf("Center = %+v, want %+v", box.Center, want)
	}
	if want := (RenderVec{X: 100, Y: 25, Z: 50}); box.Size != want {
		t.Errorf("Size = %+v, want %+v", box.Size, want)
	}
	if want := (RenderVec{}); box.Min() != want {
		t.Errorf("Min() = %+v, want %+v", box.Min(), want)
	}
	if want := (RenderVec{X: 100, Y: 25, Z: 50}); box.Max() != want {
		t.Errorf("Max() = %+v, want %+v", box.Max(), want)
	}
}

func TestBoundsBoxMatchesPlacementBox(t *testing.T) {
	p := Placement{
		Position: Vec3{X: 5, Y: 15, Z: 25},
		Size:     Size3{Width: 30, Depth: 20, Height: 10},
	}
	a := PlacementBox(p, 2)
	b := BoundsBox(Bounds([]Placement{p}), 2)
	if a != b {
		t.Errorf("BoundsBox() = %+v, PlacementBox() = %+v; single item should agree", b, a)
	}
}
