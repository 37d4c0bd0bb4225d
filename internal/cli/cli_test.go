package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/geom"
	"github.com/matzehuels/parcelview/pkg/observability"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/pipeline"
	"github.com/matzehuels/parcelview/pkg/reference"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, json,,pdf", []string{"svg", "json", "pdf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "carts/cart.toml", "carts/cart"},
		{"out/parcel.svg", "cart.toml", "out/parcel"},
		{"out/parcel", "cart.toml", "out/parcel"},
		{"out/parcel.v2", "cart.toml", "out/parcel.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"estimate", "scene", "preview", "manual", "tiers", "catalog", "cart", "serve", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestTierRows(t *testing.T) {
	rows := tierRows(reference.Tiers)
	if len(rows) != len(reference.Tiers) {
		t.Fatalf("rows = %d, want %d", len(rows), len(reference.Tiers))
	}
	if rows[0][0] != "0 – 20 cm" || rows[0][1] != "Smartphone" {
		t.Errorf("first row = %v", rows[0])
	}
	if last := rows[len(rows)-1]; last[0] != "≥ 160 cm" {
		t.Errorf("last row = %v", last)
	}
}

func TestItemsInCategory(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Category: catalog.Books},
		{ID: 2, Category: catalog.Games},
	}
	if got := itemsInCategory(items, ""); len(got) != 2 {
		t.Errorf("no filter kept %d items", len(got))
	}
	if got := itemsInCategory(items, catalog.Games); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("games filter = %+v", got)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	config := filepath.Join(t.TempDir(), "missing.toml")
	root.SetArgs(append([]string{"--config", config}, args...))
	return root.ExecuteContext(context.Background())
}

func TestSceneCommandWritesArtifact(t *testing.T) {
	in := writeFile(t, "placements.json",
		`[{"name":"box","x":0,"y":0,"z":0,"width":200,"depth":100,"height":50}]`)
	out := filepath.Join(t.TempDir(), "nested", "scene.json")

	if err := execute(t, "scene", in, "-f", "json", "-o", out); err != nil {
		t.Fatalf("scene: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"items"`) {
		t.Errorf("scene.json = %s", data)
	}
}

func TestManualCommandMultipleFormats(t *testing.T) {
	base := filepath.Join(t.TempDir(), "parcel")
	if err := execute(t, "manual", "-l", "30", "-w", "20", "-H", "10", "--weight", "500", "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("manual: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}
}

func TestRenderOptsApply(t *testing.T) {
	r := pipeline.NewRunner(nil, quietLogger(), pipeline.DefaultOptions())
	opts := renderOpts{formats: "png,json", views: "top", labels: true, scale: 3}

	formats, err := opts.apply(r)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(formats, []string{"png", "json"}) {
		t.Errorf("formats = %v", formats)
	}
	if r.Options.PNGScale != 3 || !r.Options.Labels || len(r.Options.Views) != 1 {
		t.Errorf("options = %+v", r.Options)
	}

	opts.scale = 20
	if _, err := opts.apply(r); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("apply(scale 20) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestCommandErrors(t *testing.T) {
	cart := writeFile(t, "cart.json", `{"items":[{"productId":999999,"quantity":1}]}`)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown product", []string{"estimate", cart}, errors.ErrCodeProductNotFound},
		{"missing file", []string{"estimate", "nope.json"}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"manual", "-l", "1", "-w", "1", "-H", "1", "--weight", "1", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad dimension", []string{"manual", "--length=-1", "-w", "1", "-H", "1", "--weight", "1"}, errors.ErrCodeInvalidDimensions},
		{"bad view", []string{"manual", "-l", "1", "-w", "1", "-H", "1", "--weight", "1", "--views", "side"}, errors.ErrCodeInvalidInput},
		{"bad png scale", []string{"manual", "-l", "1", "-w", "1", "-H", "1", "--weight", "1", "--png-scale=-2"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

// =============================================================================
// Cart model
// =============================================================================

type stubPacker struct{ calls int }

func (p *stubPacker) Pack(context.Context, []catalog.Request) (*engine.PackResult, error) {
	p.calls++
	return &engine.PackResult{
		Dimensions: parcel.Estimate{LengthCm: 16, WidthCm: 11, HeightCm: 4, WeightG: 320, ItemCount: 2},
		Placements: []geom.Placement{{Name: "novel", Size: geom.Size3{Width: 150, Depth: 105, Height: 30}}},
	}, nil
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Category: catalog.Books, Name: "novel", LengthCm: 15, WidthCm: 10.5, HeightCm: 1.5, WeightG: 150},
		{ID: 2, Category: catalog.Games, Name: "cartridge", LengthCm: 6, WidthCm: 4, HeightCm: 1, WeightG: 20},
	}
}

func update(t *testing.T, m CartModel, msg tea.Msg) (CartModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(CartModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return cm, cmd
}

func TestCartModelEditsWithoutEngine(t *testing.T) {
	runner := pipeline.NewRunner(nil, quietLogger(), pipeline.DefaultOptions())
	m := NewCartModel(context.Background(), runner, testItems(), nil)

	m, cmd := update(t, m, key("+"))
	if cmd != nil {
		t.Error("refresh scheduled without an engine")
	}
	m, _ = update(t, m, key("+"))
	e, ok := m.Envelope()
	if !ok || e.ItemCount != 2 || e.HeightCm != 3 {
		t.Errorf("Envelope() = %+v, %v", e, ok)
	}

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, key("-"))
	if m.Cart.Quantity(2) != 0 || m.Cart.Quantity(1) != 2 {
		t.Errorf("quantities = %d, %d", m.Cart.Quantity(1), m.Cart.Quantity(2))
	}

	m, _ = update(t, m, key("c"))
	if !m.Cart.Empty() {
		t.Error("clear left items in the cart")
	}
	if !strings.Contains(m.View(), "Cart is empty") {
		t.Error("view should show the empty cart")
	}

	m, cmd = update(t, m, key("enter"))
	if !m.Saved || cmd == nil {
		t.Error("enter should save and quit")
	}
}

type staleHooks struct {
	observability.NoopEngineHooks
	mu   sync.Mutex
	seqs []uint64
}

func (h *staleHooks) OnStale(_ context.Context, seq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seqs = append(h.seqs, seq)
}

func TestCartModelIgnoresStaleResults(t *testing.T) {
	hooks := &staleHooks{}
	observability.SetEngineHooks(hooks)
	t.Cleanup(observability.Reset)

	packer := &stubPacker{}
	runner := pipeline.NewRunner(packer, quietLogger(), pipeline.DefaultOptions())
	m := NewCartModel(context.Background(), runner, testItems(), nil)

	m, cmd := update(t, m, key("+"))
	if cmd == nil {
		t.Fatal("no refresh scheduled")
	}
	stale := m.tracker.Latest()

	m, _ = update(t, m, key("+"))
	latest := m.tracker.Latest()

	if _, cmd := update(t, m, refreshMsg{seq: stale}); cmd != nil {
		t.Error("stale refresh started a pack")
	}

	m, cmd = update(t, m, refreshMsg{seq: latest})
	if cmd == nil || !m.packing {
		t.Fatal("current refresh did not start a pack")
	}
	msg := cmd()
	if packer.calls != 1 {
		t.Errorf("engine calls = %d, want 1", packer.calls)
	}

	m, _ = update(t, m, packedMsg{seq: stale, res: &pipeline.Result{}})
	if m.packed != nil {
		t.Error("stale pack result applied")
	}

	m, _ = update(t, m, msg)
	e, ok := m.Envelope()
	if !ok || e.WeightG != 320 || m.packing {
		t.Errorf("Envelope() = %+v, packing = %v", e, m.packing)
	}
	if !strings.Contains(m.View(), iconEngine) {
		t.Error("view should mark the engine result")
	}
	if !slices.Equal(hooks.seqs, []uint64{stale, stale}) {
		t.Errorf("stale hooks saw %v, want [%d %d]", hooks.seqs, stale, stale)
	}
}

func TestRateRows(t *testing.T) {
	rows := rateRows([]engine.RateOption{
		{ID: 1, ServiceName: "Click Post", CompanyName: "Japan Post", PriceYen: 185, Recommended: true},
		{ID: 2, ServiceName: "Takkyubin", CompanyName: "Yamato", PriceYen: 930, HasTracking: true},
	})
	want := [][]string{
		{iconSuccess, "Click Post", "Japan Post", "¥185", "no"},
		{"", "Takkyubin", "Yamato", "¥930", "yes"},
	}
	for i := range want {
		if !slices.Equal(rows[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestCompleteList(t *testing.T) {
	got, _ := completeList(formatNames())(nil, nil, "svg,p")
	want := []string{"svg,json", "svg,pdf", "svg,png", "svg,svg"}
	if !slices.Equal(got, want) {
		t.Errorf("completions = %v, want %v", got, want)
	}
	if views := viewNames(); !slices.Equal(views, []string{"front", "top"}) {
		t.Errorf("viewNames() = %v", views)
	}
}
