package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/observability"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/pipeline"
	"github.com/matzehuels/parcelview/pkg/reference"
)

// refreshDelay debounces engine calls while the cart is being edited.
const refreshDelay = 300 * time.Millisecond

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// Messages
// =============================================================================

// refreshMsg fires after refreshDelay; it is dropped if the cart changed since.
type refreshMsg struct{ seq uint64 }

// packedMsg carries an engine result back to the model.
type packedMsg struct {
	seq uint64
	res *pipeline.Result
	err error
}

// =============================================================================
// CartModel - Interactive cart editor with live parcel estimate
// =============================================================================

// CartModel is the bubbletea model for building a cart from the catalog.
// The local estimate updates on every key press; the engine result follows
// once editing pauses.
type CartModel struct {
	Items  []catalog.Item
	Cart   *catalog.Cart
	Cursor int
	Height int
	Offset int

	ctx     context.Context
	runner  *pipeline.Runner
	tracker *engine.Tracker

	estimate    parcel.Estimate
	hasEstimate bool
	packed      *pipeline.Result // last engine result for the current cart
	packing     bool
	engineErr   error
	Saved       bool // user confirmed with enter/s
}

// NewCartModel creates a cart model over items, seeded with cart.
func NewCartModel(ctx context.Context, runner *pipeline.Runner, items []catalog.Item, cart *catalog.Cart) CartModel {
	if cart == nil {
		cart = catalog.NewCart()
	}
	m := CartModel{
		Items:   items,
		Cart:    cart,
		Height:  12,
		ctx:     ctx,
		runner:  runner,
		tracker: &engine.Tracker{},
	}
	m.estimate, m.hasEstimate = runner.Estimate(ctx, cart.Lines())
	return m
}

func (m CartModel) Init() tea.Cmd {
	if m.Cart.Empty() {
		return nil
	}
	return m.scheduleRefresh()
}

func (m CartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Height = msg.Height - 16
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()

	case refreshMsg:
		if !m.tracker.Accept(msg.seq) {
			observability.Engine().OnStale(m.ctx, msg.seq)
			return m, nil
		}
		m.packing = true
		return m, m.pack(msg.seq, m.Cart.Lines())

	case packedMsg:
		if !m.tracker.Accept(msg.seq) {
			observability.Engine().OnStale(m.ctx, msg.seq)
			return m, nil
		}
		m.packing = false
		if msg.err != nil {
			m.engineErr = msg.err
			return m, nil
		}
		m.packed = msg.res
		m.engineErr = msg.res.Err
	}
	return m, nil
}

func (m CartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter", "s":
		m.Saved = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			m.clampOffset()
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
			m.clampOffset()
		}
		return m, nil
	}

	if len(m.Items) == 0 {
		return m, nil
	}
	item := m.Items[m.Cursor]
	changed := false
	switch msg.String() {
	case "+", "right", "l", " ":
		m.Cart.Add(item)
		changed = true
	case "-", "left", "h":
		changed = m.Cart.Decrement(item.ID)
	case "x", "delete", "backspace":
		changed = m.Cart.Remove(item.ID)
	case "c":
		changed = !m.Cart.Empty()
		m.Cart.Clear()
	}
	if !changed {
		return m, nil
	}
	return m, m.cartChanged()
}

// cartChanged refreshes the local estimate and schedules an engine call.
func (m *CartModel) cartChanged() tea.Cmd {
	m.estimate, m.hasEstimate = m.runner.Estimate(m.ctx, m.Cart.Lines())
	m.packed = nil
	m.engineErr = nil
	if m.Cart.Empty() {
		m.tracker.Begin() // drop anything in flight
		m.packing = false
		return nil
	}
	return m.scheduleRefresh()
}

func (m CartModel) scheduleRefresh() tea.Cmd {
	if m.runner.Engine == nil {
		return nil
	}
	seq := m.tracker.Begin()
	return tea.Tick(refreshDelay, func(time.Time) tea.Msg { return refreshMsg{seq: seq} })
}

func (m CartModel) pack(seq uint64, lines []catalog.Line) tea.Cmd {
	return func() tea.Msg {
		res, err := m.runner.Preview(m.ctx, lines)
		return packedMsg{seq: seq, res: res, err: err}
	}
}

func (m *CartModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Envelope returns the engine envelope when one has arrived, else the
// local estimate.
func (m CartModel) Envelope() (parcel.Estimate, bool) {
	if m.packed != nil && m.packed.Packed != nil {
		return *m.packed.Packed, true
	}
	return m.estimate, m.hasEstimate
}

func (m CartModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Build Cart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  +/- quantity  x remove  c clear  ⏎ done  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		qty := ""
		if n := m.Cart.Quantity(it.ID); n > 0 {
			qty = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			cursor,
			it.Name,
			it.Category.Label(),
			fmt.Sprintf("%s × %s × %s", formatCm(it.LengthCm), formatCm(it.WidthCm), formatCm(it.HeightCm)),
			qty,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Item", "Category", "cm", "Qty").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if m.Cart.Quantity(m.Items[idx].ID) > 0 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.parcelSummary()))
	b.WriteString("\n")
	return b.String()
}

func (m CartModel) parcelSummary() string {
	e, ok := m.Envelope()
	if !ok {
		return listDimStyle.Render("Cart is empty")
	}

	source := styleEstimate.Render(iconEstimate)
	switch {
	case m.packing:
		source = listDimStyle.Render("packing…")
	case m.packed != nil && !m.packed.Fallback:
		source = styleEngine.Render(iconEngine)
	}

	lines := []string{
		StyleValue.Render(formatEstimate(e)) + "  " + StyleNumber.Render(fmt.Sprintf("%d g", e.WeightG)) + "  " + source,
		listDimStyle.Render(fmt.Sprintf("%d items · size sum %s cm · about the size of a %s",
			e.ItemCount, formatCm(e.SizeSum()), strings.ToLower(reference.Select(e.MaxEdge()).Label))),
	}
	if m.engineErr != nil {
		lines = append(lines, StyleWarning.Render("engine: "+m.engineErr.Error()))
	}
	return strings.Join(lines, "\n")
}
