package cli

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/input"
	"github.com/ioxu/boxer/pkg/view"
)

// Editor styles
var (
	editorBackground = color.RGBA{28, 28, 28, 255}

	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

const editorHelp = "h/v split · x close · s close split · o close others · tab view · q quit"

// =============================================================================
// editorModel - terminal as window
// =============================================================================

// editorModel drives a layout tree from terminal input. Each terminal cell
// stands for cellW x cellH layout units; the bottom terminal row is the
// status line, and layout y grows upwards from the row above it.
type editorModel struct {
	t      *tree
	logger *log.Logger

	cellW, cellH float64
	cols, rows   int

	mouseX, mouseY float64
	buttons        input.Buttons

	status string
	failed bool
}

func newEditorModel(t *tree, cellW, cellH float64, logger *log.Logger) editorModel {
	return editorModel{t: t, logger: logger, cellW: cellW, cellH: cellH}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "h":
			m.act(container.ActionSplitHorizontal)
		case "v":
			m.act(container.ActionSplitVertical)
		case "x":
			m.act(container.ActionClose)
		case "s":
			m.act(container.ActionCloseSplit)
		case "o":
			m.act(container.ActionCloseOthers)
		case "tab":
			m.cycleView(1)
		case "shift+tab":
			m.cycleView(-1)
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				m.selectView(int(key[0] - '0'))
			}
		}
	}
	return m, nil
}

// drawRows is the number of terminal rows showing the layout.
func (m *editorModel) drawRows() int { return max(0, m.rows-1) }

func (m *editorModel) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	m.t.src.SetSize(float64(cols)*m.cellW, float64(m.drawRows())*m.cellH)
	m.t.root.Update()
}

// toLayout returns the layout point at the centre of a terminal cell.
func (m *editorModel) toLayout(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.cellW, (float64(m.drawRows()-1-row) + 0.5) * m.cellH
}

func buttonOf(b tea.MouseButton) input.Buttons {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle
	case tea.MouseButtonRight:
		return input.ButtonRight
	}
	return 0
}

func modsOf(msg tea.MouseMsg) input.Modifiers {
	var mods input.Modifiers
	if msg.Shift {
		mods |= input.ModShift
	}
	if msg.Ctrl {
		mods |= input.ModCtrl
	}
	if msg.Alt {
		mods |= input.ModAlt
	}
	return mods
}

// mouse forwards a terminal mouse event to the dispatcher. Motion with a
// button held is a drag and does not also count as plain motion.
func (m *editorModel) mouse(msg tea.MouseMsg) {
	x, y := m.toLayout(msg.X, msg.Y)
	dx, dy := x-m.mouseX, y-m.mouseY
	mods := modsOf(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		b := buttonOf(msg.Button)
		if b == 0 {
			return
		}
		m.buttons |= b
		m.t.src.MousePress(x, y, b, mods)
	case tea.MouseActionRelease:
		if m.buttons != 0 {
			m.t.src.MouseRelease(x, y, m.buttons, mods)
			m.buttons = 0
		}
	case tea.MouseActionMotion:
		if m.buttons != 0 {
			m.t.src.MouseDrag(x, y, dx, dy, m.buttons, mods)
		} else {
			m.t.src.MouseMotion(x, y, dx, dy)
		}
	}
	m.mouseX, m.mouseY = x, y
}

// hovered returns the leaf under the pointer.
func (m *editorModel) hovered() *container.Container {
	return m.t.root.LeafAt(m.mouseX, m.mouseY)
}

func (m *editorModel) setStatus(err error, format string, args ...any) {
	m.failed = err != nil
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.status = fmt.Sprintf(format, args...)
}

func (m *editorModel) act(a container.Action) {
	c := m.hovered()
	if c == nil {
		m.setStatus(errors.New(errors.ErrCodeInvalidInput, "no leaf under the pointer"), "")
		return
	}
	out, err := m.t.apply(c, a)
	if err != nil {
		m.logger.Debug("action rejected", "action", a, "container", c.Name, "err", err)
		m.setStatus(err, "")
		return
	}
	names := make([]string, len(out))
	for i, o := range out {
		names[i] = o.Name
	}
	m.setStatus(nil, "%s %s → %s", a, c.Name, strings.Join(names, ", "))

	// Refresh enter/exit state for the leaves that now lie under the pointer.
	m.t.src.MouseMotion(m.mouseX, m.mouseY, 0, 0)
}

// selectView shows catalog entry idx-1 in the hovered leaf; 0 removes the
// view.
func (m *editorModel) selectView(idx int) {
	names := m.t.reg.Catalog().Names()
	if idx >= len(names) {
		return
	}
	c := m.hovered()
	if c == nil {
		return
	}
	err := m.t.setView(c, names[idx])
	m.setStatus(err, "%s shows %s", c.Name, names[idx])
}

func (m *editorModel) cycleView(step int) {
	c := m.hovered()
	if c == nil {
		return
	}
	n := m.t.reg.Catalog().Len() + 1
	m.selectView(((c.ViewIndex()+1+step)%n + n) % n)
}

// =============================================================================
// Drawing
// =============================================================================

func (m editorModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return "starting…"
	}
	g := newGrid(m.cols, m.drawRows())

	for _, b := range m.t.reg.Batches() {
		for _, p := range b.Primitives() {
			m.drawPrimitive(g, p)
		}
	}

	hover := m.hovered()
	for _, leaf := range m.t.root.Leaves() {
		fg := colorDim
		if leaf == hover {
			fg = colorCyan
		}
		m.drawOutline(g, leaf, fg)
	}

	m.t.root.Walk(func(c *container.Container) bool {
		if h := c.Handle(); h != nil {
			fg := colorGray
			switch {
			case h.Selected():
				fg = colorYellow
			case h.Hilighted():
				fg = colorCyan
			}
			r := '┃'
			if c.Kind() == container.KindVSplit {
				r = '━'
			}
			if c0, r0, c1, r1, ok := m.cellRect(h.DisplayBox()); ok {
				for row := r0; row <= r1; row++ {
					for col := c0; col <= c1; col++ {
						g.set(col, row, r, fg)
					}
				}
			}
		}
		return true
	})

	return g.String() + "\n" + m.statusLine(hover)
}

func (m editorModel) statusLine(hover *container.Container) string {
	left := editorHelp
	if hover != nil {
		name := m.t.reg.ViewName(hover)
		if name == "" {
			name = view.NoneName
		}
		left = fmt.Sprintf("%s [%s] · %s", hover.Name, name, editorHelp)
	}
	line := editorStatusStyle.Render(left)
	if m.status != "" {
		style := StyleSuccess
		if m.failed {
			style = editorErrorStyle
		}
		line += "  " + style.Render(m.status)
	}
	return line
}

// cellRect maps a layout rectangle to the inclusive range of cells it
// touches, clipped to the grid.
func (m editorModel) cellRect(r geom.Rect) (c0, r0, c1, r1 int, ok bool) {
	rows := m.drawRows()
	c0 = int(math.Floor(r.X / m.cellW))
	c1 = int(math.Ceil((r.X+r.W)/m.cellW)) - 1
	r0 = rows - int(math.Ceil((r.Y+r.H)/m.cellH))
	r1 = rows - 1 - int(math.Floor(r.Y/m.cellH))
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, m.cols-1), min(r1, rows-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}

func (m editorModel) cellOf(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X / m.cellW)), m.drawRows() - 1 - int(math.Floor(p.Y/m.cellH))
}

func (m editorModel) drawOutline(g *grid, c *container.Container, fg lipgloss.Color) {
	c0, r0, c1, r1, ok := m.cellRect(c.Outline())
	if !ok {
		return
	}
	for col := c0 + 1; col < c1; col++ {
		g.set(col, r0, '─', fg)
		g.set(col, r1, '─', fg)
	}
	for row := r0 + 1; row < r1; row++ {
		g.set(c0, row, '│', fg)
		g.set(c1, row, '│', fg)
	}
	g.set(c0, r0, '╭', fg)
	g.set(c1, r0, '╮', fg)
	g.set(c0, r1, '╰', fg)
	g.set(c1, r1, '╯', fg)

	if room := c1 - c0 - 3; room > 0 {
		name := []rune(c.Name)
		if len(name) > room {
			name = name[:room]
		}
		g.text(c0+2, r0, string(name), fg)
	}
}

func (m editorModel) drawPrimitive(g *grid, p *view.Primitive) {
	if !p.Visible() {
		return
	}
	c := blend(p.Color)
	switch p.Kind {
	case view.PrimitiveRect:
		if c0, r0, c1, r1, ok := m.cellRect(p.Rect); ok {
			g.fill(c0, r0, c1, r1, c)
		}
	case view.PrimitiveCircle:
		col, row := m.cellOf(p.Center)
		g.set(col, row, '●', c)
	case view.PrimitiveLabel:
		col, row := m.cellOf(p.Center)
		g.text(col, row, p.Text, c)
	}
}

// blend composites c over the editor background.
func blend(c color.RGBA) lipgloss.Color {
	a := float64(c.A) / 255
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(bg) + (float64(fg)-float64(bg))*a))
	}
	b := editorBackground
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", mix(c.R, b.R), mix(c.G, b.G), mix(c.B, b.B)))
}

// =============================================================================
// grid - styled terminal cells
// =============================================================================

type cell struct {
	r      rune
	fg, bg lipgloss.Color
}

type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

func (g *grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.w || row >= g.h {
		return nil
	}
	return &g.cells[row*g.w+col]
}

// set writes a glyph, keeping the cell's background.
func (g *grid) set(col, row int, r rune, fg lipgloss.Color) {
	if c := g.at(col, row); c != nil {
		c.r, c.fg = r, fg
	}
}

func (g *grid) fill(c0, r0, c1, r1 int, bg lipgloss.Color) {
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if c := g.at(col, row); c != nil {
				c.bg = bg
			}
		}
	}
}

func (g *grid) text(col, row int, s string, fg lipgloss.Color) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, fg)
	}
}

// String renders the grid, one styled run per stretch of equal colours.
func (g *grid) String() string {
	var b strings.Builder
	for row := range g.h {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := g.cells[row*g.w : (row+1)*g.w]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg && line[end].bg == line[start].bg {
				end++
			}
			run := make([]rune, 0, end-start)
			for _, c := range line[start:end] {
				run = append(run, c.r)
			}
			style := lipgloss.NewStyle()
			if line[start].fg != "" {
				style = style.Foreground(line[start].fg)
			}
			if line[start].bg != "" {
				style = style.Background(line[start].bg)
			}
			b.WriteString(style.Render(string(run)))
			start = end
		}
	}
	return b.String()
}
