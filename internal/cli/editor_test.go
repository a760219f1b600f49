package cli

import (
	"image/color"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/config"
	"github.com/ioxu/boxer/pkg/geom"
	"github.com/ioxu/boxer/pkg/view/plugins"
)

// newTestEditor returns an 80x25 editor whose root fills the 640x384
// drawing area.
func newTestEditor(t *testing.T) editorModel {
	t.Helper()
	cfg := config.Default()
	explicit := false
	cfg.Root.Explicit = &explicit
	m := newEditorModel(newTestTree(t, cfg), 8, 16, log.New(io.Discard))
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
}

func update(t *testing.T, m editorModel, msg tea.Msg) editorModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(editorModel)
	if !ok {
		t.Fatalf("Update returned %T, want editorModel", next)
	}
	return em
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEditorResize(t *testing.T) {
	m := newTestEditor(t)
	if w, h := m.t.root.Width(), m.t.root.Height(); w != 640 || h != 384 {
		t.Errorf("root size = %vx%v, want 640x384", w, h)
	}
	if x, y := m.toLayout(0, 23); x != 4 || y != 8 {
		t.Errorf("toLayout(0, 23) = %v, %v, want 4, 8", x, y)
	}
	if x, y := m.toLayout(79, 0); x != 636 || y != 376 {
		t.Errorf("toLayout(79, 0) = %v, %v, want 636, 376", x, y)
	}
}

func TestEditorSplitUnderPointer(t *testing.T) {
	m := newTestEditor(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	if h := m.hovered(); h == nil || h != m.t.root {
		t.Fatalf("hovered() = %v, want root", h)
	}

	m = update(t, m, key('h'))
	leaves := m.t.root.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("leaf count after split = %d, want 2", len(leaves))
	}
	if got := m.hovered(); got != leaves[0] {
		t.Errorf("hovered() = %v, want left leaf", got)
	}
	if !leaves[0].MouseInside() {
		t.Error("left leaf should see the pointer after the split")
	}
	if !strings.Contains(m.status, "split horizontal") {
		t.Errorf("status = %q, want split report", m.status)
	}

	m = update(t, m, key('x'))
	if m.failed {
		t.Fatalf("close failed: %s", m.status)
	}
	leaves = m.t.root.Leaves()
	if len(leaves) != 1 || leaves[0].Name != "root_container_hsplit_cright" {
		t.Errorf("leaves after close = %v, want the promoted right leaf", leaves)
	}
}

func TestEditorRejectedAction(t *testing.T) {
	m := newTestEditor(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	m = update(t, m, key('x'))
	if !m.failed || m.status == "" {
		t.Errorf("closing the root should fail, status = %q", m.status)
	}
	if n := len(m.t.root.Leaves()); n != 1 {
		t.Errorf("leaf count = %d, want 1", n)
	}
}

func TestEditorCycleViews(t *testing.T) {
	m := newTestEditor(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	want := []string{plugins.GraphName, plugins.ParametersName, ""}
	for _, name := range want {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.t.reg.ViewName(m.t.root); got != name {
			t.Fatalf("view after tab = %q, want %q", got, name)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.t.reg.ViewName(m.t.root); got != plugins.ParametersName {
		t.Errorf("view after shift+tab = %q, want %q", got, plugins.ParametersName)
	}

	m = update(t, m, key('1'))
	if got := m.t.reg.ViewName(m.t.root); got != plugins.GraphName {
		t.Errorf("view after 1 = %q, want %q", got, plugins.GraphName)
	}
	m = update(t, m, key('9'))
	if got := m.t.reg.ViewName(m.t.root); got != plugins.GraphName {
		t.Errorf("out of range index changed the view to %q", got)
	}
}

func TestEditorDragHandle(t *testing.T) {
	m := newTestEditor(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	m = update(t, m, key('h'))

	split := m.t.root.Child(0)
	if split == nil || split.Handle() == nil {
		t.Fatal("expected a split with a handle under the root")
	}

	// The handle sits at (320, 192); cell (40, 11) maps to (324, 200).
	m = update(t, m, tea.MouseMsg{X: 40, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !split.Handle().Selected() {
		t.Fatal("press over the handle should select it")
	}
	m = update(t, m, tea.MouseMsg{X: 50, Y: 11, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 50, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if got := split.Ratio(); got != 0.625 {
		t.Errorf("ratio after drag = %v, want 0.625", got)
	}
	if split.Handle().Selected() {
		t.Error("release should deselect the handle")
	}
	if m.buttons != 0 {
		t.Errorf("buttons after release = %v, want none", m.buttons)
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t)
	for _, msg := range []tea.KeyMsg{key('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%q should quit", msg.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q should return tea.Quit", msg.String())
		}
	}
}

func TestEditorView(t *testing.T) {
	m := newEditorModel(newTestTree(t, nil), 8, 16, log.New(io.Discard))
	if got := m.View(); !strings.Contains(got, "starting") {
		t.Errorf("View() before sizing = %q", got)
	}

	m = newTestEditor(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	m = update(t, m, key('h'))
	m = update(t, m, key('1'))

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 25 {
		t.Errorf("View() has %d lines, want 25", len(lines))
	}
	for _, want := range []string{"root_container_hsplit_cleft", "root_container_hsplit_cright", "[graph]", "╭", "┃"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestEditorCellRect(t *testing.T) {
	m := newTestEditor(t)

	c0, r0, c1, r1, ok := m.cellRect(geom.R(0, 0, 640, 384))
	if !ok || c0 != 0 || r0 != 0 || c1 != 79 || r1 != 23 {
		t.Errorf("cellRect(full) = %d,%d..%d,%d ok=%v, want 0,0..79,23", c0, r0, c1, r1, ok)
	}
	if _, _, _, _, ok := m.cellRect(geom.R(1000, 1000, 10, 10)); ok {
		t.Error("off-screen rect should not map to cells")
	}
	if col, row := m.cellOf(geom.V(12, 20)); col != 1 || row != 22 {
		t.Errorf("cellOf(12, 20) = %d, %d, want 1, 22", col, row)
	}
}

func TestBlend(t *testing.T) {
	if got := blend(color.RGBA{255, 0, 0, 255}); got != "#ff0000" {
		t.Errorf("opaque blend = %s, want #ff0000", got)
	}
	if got := blend(color.RGBA{255, 255, 255, 0}); got != "#1c1c1c" {
		t.Errorf("transparent blend = %s, want background", got)
	}
}
