package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
	"github.com/matzehuels/labyrinth/pkg/render"
)

func newTestViewModel(t *testing.T, algorithm string, width, height int) viewModel {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	opts := pipeline.Options{Algorithm: algorithm, Width: width, Height: height, Seed: 7}
	return newViewModel(context.Background(), runner, opts, func() uint64 { return 99 })
}

func press(m viewModel, key tea.KeyMsg) (viewModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(viewModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func expectedMaze(t *testing.T, algorithm string, width, height int, seed uint64) string {
	t.Helper()
	g, err := generate.Run(algorithm, width, height, seed)
	if err != nil {
		t.Fatalf("generate.Run: %v", err)
	}
	return render.Text(g)
}

func TestViewModelInitialMaze(t *testing.T) {
	m := newTestViewModel(t, generate.NameSidewinder, 6, 4)

	if m.algorithm() != generate.NameSidewinder {
		t.Errorf("algorithm = %q, want %q", m.algorithm(), generate.NameSidewinder)
	}
	if m.err != nil {
		t.Fatalf("err = %v", m.err)
	}
	if want := expectedMaze(t, generate.NameSidewinder, 6, 4, 7); m.maze != want {
		t.Errorf("maze =\n%s\nwant\n%s", m.maze, want)
	}
	if m.stats.Links != 6*4-1 {
		t.Errorf("stats.Links = %d, want %d", m.stats.Links, 6*4-1)
	}
}

func TestViewModelRegenerate(t *testing.T) {
	m := newTestViewModel(t, generate.NameBinaryTree, 5, 5)

	m, _ = press(m, runes("r"))
	if m.seed != 99 {
		t.Errorf("seed after r = %d, want 99", m.seed)
	}
	if want := expectedMaze(t, generate.NameBinaryTree, 5, 5, 99); m.maze != want {
		t.Errorf("maze after r does not match seed 99")
	}
}

func TestViewModelSwitchAlgorithm(t *testing.T) {
	m := newTestViewModel(t, generate.NameBinaryTree, 4, 4)
	names := generate.Names()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.algorithm() != names[1%len(names)] {
		t.Errorf("algorithm after tab = %q, want %q", m.algorithm(), names[1%len(names)])
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.algorithm() != names[0] {
		t.Errorf("algorithm after shift+tab = %q, want %q", m.algorithm(), names[0])
	}
}

func TestViewModelResize(t *testing.T) {
	m := newTestViewModel(t, generate.NameBinaryTree, 1, 1)

	m, _ = press(m, runes("-"))
	if m.width != viewMinSize || m.height != viewMinSize {
		t.Errorf("size after shrink = %dx%d, want %dx%d", m.width, m.height, viewMinSize, viewMinSize)
	}

	m, _ = press(m, runes("+"))
	if m.width != 2 || m.height != 2 {
		t.Errorf("size after grow = %dx%d, want 2x2", m.width, m.height)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.width != 3 || m.height != 4 {
		t.Errorf("size after arrows = %dx%d, want 3x4", m.width, m.height)
	}
	if want := expectedMaze(t, generate.NameBinaryTree, 3, 4, 7); m.maze != want {
		t.Errorf("maze not regenerated after resize")
	}
}

func TestViewModelClampsInitialSize(t *testing.T) {
	m := newTestViewModel(t, generate.NameBinaryTree, 500, 0)
	if m.width != viewMaxWidth || m.height != viewMinSize {
		t.Errorf("size = %dx%d, want %dx%d", m.width, m.height, viewMaxWidth, viewMinSize)
	}
}

func TestViewModelQuit(t *testing.T) {
	m := newTestViewModel(t, generate.NameBinaryTree, 3, 3)

	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		if _, cmd := press(m, key); cmd == nil {
			t.Errorf("key %q should quit", key.String())
		}
	}
	if _, cmd := press(m, runes("x")); cmd != nil {
		t.Error("unbound key should not return a command")
	}
}

func TestViewModelView(t *testing.T) {
	m := newTestViewModel(t, generate.NameSidewinder, 3, 2)
	view := m.View()

	for _, want := range []string{"sidewinder", "3x2", "seed 7", "dead ends", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
