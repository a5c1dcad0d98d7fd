package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/observability"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Viewer bounds. Wider mazes do not fit an ordinary terminal.
const (
	viewMinSize   = 1
	viewMaxWidth  = 60
	viewMaxHeight = 30
)

// viewCommand creates the interactive maze viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		width, height   int
		algorithm, seed string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore mazes interactively",
		Long: `Open an interactive viewer in the terminal.

Keys: r new seed, tab/shift+tab switch algorithm, +/- resize,
arrow keys change width and height, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts := cfg.PipelineOptions()
			if cmd.Flags().Changed("width") {
				popts.Width = width
			}
			if cmd.Flags().Changed("height") {
				popts.Height = height
			}
			if cmd.Flags().Changed("algorithm") {
				popts.Algorithm = algorithm
			}
			if cmd.Flags().Changed("seed") || cfg.Maze.Seed == nil {
				if popts.Seed, _, err = pipeline.ParseSeed(seed); err != nil {
					return err
				}
			}
			if err := popts.ValidateForGenerate(); err != nil {
				return err
			}

			// Log lines would tear the alternate screen.
			observability.Reset()

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			m := newViewModel(cmd.Context(), runner, popts, pipeline.NewSeed)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&width, "width", "W", pipeline.DefaultWidth, "maze width in cells")
	cmd.Flags().IntVarP(&height, "height", "H", pipeline.DefaultHeight, "maze height in cells")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "initial algorithm")
	cmd.Flags().StringVarP(&seed, "seed", "s", "", "initial seed")

	return cmd
}

// =============================================================================
// viewModel - Interactive maze viewer
// =============================================================================

type viewModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	newSeed func() uint64

	algorithms []string
	algo       int
	width      int
	height     int
	seed       uint64

	maze  string
	stats grid.Stats
	err   error
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, newSeed func() uint64) viewModel {
	m := viewModel{
		ctx:        ctx,
		runner:     runner,
		newSeed:    newSeed,
		algorithms: generate.Names(),
		width:      clamp(opts.Width, viewMinSize, viewMaxWidth),
		height:     clamp(opts.Height, viewMinSize, viewMaxHeight),
		seed:       opts.Seed,
	}
	if i := slices.Index(m.algorithms, opts.Algorithm); i >= 0 {
		m.algo = i
	}
	m.regenerate()
	return m
}

func (m viewModel) algorithm() string { return m.algorithms[m.algo] }

// regenerate rebuilds the maze from the current algorithm, size and seed.
func (m *viewModel) regenerate() {
	g, err := m.runner.Generate(m.ctx, pipeline.Options{
		Algorithm: m.algorithm(),
		Width:     m.width,
		Height:    m.height,
		Seed:      m.seed,
	})
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.maze = render.Text(g)
	m.stats = grid.Summarize(g)
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r", " ":
		m.seed = m.newSeed()
	case "tab":
		m.algo = (m.algo + 1) % len(m.algorithms)
	case "shift+tab":
		m.algo = (m.algo + len(m.algorithms) - 1) % len(m.algorithms)
	case "+", "=":
		m.width = clamp(m.width+1, viewMinSize, viewMaxWidth)
		m.height = clamp(m.height+1, viewMinSize, viewMaxHeight)
	case "-", "_":
		m.width = clamp(m.width-1, viewMinSize, viewMaxWidth)
		m.height = clamp(m.height-1, viewMinSize, viewMaxHeight)
	case "right", "l":
		m.width = clamp(m.width+1, viewMinSize, viewMaxWidth)
	case "left", "h":
		m.width = clamp(m.width-1, viewMinSize, viewMaxWidth)
	case "down", "j":
		m.height = clamp(m.height+1, viewMinSize, viewMaxHeight)
	case "up", "k":
		m.height = clamp(m.height-1, viewMinSize, viewMaxHeight)
	default:
		return m, nil
	}
	m.regenerate()
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Labyrinth"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %dx%d · seed %d", m.algorithm(), m.width, m.height, m.seed)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	} else {
		b.WriteString(StyleMaze.Render(m.maze))
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d dead ends · %d corridors · %d junctions",
			m.stats.DeadEnds, m.stats.Corridors, m.stats.Junctions)))
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("r new seed  tab algorithm  +/- size  ←→ width  ↑↓ height  q quit"))
	return b.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
