package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/config"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
)

// generateOpts holds the raw flag values of the generate command.
type generateOpts struct {
	width       int
	height      int
	algorithm   string
	seed        string
	formats     string
	output      string
	cellSize    float64
	stroke      string
	strokeWidth float64
	margin      float64
	scale       float64
	noCache     bool
	refresh     bool
	stats       bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a maze and render it",
		Long: `Generate a perfect maze and render it in one or more formats.

A single txt rendering goes to stdout unless --output is given. With several
formats, or a binary one, each is written to <base><ext> where <base> is the
--output path without its extension (default "maze-<seed>").`,
		Example: `  labyrinth generate
  labyrinth generate -W 30 -H 12 -a sidewinder -s 42
  labyrinth generate -f svg,png,tree-svg -o out/maze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cfg, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return c.runGenerate(ctx, cfg, popts, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.width, "width", "W", pipeline.DefaultWidth, "maze width in cells")
	f.IntVarP(&opts.height, "height", "H", pipeline.DefaultHeight, "maze height in cells")
	f.StringVarP(&opts.algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "algorithm: "+strings.Join(generate.Names(), ", "))
	f.StringVarP(&opts.seed, "seed", "s", "", "random seed (decimal or 0x hex; empty picks one)")
	f.StringVarP(&opts.formats, "format", "f", pipeline.FormatText, "output formats: "+strings.Join(pipeline.Formats, ", "))
	f.StringVarP(&opts.output, "output", "o", "", "output base path")
	f.Float64Var(&opts.cellSize, "cell-size", pipeline.DefaultCellSize, "cell edge length in SVG units")
	f.StringVar(&opts.stroke, "stroke", pipeline.DefaultStroke, "wall colour")
	f.Float64Var(&opts.strokeWidth, "stroke-width", pipeline.DefaultStrokeWidth, "wall thickness")
	f.Float64Var(&opts.margin, "margin", 0, "margin around the maze")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	f.BoolVar(&opts.stats, "stats", false, "print maze statistics")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return generate.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// pipelineOptions merges config values with the flags the user set.
func (o *generateOpts) pipelineOptions(cfg config.Config, changed func(string) bool) (pipeline.Options, error) {
	popts := cfg.PipelineOptions()

	if changed("width") {
		popts.Width = o.width
	}
	if changed("height") {
		popts.Height = o.height
	}
	if changed("algorithm") {
		popts.Algorithm = o.algorithm
	}
	if changed("format") {
		formats, err := pipeline.ParseFormats(o.formats)
		if err != nil {
			return popts, err
		}
		popts.Formats = formats
	}
	if changed("cell-size") {
		popts.CellSize = o.cellSize
	}
	if changed("stroke") {
		popts.Stroke = o.stroke
	}
	if changed("stroke-width") {
		popts.StrokeWidth = o.strokeWidth
	}
	if changed("margin") {
		popts.Margin = o.margin
	}
	if changed("scale") {
		popts.Scale = o.scale
	}
	popts.Refresh = o.refresh

	switch {
	case changed("seed"):
		seed, _, err := pipeline.ParseSeed(o.seed)
		if err != nil {
			return popts, err
		}
		popts.Seed = seed
	case cfg.Maze.Seed == nil:
		popts.Seed = pipeline.NewSeed()
	}
	return popts, nil
}

func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, popts pipeline.Options, opts *generateOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %dx%d %s maze", popts.Width, popts.Height, popts.Algorithm))
	logger.Debug("maze", "seed", popts.Seed, "key", result.MazeKey, "cache_hits", result.CacheInfo.Hits)

	if toStdout(popts.Formats, opts.output) {
		if _, err := stdout.Write(result.Artifacts[pipeline.FormatText]); err != nil {
			return err
		}
	} else {
		base := basePath(opts.output)
		if base == "" {
			base = "maze-" + strconv.FormatUint(popts.Seed, 10)
		}
		paths, err := writeArtifacts(base, popts.Formats, result.Artifacts)
		if err != nil {
			return err
		}
		printSuccess("Wrote %d file(s)", len(paths))
		for _, p := range paths {
			printFile(p)
		}
	}

	if opts.stats {
		printStatsBlock(popts, result)
	}
	return nil
}

// toStdout reports whether the only requested artifact is text with no
// output path.
func toStdout(formats []string, output string) bool {
	return output == "" && len(formats) == 1 && formats[0] == pipeline.FormatText
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	for _, f := range pipeline.Formats {
		if ext := pipeline.Extensions[f]; strings.HasSuffix(output, ext) && strings.Count(ext, ".") > 1 {
			return strings.TrimSuffix(output, ext)
		}
	}
	ext := filepath.Ext(output)
	for _, known := range pipeline.Extensions {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifacts writes each format to base plus its extension, in the
// order requested, and returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return paths, errs.New(errs.ErrCodeInternal, "missing %s artifact", f)
		}
		path := base + pipeline.Extensions[f]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func printStatsBlock(popts pipeline.Options, result *pipeline.Result) {
	s := result.Stats.Maze
	fmt.Fprintln(uiOut, mazeSummary(popts.Width, popts.Height, s.Links, result.CacheInfo.RenderHit))
	printKeyValue("algorithm", popts.Algorithm)
	printKeyValue("seed", strconv.FormatUint(popts.Seed, 10))
	printKeyValue("dead ends", strconv.Itoa(s.DeadEnds))
	printKeyValue("corridors", strconv.Itoa(s.Corridors))
	printKeyValue("junctions", strconv.Itoa(s.Junctions))
	printKeyValue("generate", result.Stats.GenerateTime.String())
	printKeyValue("render", result.Stats.RenderTime.String())
}
