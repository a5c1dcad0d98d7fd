package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labyrinth/pkg/cache"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/observability"
)

// Runner executes the pipeline against an artifact cache.
//
// A Runner holds no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-format artifact lifetimes when positive.
	TTL time.Duration
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute generates, verifies and renders a maze.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{MazeKey: r.Keyer.MazeKey(opts.MazeKeyOpts())}

	start := time.Now()
	g, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Grid = g
	result.Stats.GenerateTime = time.Since(start)
	result.Stats.Maze = grid.Summarize(g)

	opts.Logger.Info("generated maze",
		"algorithm", opts.Algorithm,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"seed", opts.Seed,
		"dead_ends", result.Stats.Maze.DeadEnds,
		"duration", result.Stats.GenerateTime)

	start = time.Now()
	artifacts, hits, err := r.renderCached(ctx, g, result.MazeKey, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate carves a maze and checks that it is perfect. A maze that fails
// verification is reported as INVALID_MAZE rather than returned.
func (r *Runner) Generate(ctx context.Context, opts Options) (g *grid.Grid, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Algorithm, opts.Width, opts.Height)
	start := time.Now()
	defer func() {
		hooks.OnGenerateComplete(ctx, opts.Algorithm, opts.Width*opts.Height, time.Since(start), err)
	}()

	// Contract violations inside the grid panic; surface them as errors here.
	defer func() { err = errs.Recover(recover(), err) }()

	g, err = generate.Run(opts.Algorithm, opts.Width, opts.Height, opts.Seed)
	if err != nil {
		return nil, err
	}
	if err := grid.Verify(g); err != nil {
		return nil, err
	}
	opts.Logger.Debug("verified maze", "links", g.LinkCount())
	return g, nil
}

// RenderWithCacheInfo renders g, serving formats from the cache where
// possible. mazeKey identifies g; it is usually Keyer.MazeKey of opts.
// The boolean is true when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *grid.Grid, mazeKey string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	artifacts, hits, err := r.renderCached(ctx, g, mazeKey, opts)
	if err != nil {
		return nil, false, err
	}
	return artifacts, len(hits) == len(opts.Formats), nil
}

// Render renders g without reporting cache hits.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, r.Keyer.MazeKey(opts.MazeKeyOpts()), opts)
	return artifacts, err
}

func (r *Runner) renderCached(ctx context.Context, g *grid.Grid, mazeKey string, opts Options) (map[string][]byte, []string, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string

	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(mazeKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
		}
		cacheHooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, g, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	for _, format := range missing {
		data := rendered[format]
		artifacts[format] = data

		key := r.Keyer.ArtifactKey(mazeKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttlFor(format)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return artifacts, hits, nil
}

func (r *Runner) ttlFor(format string) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	if isTreeFormat(format) {
		return cache.TTLTree
	}
	return cache.TTLArtifact
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
