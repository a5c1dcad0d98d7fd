// Package config loads labyrinth settings from a TOML file, an optional
// .env file and LABYRINTH_* environment variables, in increasing priority.
// Command-line flags override all three.
//
// Example config.toml:
//
//	[maze]
//	width = 30
//	height = 12
//	algorithm = "sidewinder"
//
//	[render]
//	cell_size = 16
//	formats = ["txt", "svg"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
)

const appName = "labyrinth"

// Cache backends.
const (
	BackendFile  = "file"
	BackendNull  = "null"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

var backends = []string{BackendFile, BackendNull, BackendRedis, BackendMongo}

type Config struct {
	Maze   MazeConfig   `toml:"maze"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type MazeConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Algorithm string `toml:"algorithm"`
	// Seed is nil when every run should draw a fresh seed.
	Seed *uint64 `toml:"seed"`
}

type RenderConfig struct {
	Formats     []string `toml:"formats"`
	CellSize    float64  `toml:"cell_size"`
	Stroke      string   `toml:"stroke"`
	StrokeWidth float64  `toml:"stroke_width"`
	Margin      float64  `toml:"margin"`
	Scale       float64  `toml:"scale"`
}

type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisURL      string        `toml:"redis_url"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	Prefix        string        `toml:"prefix"`
	TTL           time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:     pipeline.DefaultWidth,
			Height:    pipeline.DefaultHeight,
			Algorithm: pipeline.DefaultAlgorithm,
		},
		Render: RenderConfig{
			Formats:     []string{pipeline.FormatText},
			CellSize:    pipeline.DefaultCellSize,
			Stroke:      pipeline.DefaultStroke,
			StrokeWidth: pipeline.DefaultStrokeWidth,
			Scale:       pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/labyrinth/config.toml, falling back
// to the user config directory of the platform.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads configuration. An empty path means DefaultPath, which may be
// absent. An explicit path that does not exist is an error. Environment
// overrides are applied and the result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "locate config file")
		}
		path = p
	}

	switch err := cfg.loadFile(path); {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return cfg, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
	default:
		return cfg, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "load %s", strings.Join(present, ", "))
	}
	return nil
}

// ApplyEnv overrides fields from LABYRINTH_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be an integer, got %q", name, v)
		}
		*dst = n
		return nil
	}
	duration := func(name string, dst *time.Duration) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be a duration, got %q", name, v)
		}
		*dst = d
		return nil
	}

	if err := integer("LABYRINTH_WIDTH", &c.Maze.Width); err != nil {
		return err
	}
	if err := integer("LABYRINTH_HEIGHT", &c.Maze.Height); err != nil {
		return err
	}
	str("LABYRINTH_ALGORITHM", &c.Maze.Algorithm)
	if v, ok := lookup("LABYRINTH_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidConfig, "LABYRINTH_SEED must be an unsigned integer, got %q", v)
		}
		c.Maze.Seed = &seed
	}
	if v, ok := lookup("LABYRINTH_FORMATS"); ok && v != "" {
		c.Render.Formats = nil
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Render.Formats = append(c.Render.Formats, f)
			}
		}
	}

	str("LABYRINTH_CACHE_BACKEND", &c.Cache.Backend)
	str("LABYRINTH_CACHE_DIR", &c.Cache.Dir)
	str("LABYRINTH_CACHE_PREFIX", &c.Cache.Prefix)
	str("LABYRINTH_REDIS_URL", &c.Cache.RedisURL)
	str("LABYRINTH_MONGO_URI", &c.Cache.MongoURI)
	str("LABYRINTH_MONGO_DATABASE", &c.Cache.MongoDatabase)
	if err := duration("LABYRINTH_CACHE_TTL", &c.Cache.TTL); err != nil {
		return err
	}

	str("LABYRINTH_ADDR", &c.Server.Addr)
	return nil
}

// Validate checks the configuration. Every failure is INVALID_CONFIG.
func (c *Config) Validate() error {
	if err := errs.ValidateDimensions(c.Maze.Width, c.Maze.Height); err != nil {
		return invalid("maze", err)
	}
	if _, err := generate.Canonical(c.Maze.Algorithm); err != nil {
		return invalid("maze.algorithm", err)
	}

	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return invalid("render.formats", err)
	}
	if err := errs.ValidateCellSize(c.Render.CellSize); err != nil {
		return invalid("render.cell_size", err)
	}
	if c.Render.StrokeWidth < 0 || c.Render.Margin < 0 || c.Render.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render: stroke_width, margin and scale must not be negative")
	}

	if !slices.Contains(backends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig,
			"cache.backend: unknown backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	switch c.Cache.Backend {
	case BackendRedis:
		if err := errs.ValidateURL(c.Cache.RedisURL, "redis", "rediss", "unix"); err != nil {
			return invalid("cache.redis_url", err)
		}
	case BackendMongo:
		if err := errs.ValidateURL(c.Cache.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return invalid("cache.mongo_uri", err)
		}
		if c.Cache.MongoDatabase == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.mongo_database must not be empty")
		}
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// PipelineOptions converts the maze and render sections into pipeline options.
// A nil seed is left zero; callers decide whether to draw a fresh one.
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Algorithm:   c.Maze.Algorithm,
		Width:       c.Maze.Width,
		Height:      c.Maze.Height,
		Formats:     slices.Clone(c.Render.Formats),
		CellSize:    c.Render.CellSize,
		Stroke:      c.Render.Stroke,
		StrokeWidth: c.Render.StrokeWidth,
		Margin:      c.Render.Margin,
		Scale:       c.Render.Scale,
	}
	if c.Maze.Seed != nil {
		opts.Seed = *c.Maze.Seed
	}
	return opts
}

func invalid(field string, err error) error {
	return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s: %s", field, errs.UserMessage(err))
}

// String renders the configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return b.String()
}
