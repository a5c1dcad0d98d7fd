package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/labyrinth/pkg/buildinfo"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
)

// Response headers describing the served maze.
const (
	HeaderSeed      = "X-Maze-Seed"
	HeaderAlgorithm = "X-Maze-Algorithm"
	HeaderCache     = "X-Cache"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type algorithmInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	names := generate.Names()
	out := make([]algorithmInfo, 0, len(names))
	for _, n := range names {
		out = append(out, algorithmInfo{
			Name:        n,
			Description: generate.Describe(n),
			Default:     n == generate.DefaultAlgorithm,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	setMazeHeaders(w, opts)
	if res.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "HIT")
	} else {
		w.Header().Set(HeaderCache, "MISS")
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type statsResponse struct {
	Algorithm string     `json:"algorithm"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Seed      uint64     `json:"seed"`
	Perfect   bool       `json:"perfect"`
	Stats     grid.Stats `json:"stats"`
}

func (s *Server) handleMazeStats(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	g, err := s.cfg.Runner.Generate(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	name, _ := generate.Canonical(opts.Algorithm)

	setMazeHeaders(w, opts)
	writeJSON(w, http.StatusOK, statsResponse{
		Algorithm: name,
		Width:     g.Width(),
		Height:    g.Height(),
		Seed:      opts.Seed,
		Perfect:   true, // Generate only returns verified mazes
		Stats:     grid.Summarize(g),
	})
}

func setMazeHeaders(w http.ResponseWriter, opts pipeline.Options) {
	name, _ := generate.Canonical(opts.Algorithm)
	w.Header().Set(HeaderSeed, strconv.FormatUint(opts.Seed, 10))
	w.Header().Set(HeaderAlgorithm, name)
}

// optionsFromQuery overlays query parameters on the server defaults.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = nil
	opts.Formats = []string{pipeline.FormatText}

	if v := q.Get("algorithm"); v != "" {
		opts.Algorithm = v
	}

	var err error
	if opts.Width, err = intParam(q, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, "height", opts.Height); err != nil {
		return opts, err
	}

	seed, _, err := pipeline.ParseSeed(q.Get("seed"))
	if err != nil {
		return opts, err
	}
	opts.Seed = seed

	if v := q.Get("format"); v != "" {
		if err := pipeline.ValidateFormat(v); err != nil {
			return opts, err
		}
		opts.Formats = []string{v}
	}
	for name, dst := range map[string]*float64{
		"cell_size":    &opts.CellSize,
		"stroke_width": &opts.StrokeWidth,
		"margin":       &opts.Margin,
		"scale":        &opts.Scale,
	} {
		if *dst, err = floatParam(q, name, *dst); err != nil {
			return opts, err
		}
	}
	if v := q.Get("stroke"); v != "" {
		opts.Stroke = v
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
	}
	return opts, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
	}
	if err := errs.ValidateFinite(name, f); err != nil {
		return 0, err
	}
	return f, nil
}
