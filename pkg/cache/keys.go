package cache

// MazeKeyOpts identifies a generated maze.
type MazeKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Seed      uint64 `json:"seed"`
}

// ArtifactKeyOpts identifies one rendering of a maze.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	CellSize    float64 `json:"cell_size,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Margin      float64 `json:"margin,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// MazeKey returns a stable identifier for a maze.
	MazeKey(opts MazeKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of the maze
	// identified by mazeKey.
	ArtifactKey(mazeKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) MazeKey(opts MazeKeyOpts) string {
	return hashKey("maze", opts)
}

func (DefaultKeyer) ArtifactKey(mazeKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, mazeKey, opts)
}

var _ Keyer = DefaultKeyer{}
