package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments (or a test run) can share one Redis or Mongo backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, falling back to DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) MazeKey(opts MazeKeyOpts) string {
	return k.prefix + k.inner.MazeKey(opts)
}

// ArtifactKey prefixes the artifact key only; mazeKey is used as given.
func (k *ScopedKeyer) ArtifactKey(mazeKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(mazeKey, opts)
}
