package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by release
// version so a new binary never reads artifacts rendered by an older one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SequencesKey generates a prefixed key for parsed sequence files.
func (k *ScopedKeyer) SequencesKey(sourceHash string) string {
	return k.prefix + k.inner.SequencesKey(sourceHash)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
