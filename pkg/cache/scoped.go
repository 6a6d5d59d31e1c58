package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI and server scope keys by
// release so artifacts from an older generator version are never served:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "maskcompo:"+buildinfo.Version+":")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(component string, params map[string]float64, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(component, params, opts)
}

// TreeKey generates a prefixed key for hierarchy diagram caching.
func (k *ScopedKeyer) TreeKey(component string, params map[string]float64, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(component, params, opts)
}
