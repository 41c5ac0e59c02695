package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB cache without seeing each other's entries.
//
// Example usage:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

func (k *ScopedKeyer) OptionsKey(chartID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.OptionsKey(chartID, opts)
}

func (k *ScopedKeyer) DataKey(chartID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.DataKey(chartID, opts)
}

func (k *ScopedKeyer) EmbedKey(chartID string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.EmbedKey(chartID, opts)
}
