package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The API server scopes cache entries per job so concurrent uploads of
// identical photos with different options never collide.
//
// Example usage:
//
//	jobKeyer := NewScopedKeyer(NewDefaultKeyer(), "job:"+jobID+":")
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

// CompositeKey generates a prefixed key for a rendered composite.
func (k *ScopedKeyer) CompositeKey(batchHash string, opts CompositeKeyOpts) string {
	return k.prefix + k.inner.CompositeKey(batchHash, opts)
}
