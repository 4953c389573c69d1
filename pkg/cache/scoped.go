package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments or
// tenants can share one backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "racklayout:prod:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(configHash, opts)
}

// ReportKey generates a prefixed validation report key.
func (k *ScopedKeyer) ReportKey(configHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.ReportKey(configHash, opts)
}
