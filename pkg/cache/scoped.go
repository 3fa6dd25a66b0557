package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate cache
// namespaces to separate contexts (per-user server caches sharing one
// Redis or directory, for example).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer falls back to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(planHash string) string {
	return k.prefix + k.inner.PlanKey(planHash)
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(planHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(planHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
