package cache

// ScopedKeyer prefixes every key of an inner Keyer.
//
// The CLI and server scope keys by build version, so a shared cache never
// serves a result computed by a different engine release:
//
//	keyer := NewScopedKeyer(nil, buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) PlacementKey(boardHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(boardHash, opts)
}

func (k ScopedKeyer) RepairKey(boardHash string, opts RepairKeyOpts) string {
	return k.prefix + k.inner.RepairKey(boardHash, opts)
}

func (k ScopedKeyer) SnapKey(dimsHash string, x, y float64) string {
	return k.prefix + k.inner.SnapKey(dimsHash, x, y)
}
