package bpinfer

// ReadOnlySignal is a read-only view of a Signal: it exposes every
// accessor but none of the mutation surface (AddDependency, SetValue,
// Compute). Use it for encapsulation when embedding code wants to
// inspect engine state — a Variable's published marginal, say —
// without being able to corrupt the DAG.
type ReadOnlySignal struct {
	source *Signal
}

// AsReadOnly wraps s in a ReadOnlySignal.
func (s *Signal) AsReadOnly() ReadOnlySignal {
	return ReadOnlySignal{source: s}
}

func (r ReadOnlySignal) GetValue() any              { return r.source.GetValue() }
func (r ReadOnlySignal) GetMetadata() any           { return r.source.GetMetadata() }
func (r ReadOnlySignal) Variant() Variant           { return r.source.Variant() }
func (r ReadOnlySignal) IsComputed() bool           { return r.source.IsComputed() }
func (r ReadOnlySignal) IsPending() bool            { return r.source.IsPending() }
func (r ReadOnlySignal) GetDependencies() []*Signal { return r.source.GetDependencies() }
func (r ReadOnlySignal) GetListeners() []*Signal    { return r.source.GetListeners() }
