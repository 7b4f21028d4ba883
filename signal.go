package bpinfer

// undefinedValue is the type of the sentinel (Undefined) stored in a
// freshly constructed Signal's value slot. A Signal whose value is this
// sentinel is not computed.
type undefinedValue struct{}

// Undefined is the distinguished "no value yet" sentinel. GetValue
// returns it until the first SetValue call.
var Undefined any = undefinedValue{}

// pendingProps packs the two-phase pending flags described in
// spec.md §4.3: IsPending is the authoritative answer, IsPotentiallyPending
// is a cheap upstream hint that a recheck is warranted on next query.
// Callers must treat a value of this type as immutable-per-observation:
// IsPending always replaces the whole struct, never mutates a field in place.
type pendingProps struct {
	isPotentiallyPending bool
	isPending            bool
}

// listenerEdge is one entry in a Signal's listener list: the listening
// Signal plus whether that listener is currently "active" (will be
// notified) for this edge.
type listenerEdge struct {
	listener *Signal
	active   bool
}

// Signal is the unit of computation: a value cell with a bit-packed
// record of its dependencies' liveness and a notification protocol for
// listeners. See spec.md §3 for the full invariant list (I1-I7); each
// is called out at its enforcing line below.
type Signal struct {
	value    any
	metadata any
	variant  Variant

	dependencies      []*Signal
	dependenciesProps DepProps

	listeners []listenerEdge

	props pendingProps
}

// SignalOption configures a new Signal at construction time, mirroring
// the option-struct pattern used throughout this package's public API.
type SignalOption func(*Signal)

// WithValue seeds the Signal with an initial computed value instead of Undefined.
func WithValue(v any) SignalOption {
	return func(s *Signal) { s.value = v }
}

// WithVariant assigns the Signal's variant at construction time.
func WithVariant(v Variant) SignalOption {
	return func(s *Signal) { s.variant = v }
}

// WithMetadata attaches an arbitrary caller payload to the Signal.
func WithMetadata(m any) SignalOption {
	return func(s *Signal) { s.metadata = m }
}

// NewSignal creates a Signal with no dependencies, no listeners, and
// IsPending() == false. Value defaults to Undefined and Variant
// defaults to VariantUnspecified unless overridden by opts.
func NewSignal(opts ...SignalOption) *Signal {
	s := &Signal{value: Undefined, variant: Variant{Kind: VariantUnspecified}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsComputed reports whether the Signal's value is not the Undefined sentinel.
func (s *Signal) IsComputed() bool {
	_, isUndefined := s.value.(undefinedValue)
	return !isUndefined
}

// GetValue returns the Signal's current value (Undefined if never computed).
func (s *Signal) GetValue() any { return s.value }

// GetMetadata returns the Signal's caller-supplied payload, or nil.
func (s *Signal) GetMetadata() any { return s.metadata }

// Variant returns the Signal's tagged-union label.
func (s *Signal) Variant() Variant { return s.variant }

// SetVariant assigns the Signal's variant. Per the data model's
// lifecycle (spec.md §3), this is meant to be called once, at
// graph-construction time, but nothing in this type enforces that.
func (s *Signal) SetVariant(v Variant) { s.variant = v }

// GetDependencies returns the Signal's dependencies in insertion order.
// The returned slice must not be mutated by the caller; it aliases
// internal state (I1: dependencies are append-only).
func (s *Signal) GetDependencies() []*Signal { return s.dependencies }

// GetListeners returns the Signals currently registered to be notified
// of this Signal's changes, in insertion order, regardless of whether
// each listener's edge is active.
func (s *Signal) GetListeners() []*Signal {
	out := make([]*Signal, len(s.listeners))
	for i, e := range s.listeners {
		out[i] = e.listener
	}
	return out
}

// AddDependencyOptions controls AddDependency's edge attributes.
type AddDependencyOptions struct {
	// Weak: only presence of a computed value is required for this
	// edge to satisfy the pending criterion; freshness is not.
	Weak bool
	// Intermediate: dep is a pass-through node whose own dependencies
	// the traversal will consider when dep is not directly processable.
	Intermediate bool
	// Listen: whether this Signal's entry in dep's listener list is
	// active (notified by dep.SetValue). The entry is recorded either
	// way (I3).
	Listen bool
	// CheckComputed: if true and dep is already computed, immediately
	// mark the new slot computed (and fresh, if this Signal isn't
	// computed yet) rather than waiting for dep's next SetValue.
	CheckComputed bool
}

// AddDependency appends an edge from s to dep. A no-op if dep == s (I2:
// a Signal never lists itself as a dependency). Updates s.dependencies,
// s.dependenciesProps (a new nibble, with the weak/intermediate bits
// from opts), and dep.listeners (I3: dep.listeners must contain s with
// the listen-active bit matching opts.Listen).
//
// If opts.CheckComputed and dep.IsComputed(): dep's new slot is marked
// computed; if s is not yet computed, the slot is also marked fresh and
// s.props.isPotentiallyPending is set so the next IsPending() query
// rechecks. If opts.CheckComputed and !dep.IsComputed(): s.props is
// reset to {false, false} (a dependency just appeared that definitely
// isn't satisfied yet).
func (s *Signal) AddDependency(dep *Signal, opts AddDependencyOptions) {
	if dep == s {
		return
	}

	s.dependencies = append(s.dependencies, dep)
	idx := s.dependenciesProps.Push()
	if opts.Intermediate {
		s.dependenciesProps.SetFlag(idx, flagIntermediate)
	}
	if opts.Weak {
		s.dependenciesProps.SetFlag(idx, flagWeak)
	}

	dep.listeners = append(dep.listeners, listenerEdge{listener: s, active: opts.Listen})

	if opts.CheckComputed {
		if dep.IsComputed() {
			s.dependenciesProps.SetFlag(idx, flagComputed)
			if !s.IsComputed() {
				s.dependenciesProps.SetFlag(idx, flagFresh)
				s.props.isPotentiallyPending = true
			}
		} else {
			s.props = pendingProps{}
		}
	}
}

// IsPending implements the two-phase pending protocol (spec.md §4.3).
//
//  1. If props.isPending, return true.
//  2. Else if props.isPotentiallyPending, recompute the authoritative
//     answer from dependenciesProps, store the collapsed props, and
//     return it.
//  3. Else return false.
//
// Step 2's O(dependencies) scan happens at most once per upstream
// notification, never on the notification itself (SetValue is O(1) per
// listener; the scan is paid for here, lazily, only on actual query).
func (s *Signal) IsPending() bool {
	if s.props.isPending {
		return true
	}
	if s.props.isPotentiallyPending {
		p := s.dependenciesProps.MeetsPendingCriteria()
		s.props = pendingProps{isPotentiallyPending: false, isPending: p}
		return p
	}
	return false
}

// SetValue writes v as the Signal's value and propagates the change:
//
//   - s.dependenciesProps.UnsetAllFresh() (every dependency's freshness
//     as consumed by s is cleared; I5).
//   - s.props is reset to {false, false} (I5).
//   - every listener L in insertion order whose edge is active:
//     L.props.isPotentiallyPending is set, and the first slot in
//     L.dependencies_props corresponding to s is marked computed+fresh
//     (I6). An inactive listener's slot is left untouched — notification
//     never reaches an inactive edge (S5). Per the data model's Open
//     Question, only the first matching slot is updated; duplicate
//     dependencies are unsupported (I7) and left unresolved here.
func (s *Signal) SetValue(v any) {
	s.value = v
	s.dependenciesProps.UnsetAllFresh()
	s.props = pendingProps{}

	for _, edge := range s.listeners {
		if !edge.active {
			continue
		}
		l := edge.listener
		l.props.isPotentiallyPending = true
		for i, d := range l.dependencies {
			if d == s {
				idx := i + 1 // DepProps slots are 1-based
				l.dependenciesProps.SetFlag(idx, flagComputed)
				l.dependenciesProps.SetFlag(idx, flagFresh)
				break
			}
		}
	}
}

// ComputeRule derives a Signal's new value from its dependencies, in
// insertion order, the same order GetDependencies returns.
type ComputeRule func(self *Signal, dependencies []*Signal) any

// Compute requires IsPending() unless force is true; otherwise it
// returns a *EngineError of KindComputeOnNonPending. On success it
// calls rule(s, s.dependencies) and writes the result via SetValue.
// Errors thrown by rule are not recovered; they propagate unchanged
// (see spec.md §7 propagation policy) — ComputeRule has no error
// return, so a panicking rule is the only failure mode, and it is left
// to unwind normally.
func (s *Signal) Compute(rule ComputeRule, force bool) error {
	if !force && !s.IsPending() {
		return newComputeOnNonPendingError(s)
	}
	v := rule(s, s.dependencies)
	s.SetValue(v)
	return nil
}
