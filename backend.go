package bpinfer

import "fmt"

// SupportStatus is the result of Backend.Support(): whether the engine
// can operate over this concrete backend implementation at all.
type SupportStatus int

const (
	Supported SupportStatus = iota
	Unsupported
)

// Backend is the model-backend capability set consumed by the engine:
// factor-graph storage (variables, factors, connections, adjacency
// queries). The engine never computes a message or marginal itself;
// it only asks a Backend for the Signals that represent them and for
// the graph's adjacency so the driver can walk it. Implementing this
// interface is out of scope for this package (spec.md §1); it is the
// model backend's responsibility.
type Backend interface {
	// Support reports whether this backend implementation is usable by
	// the engine at all. Returning Unsupported fails engine construction.
	Support() SupportStatus

	VariableIDs() []VariableID
	FactorIDs() []FactorID

	GetVariable(id VariableID) (Variable, error)
	GetFactor(id FactorID) (Factor, error)

	GetConnection(variableID VariableID, factorID FactorID) (Connection, error)
	ConnectedVariableIDs(factorID FactorID) []VariableID
	ConnectedFactorIDs(variableID VariableID) []FactorID
}

// Variable is one variable node of the factor graph, as exposed to the engine.
type Variable interface {
	Name() string
	// Index reports the variable's position within some caller-defined
	// ordering, if meaningful; ok is false when the backend has none.
	Index() (index int, ok bool)
	// Marginal is this variable's individual-marginal Signal.
	Marginal() *Signal
	// LinkedSignals are additional Signals associated with this
	// variable beyond its own marginal — e.g. joint marginals anchored
	// at adjacent factors — that the driver's final round also visits.
	LinkedSignals() []*Signal
	// Link registers an additional Signal as linked to this variable.
	Link(signal *Signal)
}

// Factor is one factor node of the factor graph, as exposed to the engine.
type Factor interface {
	// FunctionalForm names the factor's functional form (e.g. the
	// family of potential function it represents), opaque to the engine.
	FunctionalForm() string
	// LocalMarginals are the joint-marginal Signals anchored at this factor.
	LocalMarginals() []*Signal
	AddLocalMarginal(signal *Signal)
}

// Connection is one variable/factor edge, carrying the two message
// Signals that flow along it.
type Connection interface {
	Label() string
	Index() int
	MessageToVariable() *Signal
	MessageToFactor() *Signal
}

// DependencyResolver wires edges between Signals so the pending
// protocol has something to evaluate. It has exactly one entry point
// and must be idempotent: calling Resolve twice on the same engine must
// not add duplicate edges. How it decides what to wire is outside this
// package's scope (spec.md §1); this interface only fixes the call shape.
type DependencyResolver interface {
	Resolve(engine *Engine) error
}

// NewInterfaceNotImplementedError is a helper for backend/processor
// adapters that want to surface a KindInterfaceNotImplemented error
// with a consistent message shape (method name, concrete type, arg types).
// A Backend or Processor implementation that only partially satisfies
// its interface (e.g. a factor type that cannot produce joint
// marginals) returns this from the unsupported method where the method
// has an error result; Processor methods have none, so they panic with
// it, and dispatch does not recover that panic.
func NewInterfaceNotImplementedError(method string, concrete any, args ...any) error {
	argTypes := make([]string, len(args))
	for i, a := range args {
		argTypes[i] = fmt.Sprintf("%T", a)
	}
	return newInterfaceNotImplementedError(method, fmt.Sprintf("%T", concrete), argTypes)
}
