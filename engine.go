package bpinfer

import (
	"fmt"
	"log"
)

// Logger is the package-level diagnostic sink warnings are mirrored
// to, in the teacher's style of talking to stderr through the standard
// log package rather than pulling in a structured logging dependency.
// Embedding applications may replace it (e.g. with a *log.Logger
// writing to their own sink) before constructing an Engine.
var Logger = log.Default()

// Engine owns a Backend, a DependencyResolver, and a Processor, and
// drives inference rounds over them. It is not safe for concurrent
// use (spec.md §5): all Signals reachable from one Engine form one
// shared mutable graph on the calling goroutine.
type Engine struct {
	backend   Backend
	resolver  DependencyResolver
	processor Processor
	opts      EngineOptions

	warnings []Warning
}

// NewEngine constructs an Engine over backend, running resolver once
// to wire dependency edges. Construction fails with a
// *EngineError{Kind: KindUnsupportedBackend} if backend.Support()
// returns Unsupported.
func NewEngine(backend Backend, resolver DependencyResolver, processor Processor, opts EngineOptions) (*Engine, error) {
	if backend.Support() == Unsupported {
		return nil, newUnsupportedBackendError(fmt.Sprintf("%T", backend))
	}
	e := &Engine{backend: backend, resolver: resolver, processor: processor, opts: opts}
	if err := resolver.Resolve(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Backend returns the engine's model backend.
func (e *Engine) Backend() Backend { return e.backend }

// Warn appends a non-fatal InferenceEngineWarning to the engine's
// accumulated warnings, mirrors it to Logger, and invokes
// EngineOptions.OnWarning if set. Warnings never stop inference.
func (e *Engine) Warn(w Warning) {
	e.warnings = append(e.warnings, w)
	Logger.Printf("bpinfer: warning: %s", w)
	if e.opts.OnWarning != nil {
		e.opts.OnWarning(w)
	}
}

// Warnings returns every warning accumulated so far, in the order
// Warn was called. The returned slice must not be mutated.
func (e *Engine) Warnings() []Warning { return e.warnings }

// marginalFor resolves the IndividualMarginal Signal for id via the backend.
func (e *Engine) marginalFor(id VariableID) (*Signal, error) {
	v, err := e.backend.GetVariable(id)
	if err != nil {
		return nil, err
	}
	return v.Marginal(), nil
}

// linkedFor returns the "linked/joint" Signals the dependency resolver
// associates with id (spec.md §4.7 step 3), e.g. joint marginals
// anchored at adjacent factors.
func (e *Engine) linkedFor(id VariableID) ([]*Signal, error) {
	v, err := e.backend.GetVariable(id)
	if err != nil {
		return nil, err
	}
	return v.LinkedSignals(), nil
}
