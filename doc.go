// Package bpinfer is a reactive-signal scheduling runtime for
// probabilistic graphical models expressed as bipartite variable/factor
// graphs, inspired by the signal-propagation model of coregx/signals.
//
// Inference proceeds by message passing. Every directed message
// (variable -> factor, factor -> variable), every individual marginal,
// every intermediate product of messages, and every joint marginal is
// represented as a Signal node in a dependency DAG. The runtime's job
// is to decide, on demand, which Signals are stale ("pending"), in
// what order to recompute them, and when a requested set of marginals
// has reached a fixed point.
//
// # Core Types
//
// Signal - a value cell with a bit-packed record of its dependencies'
// liveness (DepProps) and a two-phase pending flag.
//
// Engine - owns a Backend (the factor-graph storage), a
// DependencyResolver, and a Processor, and drives inference rounds.
//
// InferenceRequest - the result of RequestInferenceFor: the marginals
// being chased and their per-variable readiness.
//
// # Example Usage
//
//	engine, err := bpinfer.NewEngine(backend, resolver, processor, bpinfer.EngineOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req, err := bpinfer.UpdateMarginals(engine, []bpinfer.VariableID{"x", "y"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Unlike coregx/signals, this engine is single-threaded and
// cooperative: Signal and DepProps carry no internal locking, and
// UpdateMarginals must not be called concurrently on the same Engine.
// See the package README-equivalent, DESIGN.md, for the rationale.
//
// # Error Handling
//
// Fatal conditions (unsupported backend, missing interface method,
// compute-on-non-pending, unknown variant) are returned as *EngineError
// values wrapped with github.com/pkg/errors (errors.WithStack) so
// callers can print a stack trace with %+v while still doing errors.As
// on the concrete kind. Non-fatal observations are appended to
// Engine.Warnings and optionally forwarded to EngineOptions.OnWarning.
package bpinfer
