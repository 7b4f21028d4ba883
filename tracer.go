package bpinfer

import "time"

// TracedInferenceExecution records one dispatched Compute call: the
// variable it was made on behalf of, the Signal computed, wall-clock
// duration taken immediately around the compute call, and the value
// held immediately before and after.
type TracedInferenceExecution struct {
	Engine      *Engine
	VariableID  VariableID
	Signal      *Signal
	TotalTime   time.Duration
	ValueBefore any
	ValueAfter  any
}

// TracedInferenceRound records one non-empty sweep iteration. Rounds
// with zero executions are discarded (never appear in a
// TracedInferenceRequest.Rounds slice).
type TracedInferenceRound struct {
	Engine     *Engine
	TotalTime  time.Duration
	Executions []TracedInferenceExecution
}

// TracedInferenceRequest records one UpdateMarginals call end to end.
type TracedInferenceRequest struct {
	Engine    *Engine
	TotalTime time.Duration
	Request   *InferenceRequest
	Rounds    []TracedInferenceRound
}

// Tracer collects TracedInferenceRequest values across calls to
// UpdateMarginals on an Engine configured with it. When an Engine has
// no Tracer (EngineOptions.Tracer == nil), trace hooks are skipped
// entirely — a nil check, not a disabled-but-present tracer — so
// there is zero overhead beyond that check.
type Tracer struct {
	Requests []TracedInferenceRequest
}

// NewTracer returns an empty Tracer ready to be passed as EngineOptions.Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// beginRound starts timing a new round and returns a function that, when
// called with the round's executions, appends a TracedInferenceRound to
// req if and only if at least one execution was recorded.
func beginRound(engine *Engine, req *TracedInferenceRequest) func(executions []TracedInferenceExecution) {
	start := time.Now()
	return func(executions []TracedInferenceExecution) {
		if len(executions) == 0 {
			return
		}
		req.Rounds = append(req.Rounds, TracedInferenceRound{
			Engine:     engine,
			TotalTime:  time.Since(start),
			Executions: executions,
		})
	}
}
