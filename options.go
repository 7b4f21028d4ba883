package bpinfer

// EngineOptions configures an Engine at construction time, mirroring
// the option-struct pattern the teacher uses for Signal/Effect
// construction (Options[T], EffectOptions).
type EngineOptions struct {
	// OnWarning, if set, is called synchronously whenever a non-fatal
	// InferenceEngineWarning is appended to Engine.Warnings(). If nil,
	// warnings are only recorded (and mirrored to Logger).
	OnWarning func(Warning)

	// Tracer, if set, enables per-request/per-round/per-execution
	// timing and value capture for every UpdateMarginals call. If nil,
	// tracing is a no-op beyond a null check.
	Tracer *Tracer
}
