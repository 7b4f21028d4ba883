package bpinfer

// Processor is a capability bundle with one computation entry point
// per non-Unspecified Variant. A user-supplied function-like callback
// is wrapped by CallbackProcessor into a default Processor that routes
// every variant to that callback, preserving the five-method contract
// without forcing the caller to implement five functions.
type Processor interface {
	ComputeMessageToVariable(s *Signal, deps []*Signal) any
	ComputeMessageToFactor(s *Signal, deps []*Signal) any
	ComputeIndividualMarginal(s *Signal, deps []*Signal) any
	ComputeProductOfMessages(s *Signal, deps []*Signal) any
	ComputeJointMarginal(s *Signal, deps []*Signal) any
}

// ProcessorFunc is the callable shape accepted by CallbackProcessor: a
// single rule that computes a Signal's value regardless of its variant.
type ProcessorFunc func(s *Signal, deps []*Signal) any

// callbackProcessor wraps a ProcessorFunc so it satisfies Processor,
// routing every variant to the same underlying callback.
type callbackProcessor struct {
	fn ProcessorFunc
}

// CallbackProcessor adapts fn into a Processor whose five entry points
// all delegate to fn. Use this when the caller doesn't need
// variant-specific computation rules.
func CallbackProcessor(fn ProcessorFunc) Processor {
	return &callbackProcessor{fn: fn}
}

func (c *callbackProcessor) ComputeMessageToVariable(s *Signal, deps []*Signal) any {
	return c.fn(s, deps)
}
func (c *callbackProcessor) ComputeMessageToFactor(s *Signal, deps []*Signal) any {
	return c.fn(s, deps)
}
func (c *callbackProcessor) ComputeIndividualMarginal(s *Signal, deps []*Signal) any {
	return c.fn(s, deps)
}
func (c *callbackProcessor) ComputeProductOfMessages(s *Signal, deps []*Signal) any {
	return c.fn(s, deps)
}
func (c *callbackProcessor) ComputeJointMarginal(s *Signal, deps []*Signal) any {
	return c.fn(s, deps)
}

// dispatch switches on signal.Variant().Kind and calls the matching
// Processor entry point via signal.Compute. VariantUnspecified, or a
// Kind the switch doesn't recognize, is a programming error
// (KindUnknownVariant).
func dispatch(processor Processor, signal *Signal, force bool) error {
	var rule ComputeRule
	switch signal.Variant().Kind {
	case VariantMessageToVariable:
		rule = func(s *Signal, deps []*Signal) any { return processor.ComputeMessageToVariable(s, deps) }
	case VariantMessageToFactor:
		rule = func(s *Signal, deps []*Signal) any { return processor.ComputeMessageToFactor(s, deps) }
	case VariantIndividualMarginal:
		rule = func(s *Signal, deps []*Signal) any { return processor.ComputeIndividualMarginal(s, deps) }
	case VariantProductOfMessages:
		rule = func(s *Signal, deps []*Signal) any { return processor.ComputeProductOfMessages(s, deps) }
	case VariantJointMarginal:
		rule = func(s *Signal, deps []*Signal) any { return processor.ComputeJointMarginal(s, deps) }
	default:
		return newUnknownVariantError(signal.Variant())
	}
	return signal.Compute(rule, force)
}
