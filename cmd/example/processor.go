package main

import "github.com/coregx/bpinfer"

// toyProcessor computes toy scalar "messages" and "marginals": this is
// not a real sum-product implementation, just enough arithmetic to
// demonstrate the engine driving a full sweep. Real numerical rules
// are explicitly out of this package's scope (spec.md §1).
type toyProcessor struct{}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

// ComputeMessageToFactor: the demo graph has one factor per variable,
// so the outgoing message is just the variable's prior, passed through.
func (toyProcessor) ComputeMessageToFactor(s *bpinfer.Signal, deps []*bpinfer.Signal) any {
	return asFloat(deps[0].GetValue())
}

// ComputeMessageToVariable: product over every other connected
// variable's message into the factor (here, a sum stands in for the
// product to keep the toy numbers readable).
func (toyProcessor) ComputeMessageToVariable(s *bpinfer.Signal, deps []*bpinfer.Signal) any {
	total := 0.0
	for _, d := range deps {
		total += asFloat(d.GetValue())
	}
	return total
}

// ComputeIndividualMarginal: prior combined with every incoming
// factor->variable message.
func (toyProcessor) ComputeIndividualMarginal(s *bpinfer.Signal, deps []*bpinfer.Signal) any {
	total := 0.0
	for _, d := range deps {
		total += asFloat(d.GetValue())
	}
	return total
}

// ComputeProductOfMessages is unused by this demo graph (it has no
// ProductOfMessages nodes) but must exist to satisfy bpinfer.Processor.
func (toyProcessor) ComputeProductOfMessages(s *bpinfer.Signal, deps []*bpinfer.Signal) any {
	total := 0.0
	for _, d := range deps {
		total += asFloat(d.GetValue())
	}
	return total
}

// ComputeJointMarginal: sum of the variable->factor messages anchored
// at this factor.
func (toyProcessor) ComputeJointMarginal(s *bpinfer.Signal, deps []*bpinfer.Signal) any {
	total := 0.0
	for _, d := range deps {
		total += asFloat(d.GetValue())
	}
	return total
}
