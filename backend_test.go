package bpinfer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// partialProcessor implements every Processor method but one, the way
// a model backend that doesn't support joint marginals would: it
// surfaces KindInterfaceNotImplemented instead of guessing at a value.
type partialProcessor struct{}

func (partialProcessor) ComputeMessageToVariable(s *Signal, deps []*Signal) any {
	return deps[0].GetValue()
}
func (partialProcessor) ComputeMessageToFactor(s *Signal, deps []*Signal) any {
	return deps[0].GetValue()
}
func (partialProcessor) ComputeIndividualMarginal(s *Signal, deps []*Signal) any {
	return deps[0].GetValue()
}
func (partialProcessor) ComputeProductOfMessages(s *Signal, deps []*Signal) any {
	return deps[0].GetValue()
}

// ComputeJointMarginal is the one capability this backend lacks.
func (p partialProcessor) ComputeJointMarginal(s *Signal, deps []*Signal) any {
	panic(NewInterfaceNotImplementedError("ComputeJointMarginal", p, s, deps))
}

// TestDispatch_InterfaceNotImplemented exercises the other half of the
// §7 fatal taxonomy: a Processor that only partially implements its
// interface must surface KindInterfaceNotImplemented rather than
// silently producing a wrong value.
func TestDispatch_InterfaceNotImplemented(t *testing.T) {
	leaf := NewSignal()
	leaf.SetValue(1)

	joint := NewSignal(WithVariant(JointMarginal("f", []VariableID{"x", "y"})))
	joint.AddDependency(leaf, AddDependencyOptions{Listen: true, CheckComputed: true})

	require.True(t, joint.IsPending())

	var ee *EngineError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "ComputeJointMarginal should have panicked with NewInterfaceNotImplementedError")
			err, ok := r.(error)
			require.True(t, ok, "recovered value should be an error")
			require.True(t, errors.As(err, &ee))
		}()
		_ = dispatch(partialProcessor{}, joint, false)
	}()

	require.Equal(t, KindInterfaceNotImplemented, ee.Kind)
}
