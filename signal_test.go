package bpinfer

import (
	"errors"
	"testing"
)

func identityRule(s *Signal, deps []*Signal) any {
	if len(deps) == 0 {
		return s.GetValue()
	}
	return deps[0].GetValue()
}

// TestSignal_New_NoDependenciesNeverPending is property P2.
func TestSignal_New_NoDependenciesNeverPending(t *testing.T) {
	s := NewSignal()
	if s.IsPending() {
		t.Fatal("a freshly constructed signal with no dependencies must not be pending")
	}
}

func TestSignal_IsComputed(t *testing.T) {
	s := NewSignal()
	if s.IsComputed() {
		t.Fatal("fresh signal reports computed before any SetValue")
	}
	s.SetValue(1)
	if !s.IsComputed() {
		t.Fatal("signal should report computed after SetValue")
	}
}

// TestSignal_SetValue_NotPendingAfterwards is property P3 (I5).
func TestSignal_SetValue_NotPendingAfterwards(t *testing.T) {
	a := NewSignal()
	b := NewSignal()
	b.AddDependency(a, AddDependencyOptions{Listen: true})

	a.SetValue(1)
	if !b.IsPending() {
		t.Fatal("b should be pending once a is computed and fresh")
	}
	if err := b.Compute(identityRule, false); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if b.IsPending() {
		t.Fatal("b must not be pending immediately after SetValue")
	}
}

// TestSignal_AddDependency_SelfIsNoop is property P5.
func TestSignal_AddDependency_SelfIsNoop(t *testing.T) {
	s := NewSignal()
	s.AddDependency(s, AddDependencyOptions{Listen: true})
	if len(s.GetDependencies()) != 0 {
		t.Fatalf("self-dependency should be a no-op, got %d dependencies", len(s.GetDependencies()))
	}
	if len(s.GetListeners()) != 0 {
		t.Fatalf("self-dependency should not register a listener, got %d", len(s.GetListeners()))
	}
}

// TestChain_S1 is scenario S1: A -> B -> C single chain.
func TestChain_S1(t *testing.T) {
	a := NewSignal()
	b := NewSignal()
	c := NewSignal()
	b.AddDependency(a, AddDependencyOptions{Listen: true})
	c.AddDependency(b, AddDependencyOptions{Listen: true})

	a.SetValue(1)
	if !b.IsPending() {
		t.Fatal("b should be pending after a is set")
	}
	if c.IsPending() {
		t.Fatal("c should not be pending yet (b not computed)")
	}

	if err := b.Compute(func(s *Signal, deps []*Signal) any {
		return deps[0].GetValue().(int) + 10
	}, false); err != nil {
		t.Fatalf("Compute(b): %v", err)
	}
	if got := b.GetValue(); got != 11 {
		t.Fatalf("b.value = %v, want 11", got)
	}
	if !c.IsPending() {
		t.Fatal("c should be pending after b is computed")
	}

	if err := c.Compute(func(s *Signal, deps []*Signal) any {
		return deps[0].GetValue().(int) * 2
	}, false); err != nil {
		t.Fatalf("Compute(c): %v", err)
	}
	if got := c.GetValue(); got != 22 {
		t.Fatalf("c.value = %v, want 22", got)
	}
}

// TestWeakDependency_S2 is scenario S2.
func TestWeakDependency_S2(t *testing.T) {
	a := NewSignal()
	b := NewSignal()
	c := NewSignal()
	c.AddDependency(a, AddDependencyOptions{Listen: true})
	c.AddDependency(b, AddDependencyOptions{Weak: true, Listen: true})

	b.SetValue(0)
	if c.IsPending() {
		t.Fatal("c should not be pending: a is not computed yet")
	}

	a.SetValue(1)
	if !c.IsPending() {
		t.Fatal("c should be pending once a is fresh and b is computed (weak)")
	}

	if err := c.Compute(func(s *Signal, deps []*Signal) any { return nil }, false); err != nil {
		t.Fatalf("Compute(c): %v", err)
	}

	b.SetValue(9)
	if c.IsPending() {
		t.Fatal("c should remain non-pending: b is weak (no freshness needed) but a's slot was consumed and not refreshed")
	}
}

// TestNotificationToInactiveListener_S5 is scenario S5.
func TestNotificationToInactiveListener_S5(t *testing.T) {
	a := NewSignal()
	b := NewSignal()
	c := NewSignal()
	b.AddDependency(a, AddDependencyOptions{Listen: true})
	c.AddDependency(a, AddDependencyOptions{Listen: false})

	a.SetValue(1)

	if !b.props.isPotentiallyPending {
		t.Fatal("active listener b should have isPotentiallyPending set")
	}
	bIdx := 1
	if !b.dependenciesProps.TestFlag(bIdx, flagComputed) || !b.dependenciesProps.TestFlag(bIdx, flagFresh) {
		t.Fatal("b's slot for a should be computed+fresh")
	}

	if c.props.isPotentiallyPending {
		t.Fatal("inactive listener c must not have isPotentiallyPending set")
	}
	cIdx := 1
	if c.dependenciesProps.TestFlag(cIdx, flagComputed) || c.dependenciesProps.TestFlag(cIdx, flagFresh) {
		t.Fatal("c's slot for a remains unmarked: edge is inactive but still recorded")
	}
}

func TestSignal_Compute_NonPendingWithoutForce(t *testing.T) {
	s := NewSignal()
	err := s.Compute(identityRule, false)
	if err == nil {
		t.Fatal("expected ComputeOnNonPending error")
	}
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *EngineError, got %T: %v", err, err)
	}
	if ee.Kind != KindComputeOnNonPending {
		t.Fatalf("Kind = %v, want KindComputeOnNonPending", ee.Kind)
	}
}

func TestSignal_Compute_Force(t *testing.T) {
	s := NewSignal()
	if err := s.Compute(func(*Signal, []*Signal) any { return 42 }, true); err != nil {
		t.Fatalf("forced Compute should not error: %v", err)
	}
	if got := s.GetValue(); got != 42 {
		t.Fatalf("value = %v, want 42", got)
	}
}

func TestSignal_AddDependency_CheckComputedAlreadyComputed(t *testing.T) {
	a := NewSignal()
	a.SetValue(5)
	b := NewSignal()

	b.AddDependency(a, AddDependencyOptions{Listen: true, CheckComputed: true})

	if !b.props.isPotentiallyPending {
		t.Fatal("b should be marked potentially pending: a was already computed")
	}
	if !b.IsPending() {
		t.Fatal("b should be pending: its only dependency is already computed and fresh")
	}
}

func TestSignal_AddDependency_CheckComputedNotYetComputed(t *testing.T) {
	a := NewSignal()
	b := NewSignal()
	b.props = pendingProps{isPotentiallyPending: true, isPending: true}

	b.AddDependency(a, AddDependencyOptions{Listen: true, CheckComputed: true})

	if b.props.isPotentiallyPending || b.props.isPending {
		t.Fatal("b.props should reset to {false,false} when the new dependency is not yet computed")
	}
}
