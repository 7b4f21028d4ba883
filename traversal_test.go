package bpinfer

import "testing"

// TestIntermediateExpansion_S3 is scenario S3: Root depends on Mid
// (intermediate); Mid depends on Leaf. Leaf itself depends on Src,
// which is set beforehand, so Leaf is pending and Mid is not when the
// traversal starts.
func TestIntermediateExpansion_S3(t *testing.T) {
	root := NewSignal()
	mid := NewSignal()
	leaf := NewSignal()
	src := NewSignal()

	leaf.AddDependency(src, AddDependencyOptions{Listen: true})
	mid.AddDependency(leaf, AddDependencyOptions{Listen: true})
	root.AddDependency(mid, AddDependencyOptions{Intermediate: true, Listen: true})

	src.SetValue(7)

	var visited []*Signal
	f := func(x *Signal) bool {
		visited = append(visited, x)
		if x.IsPending() {
			_ = x.Compute(func(s *Signal, deps []*Signal) any { return deps[0].GetValue() }, false)
			return true
		}
		return false
	}

	got := ProcessDependencies(root, true, f)
	if !got {
		t.Fatal("ProcessDependencies should report true: leaf was processed")
	}

	// mid is seen non-pending first, then reprocessed after leaf's
	// subtree is handled (retry=true): visited should contain mid
	// twice and leaf once, in that relative order.
	if len(visited) != 3 {
		t.Fatalf("expected 3 visits (mid, leaf, mid again), got %d: %v", len(visited), visited)
	}
	if visited[0] != mid || visited[1] != leaf || visited[2] != mid {
		t.Fatal("expected visit order: mid, leaf, mid (retry)")
	}
	if mid.IsPending() {
		t.Fatal("mid should have been computed by the retried call")
	}
}

// TestProcessDependencies_NoRetry verifies retry=false suppresses the
// second call to f on an intermediate dependency.
func TestProcessDependencies_NoRetry(t *testing.T) {
	root := NewSignal()
	mid := NewSignal()
	leaf := NewSignal()
	src := NewSignal()
	leaf.AddDependency(src, AddDependencyOptions{Listen: true})
	mid.AddDependency(leaf, AddDependencyOptions{Listen: true})
	root.AddDependency(mid, AddDependencyOptions{Intermediate: true, Listen: true})
	src.SetValue(1)

	var visits int
	f := func(x *Signal) bool {
		visits++
		if x.IsPending() {
			_ = x.Compute(identityRule, false)
			return true
		}
		return false
	}
	ProcessDependencies(root, false, f)
	if visits != 2 {
		t.Fatalf("expected 2 visits (mid, leaf) without retry, got %d", visits)
	}
}

// TestProcessDependencies_ReturnValue is property P8: the traversal's
// return value is true iff some call to f returned true anywhere.
func TestProcessDependencies_ReturnValue(t *testing.T) {
	root := NewSignal()
	a := NewSignal()
	b := NewSignal()
	root.AddDependency(a, AddDependencyOptions{Listen: true})
	root.AddDependency(b, AddDependencyOptions{Listen: true})

	if got := ProcessDependencies(root, true, func(*Signal) bool { return false }); got {
		t.Fatal("all handlers returned false: ProcessDependencies should return false")
	}

	calls := 0
	got := ProcessDependencies(root, true, func(*Signal) bool {
		calls++
		return calls == 2 // only the second dependency is "handled"
	})
	if !got {
		t.Fatal("one handler returned true: ProcessDependencies should return true")
	}
}

// TestProcessDependencies_NonIntermediateNotExpanded verifies a
// non-intermediate, unhandled dependency is not recursed into.
func TestProcessDependencies_NonIntermediateNotExpanded(t *testing.T) {
	root := NewSignal()
	mid := NewSignal()
	leaf := NewSignal()
	mid.AddDependency(leaf, AddDependencyOptions{Listen: true})
	root.AddDependency(mid, AddDependencyOptions{Listen: true}) // not intermediate
	leaf.SetValue(1)

	var visited []*Signal
	ProcessDependencies(root, true, func(x *Signal) bool {
		visited = append(visited, x)
		return false
	})
	if len(visited) != 1 || visited[0] != mid {
		t.Fatalf("expected only mid to be visited, got %v", visited)
	}
}
