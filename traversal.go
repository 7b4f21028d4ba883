package bpinfer

// DependencyHandler is the callback passed to ProcessDependencies: it
// is told one direct (or intermediate-expanded) dependency and reports
// whether it handled it.
type DependencyHandler func(dep *Signal) bool

// ProcessDependencies walks signal's direct dependencies in insertion
// order. For each dependency d:
//
//  1. handled := f(d).
//  2. If !handled and d's slot is marked intermediate: recurse into
//     ProcessDependencies(d, retry, f). If that recursive call returns
//     true and retry is true, call f(d) again (d may now be directly
//     handleable having had its own dependencies processed).
//  3. The overall return value is true iff any call to f anywhere in
//     the expansion returned true.
//
// Intermediate-expansion depth is exactly one extra level per call
// frame; a chain of intermediate dependencies cascades naturally
// through the recursion. There is no cycle detection: the dependency
// graph is acyclic by construction, enforced by the dependency
// resolver, not here.
func ProcessDependencies(signal *Signal, retry bool, f DependencyHandler) bool {
	didWork := false
	deps := signal.GetDependencies()
	for i, d := range deps {
		idx := i + 1 // DepProps slots are 1-based
		handled := f(d)
		if handled {
			didWork = true
			continue
		}
		if signal.dependenciesProps.TestFlag(idx, flagIntermediate) {
			sub := ProcessDependencies(d, retry, f)
			if sub {
				didWork = true
				if retry {
					if f(d) {
						didWork = true
					}
				}
			}
		}
	}
	return didWork
}
