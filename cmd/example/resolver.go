package main

import "github.com/coregx/bpinfer"

// toyResolver wires the dependency edges for a toyBackend's graph.
// Resolve is idempotent: a second call is a no-op, matching the
// DependencyResolver contract (spec.md §6).
type toyResolver struct {
	backend  *toyBackend
	resolved bool
}

func newToyResolver(b *toyBackend) *toyResolver {
	return &toyResolver{backend: b}
}

func (r *toyResolver) Resolve(engine *bpinfer.Engine) error {
	if r.resolved {
		return nil
	}
	b := r.backend

	for _, factorID := range b.facOrder {
		connected := b.adjacency[factorID]
		joint := bpinfer.NewSignal(bpinfer.WithVariant(bpinfer.JointMarginal(factorID, connected)))

		for _, varID := range connected {
			conn := b.connections[connKey(varID, factorID)]
			prior := b.priors[varID]

			// variable -> factor message: in this single-factor-per-
			// variable toy graph it is just the prior, passed through.
			// Messages are pass-through nodes relative to the marginals
			// and joints that ultimately depend on them, so the edge
			// into this one is marked intermediate.
			conn.messageToFactor.AddDependency(prior, bpinfer.AddDependencyOptions{
				Intermediate: true, Listen: true, CheckComputed: true,
			})

			joint.AddDependency(conn.messageToFactor, bpinfer.AddDependencyOptions{
				Listen: true, CheckComputed: true,
			})
		}

		for _, varID := range connected {
			conn := b.connections[connKey(varID, factorID)]
			for _, other := range connected {
				if other == varID {
					continue
				}
				otherConn := b.connections[connKey(other, factorID)]
				// factor -> variable message: product over every OTHER
				// connected variable's message into the factor.
				conn.messageToVariable.AddDependency(otherConn.messageToFactor, bpinfer.AddDependencyOptions{
					Intermediate: true, Listen: true, CheckComputed: true,
				})
			}

			variable := b.variables[varID]
			variable.marginal.AddDependency(b.priors[varID], bpinfer.AddDependencyOptions{
				Weak: true, Listen: true, CheckComputed: true,
			})
			variable.marginal.AddDependency(conn.messageToVariable, bpinfer.AddDependencyOptions{
				Intermediate: true, Listen: true, CheckComputed: true,
			})

			variable.Link(joint)
		}

		b.factors[factorID].AddLocalMarginal(joint)
	}

	r.resolved = true
	return nil
}
