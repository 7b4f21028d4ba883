package bpinfer

import "time"

// InferenceRequest is created by RequestInferenceFor: it carries the
// engine handle, the requested variable ids, the matching marginal
// Signals, and a readiness bit per variable (set once that variable's
// marginal has become pending during the sweep — "ready to be
// computed", not "already computed").
type InferenceRequest struct {
	engine      *Engine
	variableIDs []VariableID
	marginals   []*Signal
	readiness   []bool
}

// VariableIDs returns the requested variable ids in request order.
func (r *InferenceRequest) VariableIDs() []VariableID { return append([]VariableID{}, r.variableIDs...) }

// MarginalFor returns the marginal Signal requested for id, or nil if
// id was not part of this request.
func (r *InferenceRequest) MarginalFor(id VariableID) *Signal {
	for i, v := range r.variableIDs {
		if v == id {
			return r.marginals[i]
		}
	}
	return nil
}

// markPotentiallyPending implements spec.md §4.7 step 2/3: set props
// to {potentially_pending: true, is_pending: false} on every direct
// dependency of signal.
func markPotentiallyPending(signal *Signal) {
	for _, dep := range signal.GetDependencies() {
		dep.props = pendingProps{isPotentiallyPending: true}
	}
}

// RequestInferenceFor materializes the marginal Signal for each
// requested id, marks the direct dependencies of every marginal (and
// of every linked/joint signal the resolver associates with each id)
// as potentially pending, and initializes a readiness bitset of length
// len(ids), all false.
func RequestInferenceFor(engine *Engine, ids []VariableID) (*InferenceRequest, error) {
	req := &InferenceRequest{
		engine:      engine,
		variableIDs: append([]VariableID{}, ids...),
		marginals:   make([]*Signal, len(ids)),
		readiness:   make([]bool, len(ids)),
	}

	for i, id := range ids {
		marginal, err := engine.marginalFor(id)
		if err != nil {
			return nil, err
		}
		req.marginals[i] = marginal
		markPotentiallyPending(marginal)

		linked, err := engine.linkedFor(id)
		if err != nil {
			return nil, err
		}
		for _, l := range linked {
			markPotentiallyPending(l)
		}
	}

	return req, nil
}

// execAppender collects TracedInferenceExecution values for the
// current round when tracing is enabled; nil when it is not.
type execAppender func(TracedInferenceExecution)

// processInferenceRequest implements spec.md §4.7's per-variable sweep
// step: ProcessDependencies(marginal, retry=true, f) where f dispatches
// and computes any pending dependency it encounters. Returns whether
// ProcessDependencies did any work, or the first dispatch error
// encountered (fatal conditions propagate out of UpdateMarginals
// unchanged, per spec.md §7).
func processInferenceRequest(engine *Engine, variableID VariableID, marginal *Signal, record execAppender) (bool, error) {
	var dispatchErr error
	didWork := ProcessDependencies(marginal, true, func(dep *Signal) bool {
		if dispatchErr != nil {
			return false
		}
		if !dep.IsPending() {
			return false
		}
		before := dep.GetValue()
		start := time.Now()
		if err := dispatch(engine.processor, dep, false); err != nil {
			dispatchErr = err
			return false
		}
		elapsed := time.Since(start)
		if record != nil {
			record(TracedInferenceExecution{
				Engine:      engine,
				VariableID:  variableID,
				Signal:      dep,
				TotalTime:   elapsed,
				ValueBefore: before,
				ValueAfter:  dep.GetValue(),
			})
		}
		return true
	})
	if dispatchErr != nil {
		return didWork, dispatchErr
	}
	return didWork, nil
}

// UpdateMarginals runs RequestInferenceFor(engine, ids) and drives the
// alternating-direction sweep to a fixed point (spec.md §4.7):
//
// Each round clears a made_progress flag, visits the not-yet-ready
// requested variables in forward order (even passes) or reverse order
// (odd passes), dispatches and computes any pending Signal
// ProcessDependencies uncovers, and marks a variable ready once its
// marginal itself becomes pending. Rounds repeat, flipping direction
// each time, until a round makes no progress.
//
// The final round then force-computes any requested marginal still
// pending, and — per spec.md §9's first Open Question, preserved as
// specified rather than resolved differently — computes every linked
// signal of every requested variable whenever that signal is pending,
// regardless of whether the variable's own marginal was just computed.
//
// Termination: every compute turns a pending Signal into a non-pending
// one and the dependency graph is acyclic, so the count of pending
// Signals is monotone non-increasing once dependents are quiescent;
// the loop is bounded by the longest dependency path to any requested
// marginal (spec.md §4.7).
func UpdateMarginals(engine *Engine, ids []VariableID) (*InferenceRequest, error) {
	req, err := RequestInferenceFor(engine, ids)
	if err != nil {
		return nil, err
	}

	var tracedReq *TracedInferenceRequest
	var requestStart time.Time
	if engine.opts.Tracer != nil {
		requestStart = time.Now()
		tracedReq = &TracedInferenceRequest{Engine: engine, Request: req}
	}

	isReverse := false
	for {
		madeProgress := false

		var roundExecs []TracedInferenceExecution
		var record execAppender
		var endRound func([]TracedInferenceExecution)
		if tracedReq != nil {
			endRound = beginRound(engine, tracedReq)
			record = func(e TracedInferenceExecution) { roundExecs = append(roundExecs, e) }
		}

		order := sweepOrder(len(req.variableIDs), isReverse)
		for _, i := range order {
			if req.readiness[i] {
				continue
			}
			workDone, err := processInferenceRequest(engine, req.variableIDs[i], req.marginals[i], record)
			if err != nil {
				return req, err
			}
			if req.marginals[i].IsPending() {
				req.readiness[i] = true
			}
			if workDone {
				madeProgress = true
			}
		}

		if endRound != nil {
			endRound(roundExecs)
		}

		isReverse = !isReverse
		if !madeProgress {
			break
		}
	}

	var endFinalRound func([]TracedInferenceExecution)
	if tracedReq != nil {
		endFinalRound = beginRound(engine, tracedReq)
	}
	finalExecs, err := finalRound(engine, req)
	if endFinalRound != nil {
		endFinalRound(finalExecs)
	}
	if err != nil {
		return req, err
	}

	if tracedReq != nil {
		tracedReq.TotalTime = time.Since(requestStart)
		engine.opts.Tracer.Requests = append(engine.opts.Tracer.Requests, *tracedReq)
	}

	return req, nil
}

// finalRound implements the driver's last pass: force-compute any
// requested marginal still pending, then compute every linked signal
// of every requested variable that is itself pending.
func finalRound(engine *Engine, req *InferenceRequest) ([]TracedInferenceExecution, error) {
	var execs []TracedInferenceExecution
	trace := engine.opts.Tracer != nil

	computeIfPending := func(variableID VariableID, s *Signal, force bool) error {
		if !force && !s.IsPending() {
			return nil
		}
		before := s.GetValue()
		start := time.Now()
		if err := dispatch(engine.processor, s, true); err != nil {
			return err
		}
		if trace {
			execs = append(execs, TracedInferenceExecution{
				Engine:      engine,
				VariableID:  variableID,
				Signal:      s,
				TotalTime:   time.Since(start),
				ValueBefore: before,
				ValueAfter:  s.GetValue(),
			})
		}
		return nil
	}

	for i, id := range req.variableIDs {
		marginal := req.marginals[i]
		if marginal.IsPending() {
			if err := computeIfPending(id, marginal, true); err != nil {
				return execs, err
			}
		}

		linked, err := engine.linkedFor(id)
		if err != nil {
			return execs, err
		}
		for _, l := range linked {
			if l.IsPending() {
				if err := computeIfPending(id, l, false); err != nil {
					return execs, err
				}
			}
		}
	}

	return execs, nil
}

// sweepOrder returns the visitation order for a round: 0..n-1 forward,
// n-1..0 reverse.
func sweepOrder(n int, reverse bool) []int {
	order := make([]int, n)
	for i := range order {
		if reverse {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}
