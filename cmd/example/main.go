// Command example drives bpinfer end to end against a toy two-variable
// factor graph loaded from topology.yaml, in the staged-demo style of
// the teacher's cmd/example/main.go (phase by phase, printing as it goes).
package main

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/coregx/bpinfer"
)

//go:embed topology.yaml
var topologyYAML []byte

func main() {
	backend, err := loadToyBackend(topologyYAML)
	if err != nil {
		log.Fatal(err)
	}

	tracer := bpinfer.NewTracer()
	engine, err := bpinfer.NewEngine(backend, newToyResolver(backend), toyProcessor{}, bpinfer.EngineOptions{
		Tracer: tracer,
		OnWarning: func(w bpinfer.Warning) {
			fmt.Println("warning:", w)
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	demoSingleChain(engine)
	demoFullSweep(engine, tracer)
}

func demoSingleChain(engine *bpinfer.Engine) {
	fmt.Println("=== Phase 1: request marginal for X alone ===")

	req, err := bpinfer.UpdateMarginals(engine, []bpinfer.VariableID{"X"})
	if err != nil {
		log.Fatal(err)
	}

	marginalX := req.MarginalFor("X")
	fmt.Printf("marginal(X) = %v (pending=%v)\n", marginalX.GetValue(), marginalX.IsPending())
}

func demoFullSweep(engine *bpinfer.Engine, tracer *bpinfer.Tracer) {
	fmt.Println("\n=== Phase 2: request marginals for X and Y together ===")

	req, err := bpinfer.UpdateMarginals(engine, []bpinfer.VariableID{"X", "Y"})
	if err != nil {
		log.Fatal(err)
	}

	for _, id := range req.VariableIDs() {
		m := req.MarginalFor(id)
		fmt.Printf("marginal(%s) = %v\n", id, m.GetValue())
	}

	fmt.Printf("\n%d traced request(s); last request ran %d round(s):\n", len(tracer.Requests), len(tracer.Requests[len(tracer.Requests)-1].Rounds))
	last := tracer.Requests[len(tracer.Requests)-1]
	for i, round := range last.Rounds {
		fmt.Printf("  round %d: %d execution(s) in %s\n", i, len(round.Executions), round.TotalTime)
		for _, exec := range round.Executions {
			fmt.Printf("    %s: %v -> %v (%s)\n", exec.Signal.Variant(), exec.ValueBefore, exec.ValueAfter, exec.TotalTime)
		}
	}

	if warnings := engine.Warnings(); len(warnings) > 0 {
		fmt.Println("\nwarnings:")
		for _, w := range warnings {
			fmt.Println(" -", w)
		}
	}
}
