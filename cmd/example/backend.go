package main

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/coregx/bpinfer"
)

// topologyFile is the shape of topology.yaml: a tiny two-variable,
// one-factor graph description. Loading topology from a config file
// rather than hard-coding it mirrors how a real model backend would be
// built, even though the demo graph itself is fixed.
type topologyFile struct {
	Variables []struct {
		ID    string  `yaml:"id"`
		Prior float64 `yaml:"prior"`
	} `yaml:"variables"`
	Factors []struct {
		ID        string   `yaml:"id"`
		Form      string   `yaml:"form"`
		Variables []string `yaml:"variables"`
	} `yaml:"factors"`
}

// toyVariable is the demo's Variable implementation.
type toyVariable struct {
	name     string
	index    int
	marginal *bpinfer.Signal
	linked   []*bpinfer.Signal
}

func (v *toyVariable) Name() string                     { return v.name }
func (v *toyVariable) Index() (int, bool)               { return v.index, true }
func (v *toyVariable) Marginal() *bpinfer.Signal        { return v.marginal }
func (v *toyVariable) LinkedSignals() []*bpinfer.Signal { return v.linked }
func (v *toyVariable) Link(s *bpinfer.Signal)           { v.linked = append(v.linked, s) }

// toyFactor is the demo's Factor implementation.
type toyFactor struct {
	form           string
	localMarginals []*bpinfer.Signal
}

func (f *toyFactor) FunctionalForm() string            { return f.form }
func (f *toyFactor) LocalMarginals() []*bpinfer.Signal { return f.localMarginals }
func (f *toyFactor) AddLocalMarginal(s *bpinfer.Signal) {
	f.localMarginals = append(f.localMarginals, s)
}

// toyConnection is the demo's Connection implementation. Label is a
// UUID rather than a derived string, exercising the uuid dependency
// the way a real backend would tag connections for tracing/debugging.
type toyConnection struct {
	label             string
	index             int
	messageToVariable *bpinfer.Signal
	messageToFactor   *bpinfer.Signal
}

func (c *toyConnection) Label() string                      { return c.label }
func (c *toyConnection) Index() int                         { return c.index }
func (c *toyConnection) MessageToVariable() *bpinfer.Signal { return c.messageToVariable }
func (c *toyConnection) MessageToFactor() *bpinfer.Signal   { return c.messageToFactor }

// toyBackend is a minimal in-memory Backend built from topology.yaml.
// It exists purely to give the engine something real to drive; the
// model-backend capability set itself is out of this package's scope
// (spec.md §1).
type toyBackend struct {
	variables   map[bpinfer.VariableID]*toyVariable
	factors     map[bpinfer.FactorID]*toyFactor
	connections map[string]*toyConnection // keyed by "variableID|factorID"
	varOrder    []bpinfer.VariableID
	facOrder    []bpinfer.FactorID
	adjacency   map[bpinfer.FactorID][]bpinfer.VariableID
	priors      map[bpinfer.VariableID]*bpinfer.Signal
}

func connKey(v bpinfer.VariableID, f bpinfer.FactorID) string {
	return string(v) + "|" + string(f)
}

// loadToyBackend parses raw YAML topology and builds a toyBackend with
// every Signal this demo needs (priors, messages, marginals) but no
// dependency edges — those are wired by toyResolver.Resolve.
func loadToyBackend(raw []byte) (*toyBackend, error) {
	var top topologyFile
	if err := yaml.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}

	b := &toyBackend{
		variables:   make(map[bpinfer.VariableID]*toyVariable),
		factors:     make(map[bpinfer.FactorID]*toyFactor),
		connections: make(map[string]*toyConnection),
		adjacency:   make(map[bpinfer.FactorID][]bpinfer.VariableID),
		priors:      make(map[bpinfer.VariableID]*bpinfer.Signal),
	}

	for i, vd := range top.Variables {
		id := bpinfer.VariableID(vd.ID)
		marginal := bpinfer.NewSignal(bpinfer.WithVariant(bpinfer.IndividualMarginal(id)))
		b.variables[id] = &toyVariable{name: vd.ID, index: i, marginal: marginal}
		b.varOrder = append(b.varOrder, id)

		prior := bpinfer.NewSignal(bpinfer.WithMetadata("prior"))
		prior.SetValue(vd.Prior)
		b.priors[id] = prior
	}

	for i, fd := range top.Factors {
		id := bpinfer.FactorID(fd.ID)
		b.factors[id] = &toyFactor{form: fd.Form}
		b.facOrder = append(b.facOrder, id)

		var connectedVars []bpinfer.VariableID
		for ci, vid := range fd.Variables {
			vID := bpinfer.VariableID(vid)
			connectedVars = append(connectedVars, vID)

			conn := &toyConnection{
				label:             uuid.NewString(),
				index:             ci,
				messageToVariable: bpinfer.NewSignal(bpinfer.WithVariant(bpinfer.MessageToVariable(vID, id))),
				messageToFactor:   bpinfer.NewSignal(bpinfer.WithVariant(bpinfer.MessageToFactor(vID, id))),
			}
			b.connections[connKey(vID, id)] = conn
		}
		b.adjacency[id] = connectedVars
	}

	return b, nil
}

func (b *toyBackend) Support() bpinfer.SupportStatus { return bpinfer.Supported }

func (b *toyBackend) VariableIDs() []bpinfer.VariableID { return append([]bpinfer.VariableID{}, b.varOrder...) }
func (b *toyBackend) FactorIDs() []bpinfer.FactorID     { return append([]bpinfer.FactorID{}, b.facOrder...) }

func (b *toyBackend) GetVariable(id bpinfer.VariableID) (bpinfer.Variable, error) {
	v, ok := b.variables[id]
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", id)
	}
	return v, nil
}

func (b *toyBackend) GetFactor(id bpinfer.FactorID) (bpinfer.Factor, error) {
	f, ok := b.factors[id]
	if !ok {
		return nil, fmt.Errorf("unknown factor %q", id)
	}
	return f, nil
}

func (b *toyBackend) GetConnection(variableID bpinfer.VariableID, factorID bpinfer.FactorID) (bpinfer.Connection, error) {
	c, ok := b.connections[connKey(variableID, factorID)]
	if !ok {
		return nil, fmt.Errorf("no connection between %q and %q", variableID, factorID)
	}
	return c, nil
}

func (b *toyBackend) ConnectedVariableIDs(factorID bpinfer.FactorID) []bpinfer.VariableID {
	return append([]bpinfer.VariableID{}, b.adjacency[factorID]...)
}

func (b *toyBackend) ConnectedFactorIDs(variableID bpinfer.VariableID) []bpinfer.FactorID {
	var out []bpinfer.FactorID
	for f, vars := range b.adjacency {
		for _, v := range vars {
			if v == variableID {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
