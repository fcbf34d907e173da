// Package mmpipeline stages database ingestion as Decode -> Build, the
// same way a lexer/parser/analyzer/executor pipeline stages its own
// phases: a Processor interface, a Context threading accumulated state
// between stages, and a Pipeline that runs them in order.
package mmpipeline

import (
	"fmt"

	"github.com/lixiang90/formalmath/internal/mm"
)

// Processor is any component that can process a Context and return a
// (possibly the same) modified Context.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context holds the data passed between ingestion stages: the raw,
// label-ordered entries decoded from a database, the FormalSystem being
// built from them, and whatever didn't make it in.
type Context struct {
	Constants []string

	AxiomLabels []string
	Axioms      map[string]*mm.Proposition

	TheoremLabels []string
	Theorems      map[string]*mm.Proposition

	WithTrace bool

	System  *mm.FormalSystem
	Results map[string]*mm.ProofResult
	Errors  []error
}

// NewContext returns an empty Context ready for a decode stage to
// populate.
func NewContext() *Context {
	return &Context{
		Axioms:   make(map[string]*mm.Proposition),
		Theorems: make(map[string]*mm.Proposition),
		Results:  make(map[string]*mm.ProofResult),
	}
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	stages []Processor
}

func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order, threading ctx through each.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}

// BuildStage constructs a FormalSystem from the accumulated raw entries,
// adding each constant, axiom, and theorem in declaration order. Unlike
// mm.FormalSystem itself, it does not abort on the first failing theorem:
// it records the error and keeps going, so a caller (the mmverify CLI's
// "check" subcommand) can report every broken theorem from one pass
// instead of only the first.
type BuildStage struct{}

func (BuildStage) Process(ctx *Context) *Context {
	sys := mm.NewFormalSystem()

	for _, c := range ctx.Constants {
		if err := sys.AddConstant(c); err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("constant %s: %w", c, err))
		}
	}

	for _, label := range ctx.AxiomLabels {
		if err := sys.AddAxiom(label, ctx.Axioms[label]); err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("axiom %s: %w", label, err))
		}
	}

	for _, label := range ctx.TheoremLabels {
		result, err := sys.CheckTheorem(label, ctx.Theorems[label], ctx.WithTrace)
		if err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("theorem %s: %w", label, err))
			continue
		}
		ctx.Results[label] = result
	}

	ctx.System = sys
	return ctx
}
