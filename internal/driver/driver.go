// Package driver implements the compiler options surface of spec.md §6:
// a struct the CLI passes through to the front end, and the pipeline
// staging (preprocess then parse) that produces a Result for the back end.
// Grounded on the teacher's cmd/funxy/main.go runPipeline, which stages a
// lexer/parser/analyzer/backend Pipeline.Run over a PipelineContext; here
// the stages are "consume macros, expand macros, parse" over a
// pipeline.Context, since lexing and code generation are both out of
// scope (spec.md §1).
package driver

import (
	"time"

	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/funvibe/ollie-front/internal/cfg"
	"github.com/funvibe/ollie-front/internal/diagnostics"
	"github.com/funvibe/ollie-front/internal/macro"
	"github.com/funvibe/ollie-front/internal/parser"
	"github.com/funvibe/ollie-front/internal/pipeline"
	"github.com/funvibe/ollie-front/internal/symbols"
	"github.com/funvibe/ollie-front/internal/token"
	"github.com/funvibe/ollie-front/internal/typesystem"
)

// Options is the compiler options surface of spec.md §6: "the driver
// passes a struct containing input file name, output file name, flags
// print_irs, time_execution, enable_debug_printing, go_to_assembly,
// show_summary".
type Options struct {
	InputFile  string
	OutputFile string

	PrintIRs            bool
	TimeExecution       bool
	EnableDebugPrinting bool
	GoToAssembly        bool
	ShowSummary         bool
}

// StageTimes reports time_execution measurements when Options.TimeExecution
// is set; zero otherwise.
type StageTimes struct {
	Preprocess time.Duration
	Parse      time.Duration
}

// Result is the front end's hand-off to the back end (spec.md §6
// "Symbol-table outputs", "CFG output"): ownership of the CFG, the type
// table, and the function table transfers to whatever consumes this.
type Result struct {
	CFG         *cfg.Graph
	Arena       *ast.Arena
	Tables      *symbols.Tables
	Types       *typesystem.Table
	Diagnostics *diagnostics.Counters
	Times       StageTimes
}

// Run executes the front end over an already-tokenized stream (the lexer
// is an external collaborator, spec.md §1, §6: by the time Run is called,
// someone upstream has already produced tokens) under opts. It never
// panics on a malformed program; every failure surfaces as a diagnostic in
// the returned Result, whose Diagnostics.HasErrors reports overall
// success.
func Run(opts Options, input *token.Stream) *Result {
	counters := &diagnostics.Counters{}

	pre := macro.New(opts.InputFile, counters)
	var times StageTimes

	preStart := time.Now()
	expanded := input
	if err := pre.Consume(input); err == nil {
		if out, err := pre.Expand(input); err == nil {
			expanded = out
		}
	}
	times.Preprocess = time.Since(preStart)

	ctx := pipeline.New(opts.InputFile)
	ctx.Diagnostics = counters
	ctx.Macros = pre.Table

	parseStart := time.Now()
	parser.New(ctx, expanded).Parse()
	times.Parse = time.Since(parseStart)

	return &Result{
		CFG:         ctx.CFG,
		Arena:       ctx.Arena,
		Tables:      ctx.Tables,
		Types:       ctx.Types,
		Diagnostics: ctx.Diagnostics,
		Times:       times,
	}
}
